package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command: execute a SQL script file.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.sql>",
		Short: "Run a SQL script file",
		Long: `Run a SQL script file statement by statement.

Statements are split on semicolons outside quotes. Execution continues
past statement errors; the exit code reports whether any failed.

Example:
  sisodb -d data.db run seed.sql`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("read script %s", args[0]), err)
			}
			return execStatements(opts, string(script), cmd)
		},
	}
}
