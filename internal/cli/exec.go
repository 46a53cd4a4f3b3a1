package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/exec"
	"github.com/siso-ai/siso-database/internal/statement"
)

// NewExecCommand creates the exec command: run one or more statements
// given on the command line against the snapshot.
func NewExecCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <statement>...",
		Short: "Execute SQL statements",
		Long: `Execute SQL statements against the database snapshot.

Multiple statements may be given as separate arguments or joined with
semicolons. The snapshot is saved back after the last statement.

Example:
  sisodb -d data.json exec "SELECT name, age FROM users WHERE age >= 30"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execStatements(opts, strings.Join(args, ";"), cmd)
		},
	}
}

func execStatements(opts *RootOptions, script string, cmd *cobra.Command) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	failed := false

	for _, stmt := range statement.SplitStatements(script) {
		text, err := exec.Execute(store, stmt, engine.WithMaxDequeues(opts.MaxDequeues))
		if err != nil {
			return WrapExitError(ExitFailure, "execute statement", err)
		}
		if strings.HasPrefix(text, engine.ErrorPrefix) {
			failed = true
		}
		if err := out.Result(stmt, text); err != nil {
			return err
		}
	}

	if err := saveStore(opts, store); err != nil {
		return err
	}
	if failed {
		return WrapExitError(ExitFailure, "one or more statements failed", nil)
	}
	return nil
}
