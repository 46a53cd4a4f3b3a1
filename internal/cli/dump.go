package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siso-ai/siso-database/internal/persist"
)

// NewDumpCommand creates the dump command: convert a snapshot between
// the JSON and SQLite backends.
func NewDumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <source> <destination>",
		Short: "Convert a snapshot between formats",
		Long: `Convert a database snapshot between formats.

The backend for each side is picked by file extension: .db, .sqlite,
and .sqlite3 use SQLite, everything else uses JSON.

Example:
  sisodb dump data.json data.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]

			store, err := persist.Load(src)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("load snapshot %s", src), err)
			}
			if err := persist.Save(store, dst); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("save snapshot %s", dst), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Converted %s to %s (%d tables)\n", src, dst, len(store.Tables()))
			return nil
		},
	}
}
