package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/exec"
	"github.com/siso-ai/siso-database/internal/statement"
)

// NewReplCommand creates the repl command: an interactive shell.
func NewReplCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive SQL shell",
		Long: `Start an interactive SQL shell against the database snapshot.

Each input line may hold one or more semicolon-separated statements.
Type "exit" or "quit" to leave; the snapshot is saved on the way out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}
}

func runRepl(opts *RootOptions, cmd *cobra.Command) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "sisodb> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			break
		}

		for _, stmt := range statement.SplitStatements(line) {
			text, err := exec.Execute(store, stmt, engine.WithMaxDequeues(opts.MaxDequeues))
			if err != nil {
				// Run-level failures end the session; the snapshot state
				// before the failing statement is preserved.
				return WrapExitError(ExitFailure, "execute statement", err)
			}
			if err := formatter.Result(stmt, text); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "read input", err)
	}
	return saveStore(opts, store)
}
