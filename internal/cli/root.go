// Package cli wires the statement pipeline into a cobra command tree:
// one-shot execution, script runs, an interactive shell, and snapshot
// conversion.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/logging"
	"github.com/siso-ai/siso-database/internal/persist"
	"github.com/siso-ai/siso-database/internal/table"
)

// RootOptions holds global flags for all commands, merged with the
// config file in PersistentPreRunE.
type RootOptions struct {
	Database    string
	ConfigPath  string
	Verbose     bool
	Format      string // "json" | "text"
	MaxDequeues int

	closeLogging func()
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sisodb CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sisodb",
		Short: "sisodb - a small SQL database",
		Long:  "An in-memory SQL database with snapshot persistence, driven by a staged statement pipeline.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			seqURL := ""
			if opts.ConfigPath != "" {
				cfg, err := LoadConfig(opts.ConfigPath)
				if err != nil {
					return err
				}
				// Flags win; config fills in what the flags left default.
				if opts.Database == "" {
					opts.Database = cfg.Database
				}
				if !cmd.Flags().Changed("max-dequeues") && cfg.MaxDequeues > 0 {
					opts.MaxDequeues = cfg.MaxDequeues
				}
				if cfg.Log.Level == "debug" {
					opts.Verbose = true
				}
				seqURL = cfg.Log.SeqURL
			}

			opts.closeLogging = logging.Setup(logging.Options{
				Verbose: opts.Verbose,
				SeqURL:  seqURL,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.closeLogging != nil {
				opts.closeLogging()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Database, "database", "d", "", "database snapshot file (.json, .db, .sqlite)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.MaxDequeues, "max-dequeues", engine.DefaultMaxDequeues, "dispatch iteration budget")

	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore loads the snapshot named by --database, or starts empty
// when no database was given or the file does not exist yet.
func openStore(opts *RootOptions) (*table.Store, error) {
	if opts.Database == "" {
		return table.NewStore(), nil
	}
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return table.NewStore(), nil
	}

	s, err := persist.Load(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load database", err)
	}
	return s, nil
}

// saveStore writes the store back to the --database snapshot, when one
// was given.
func saveStore(opts *RootOptions, s *table.Store) error {
	if opts.Database == "" {
		return nil
	}
	if err := persist.Save(s, opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "save database", err)
	}
	return nil
}
