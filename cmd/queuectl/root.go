package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/fanyer/presto-sub061/internal/store"
)

// rootOptions holds the global flags.
type rootOptions struct {
	Format string // "text" | "json"
}

var validFormats = []string{"text", "json"}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "queuectl",
		Short: "Inspect sync queue files",
		Long: `Inspect the files the sync client keeps its pending changes in.

A path may name a queue file or the queue directory; for a directory both
` + store.QueueFileName + ` and ` + store.OutgoingFileName + ` are read.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newDumpCommand(opts))
	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	return cmd
}

// queueFiles expands a directory into its queue files.
func queueFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("queue path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return []string{
		filepath.Join(path, store.QueueFileName),
		filepath.Join(path, store.OutgoingFileName),
	}, nil
}
