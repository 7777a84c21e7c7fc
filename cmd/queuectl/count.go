package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/fanyer/presto-sub061/internal/store"
)

type fileCount struct {
	File   string         `json:"file"`
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
}

func newCountCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count <path>",
		Short: "Count queued records per kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := queueFiles(args[0])
			if err != nil {
				return err
			}

			counts := make([]fileCount, 0, len(files))
			for _, file := range files {
				items, err := store.ReadQueueFile(file)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				c := fileCount{File: file, Total: len(items), ByType: make(map[string]int)}
				for _, item := range items {
					c.ByType[item.Type.String()]++
				}
				counts = append(counts, c)
			}

			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				return json.NewEncoder(w).Encode(counts)
			}
			for _, c := range counts {
				fmt.Fprintf(w, "%s: %d\n", c.File, c.Total)
				for _, name := range slices.Sorted(maps.Keys(c.ByType)) {
					fmt.Fprintf(w, "  %-20s %d\n", name, c.ByType[name])
				}
			}
			return nil
		},
	}
}
