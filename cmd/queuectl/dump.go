package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/store"
)

type dumpedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type dumpedItem struct {
	File       string        `json:"file"`
	Type       string        `json:"type"`
	Status     string        `json:"status"`
	Key        string        `json:"key,omitempty"`
	Value      string        `json:"value,omitempty"`
	Attributes []dumpedField `json:"attributes,omitempty"`
	Children   []dumpedField `json:"children,omitempty"`
}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump <path>",
		Short: "Print the queued records in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := queueFiles(args[0])
			if err != nil {
				return err
			}

			var out []dumpedItem
			for _, file := range files {
				items, err := store.ReadQueueFile(file)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				for _, item := range items {
					out = append(out, dumpItem(file, item))
				}
			}
			return writeDump(cmd.OutOrStdout(), opts.Format, out)
		},
	}
}

func dumpItem(file string, item *dataitem.Item) dumpedItem {
	key, value := item.PrimaryKey()
	d := dumpedItem{
		File:   file,
		Type:   item.Type.String(),
		Status: item.Status.String(),
		Key:    key,
		Value:  value,
	}
	for _, f := range item.Attributes() {
		d.Attributes = append(d.Attributes, dumpedField{Name: f.Name, Value: f.Value})
	}
	for _, f := range item.Children() {
		d.Children = append(d.Children, dumpedField{Name: f.Name, Value: f.Value})
	}
	return d
}

func writeDump(w io.Writer, format string, items []dumpedItem) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for i, item := range items {
		fmt.Fprintf(w, "%4d  %-8s %-20s %s=%s\n", i+1, item.Status, item.Type, item.Key, item.Value)
		for _, f := range item.Children {
			fmt.Fprintf(w, "        %s: %s\n", f.Name, f.Value)
		}
	}
	return nil
}
