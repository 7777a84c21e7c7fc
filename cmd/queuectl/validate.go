package main

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/fanyer/presto-sub061/internal/dataitem"
	"github.com/fanyer/presto-sub061/internal/store"
)

var errQueueInvalid = errors.New("queue file invalid")

// orderViolation is a record queued before a record it references.
type orderViolation struct {
	File     string `json:"file"`
	Position int    `json:"position"`
	Item     string `json:"item"`
	Field    string `json:"field"`
	Ref      string `json:"ref"`
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that queue files parse and are in dependency order",
		Long: `Check that every queue file parses and that no record precedes a queued
record it names as its previous sibling or parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := queueFiles(args[0])
			if err != nil {
				return err
			}

			var violations []orderViolation
			for _, file := range files {
				items, err := store.ReadQueueFile(file)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", errQueueInvalid, file, err)
				}
				violations = append(violations, checkOrder(file, items)...)
			}

			w := cmd.OutOrStdout()
			if opts.Format == "json" {
				if err := json.NewEncoder(w).Encode(violations); err != nil {
					return err
				}
			} else {
				for _, v := range violations {
					fmt.Fprintf(w, "%s:%d: %s references later %s %q\n", v.File, v.Position, v.Item, v.Field, v.Ref)
				}
			}
			if len(violations) > 0 {
				return fmt.Errorf("%w: %d ordering violations", errQueueInvalid, len(violations))
			}
			if opts.Format == "text" {
				fmt.Fprintln(w, "ok")
			}
			return nil
		},
	}
}

// checkOrder reports records whose previous or parent reference resolves
// to a record further down the file.
func checkOrder(file string, items []*dataitem.Item) []orderViolation {
	index := dataitem.NewHashedCollection()
	for _, item := range items {
		_ = index.AddItem(item.Copy())
	}

	position := make(map[*dataitem.Item]int, len(items))
	for i, item := range index.Items() {
		position[item] = i
	}

	var out []orderViolation
	for i, item := range index.Items() {
		refs := []struct{ field, ref string }{
			{item.Type.PreviousKeyName(), item.PreviousRef()},
			{item.Type.ParentKeyName(), item.ParentRef()},
		}
		for _, r := range refs {
			target := index.FindReference(item.Type.BaseType(), r.ref)
			if target == nil || position[target] <= i {
				continue
			}
			out = append(out, orderViolation{
				File:     file,
				Position: i + 1,
				Item:     item.String(),
				Field:    r.field,
				Ref:      r.ref,
			})
		}
	}
	return out
}
