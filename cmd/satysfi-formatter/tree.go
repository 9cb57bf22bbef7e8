package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usagrada/satysfi-formatter/internal/cst"
	"github.com/usagrada/satysfi-formatter/internal/formatter"
	"github.com/usagrada/satysfi-formatter/internal/parser"
)

func newTreeCmd() *cobra.Command {
	var comments bool
	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the concrete syntax tree of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			tree, err := parser.Parse(args[0], string(data))
			if err != nil {
				return err
			}
			if comments {
				root, err := formatter.AttachComments(tree.Root, formatter.RecoverComments(tree))
				if err != nil {
					return err
				}
				tree.Root = root
			}
			return cst.Dump(cmd.OutOrStdout(), tree)
		},
	}
	cmd.Flags().BoolVar(&comments, "comments", false, "include recovered comments in the tree")
	return cmd
}
