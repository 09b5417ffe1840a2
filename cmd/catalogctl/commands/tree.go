// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"catalogpress/internal/models"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the category tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		nodes, err := e.pages.CategoryTree(ctx)
		if err != nil {
			return err
		}
		if len(nodes) == 0 {
			printer(cmd.ErrOrStderr()).Warning("no categories")
			return nil
		}
		writeTree(cmd.OutOrStdout(), nodes)
		return nil
	},
}

// writeTree prints one node per line, indented by depth. Hidden categories
// are marked.
func writeTree(w io.Writer, nodes []models.PageNode) {
	for _, n := range nodes {
		line := strings.Repeat("  ", n.Depth) + n.NavTitle()
		if !n.ShowInMenus {
			line += " (hidden)"
		}
		fmt.Fprintf(w, "%s  %s\n", line, n.ID)
		writeTree(w, n.Children)
	}
}
