// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogpress/internal/catalog"
)

var (
	listPage int
	listSize int
)

var listCmd = &cobra.Command{
	Use:   "list <category-id>",
	Short: "List the products shown by a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("category", args[0])
		if err != nil {
			return err
		}
		if listPage < 1 || listSize < 1 {
			return fmt.Errorf("--page and --size must be at least 1")
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		result, err := e.catalog.ListProducts(ctx, id, listPage, listSize)
		if err != nil {
			return err
		}
		crumb, err := e.catalog.Breadcrumbs.Build(ctx, id, catalog.BreadcrumbOptions{ShowHidden: true})
		if err != nil {
			return err
		}

		p := printer(cmd.OutOrStdout())
		p.Section(crumb)
		rows := make([][]string, 0, len(result.Items))
		for _, item := range result.Items {
			rows = append(rows, []string{item.URLSegment, item.Title, item.Price.StringFixed(2)})
		}
		p.Table([]string{"SEGMENT", "TITLE", "PRICE"}, rows)
		p.Muted("page %d of %d, %d products", result.Page, result.TotalPages, result.TotalCount)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&listSize, "size", catalog.DefaultPageSize, "Products per page")
}
