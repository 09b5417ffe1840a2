// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
)

var (
	crumbMaxDepth   int
	crumbStopAt     string
	crumbShowHidden bool
)

var breadcrumbCmd = &cobra.Command{
	Use:   "breadcrumb <page-id>",
	Short: "Print the breadcrumb of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("page", args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		crumb, err := e.catalog.Breadcrumbs.Build(ctx, id, catalog.BreadcrumbOptions{
			MaxDepth:   crumbMaxDepth,
			StopAtType: models.PageType(crumbStopAt),
			ShowHidden: crumbShowHidden,
		})
		if err != nil {
			return err
		}
		if crumb == "" {
			printer(cmd.ErrOrStderr()).Warning("page %s not found", id)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), crumb)
		return nil
	},
}

func init() {
	breadcrumbCmd.Flags().IntVar(&crumbMaxDepth, "max-depth", 0, "Maximum number of entries, 0 for all")
	breadcrumbCmd.Flags().StringVar(&crumbStopAt, "stop-at", "", "Stop before the first ancestor of this page type")
	breadcrumbCmd.Flags().BoolVar(&crumbShowHidden, "show-hidden", false, "Include pages hidden from menus")
}
