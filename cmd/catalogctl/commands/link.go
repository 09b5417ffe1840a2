// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <category-id> <product-id>",
	Short: "Assign a product to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPair(cmd, args, true)
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <category-id> <product-id>",
	Short: "Remove a product's assignment to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPair(cmd, args, false)
	},
}

func runPair(cmd *cobra.Command, args []string, link bool) error {
	categoryID, err := parseID("category", args[0])
	if err != nil {
		return err
	}
	productID, err := parseID("product", args[1])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	p := printer(cmd.OutOrStdout())
	if link {
		if err := e.catalog.Assigner.Link(ctx, categoryID, productID); err != nil {
			return err
		}
		p.Success("linked %s to %s", productID, categoryID)
		clearListings(ctx, e, p, categoryID)
		return nil
	}
	if err := e.catalog.Assigner.Unlink(ctx, categoryID, productID); err != nil {
		return err
	}
	p.Success("unlinked %s from %s", productID, categoryID)
	clearListings(ctx, e, p, categoryID)
	return nil
}
