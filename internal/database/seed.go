// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalogpress/internal/slug"
)

// SeedProduct is a demo product placed under a seeded category.
type SeedProduct struct {
	Title    string
	Price    string
	Also     []string // titles of extra categories the product is assigned to
	Unplaced bool     // no tree parent; reachable through assignments only
}

// SeedCategory is a demo category with its products and subcategories.
type SeedCategory struct {
	Title       string
	MenuTitle   string
	Hidden      bool
	Products    []SeedProduct
	Subcategory []SeedCategory
}

// DemoCatalog is the tree loaded by Seed under a "Shop" root.
var DemoCatalog = []SeedCategory{
	{
		Title: "Footwear",
		Products: []SeedProduct{
			{Title: "Everyday Sneaker", Price: "59.00"},
		},
		Subcategory: []SeedCategory{
			{
				Title:     "Hiking Boots",
				MenuTitle: "Boots",
				Products: []SeedProduct{
					{Title: "Ridge Boot", Price: "149.00"},
					{Title: "Trail Mid", Price: "119.50", Also: []string{"Sale"}},
				},
			},
			{
				Title: "Sandals",
				Products: []SeedProduct{
					{Title: "River Sandal", Price: "39.90"},
				},
			},
		},
	},
	{
		Title: "Outerwear",
		Products: []SeedProduct{
			{Title: "Storm Shell", Price: "229.00"},
			{Title: "Down Vest", Price: "99.00", Also: []string{"Sale"}},
		},
	},
	{
		Title:  "Sale",
		Hidden: true,
		Products: []SeedProduct{
			{Title: "Wool Socks", Price: "9.99", Unplaced: true},
		},
	},
}

// Seed populates an empty database with a demo shop tree. It does nothing
// when any page exists already.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count); err != nil {
		return fmt.Errorf("seed check pages: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	s := &seeder{tx: tx, categories: make(map[string]uuid.UUID)}

	shopID, err := s.page(ctx, nil, "shop", "Shop", "", true, 0)
	if err != nil {
		return err
	}
	if err := s.categoriesUnder(ctx, shopID, DemoCatalog); err != nil {
		return err
	}
	if err := s.linkExtras(ctx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo catalog",
		"categories", len(s.categories),
		"products", s.products,
	)
	return nil
}

type pendingLink struct {
	product  uuid.UUID
	category string
}

type seeder struct {
	tx         *sql.Tx
	categories map[string]uuid.UUID
	extras     []pendingLink
	products   int
}

func (s *seeder) page(ctx context.Context, parent *uuid.UUID, typ, title, menuTitle string, visible bool, sort int) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.tx.QueryRowContext(ctx, `
		INSERT INTO pages (parent_id, type, title, menu_title, url_segment, show_in_menus, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		parent, typ, title, menuTitle, slug.Generate(title), visible, sort,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("seed page %q: %w", title, err)
	}
	return id, nil
}

func (s *seeder) categoriesUnder(ctx context.Context, parent uuid.UUID, cats []SeedCategory) error {
	for i, c := range cats {
		id, err := s.page(ctx, &parent, "category", c.Title, c.MenuTitle, !c.Hidden, i)
		if err != nil {
			return err
		}
		s.categories[c.Title] = id

		for j, p := range c.Products {
			if err := s.product(ctx, id, j, p); err != nil {
				return err
			}
		}
		if err := s.categoriesUnder(ctx, id, c.Subcategory); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) product(ctx context.Context, category uuid.UUID, sort int, p SeedProduct) error {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return fmt.Errorf("seed product %q price: %w", p.Title, err)
	}

	var parent *uuid.UUID
	if !p.Unplaced {
		parent = &category
	}

	var id uuid.UUID
	err = s.tx.QueryRowContext(ctx, `
		INSERT INTO products (parent_id, title, url_segment, price, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		parent, p.Title, slug.Generate(p.Title), price, sort,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("seed product %q: %w", p.Title, err)
	}
	s.products++

	// Placed products get their default assignment; unplaced ones are
	// assigned to the category they are listed under.
	if err := s.link(ctx, category, id); err != nil {
		return err
	}
	for _, title := range p.Also {
		s.extras = append(s.extras, pendingLink{product: id, category: title})
	}
	return nil
}

func (s *seeder) link(ctx context.Context, category, product uuid.UUID) error {
	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO category_products (category_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (category_id, product_id) DO NOTHING`, category, product)
	if err != nil {
		return fmt.Errorf("seed link: %w", err)
	}
	return nil
}

func (s *seeder) linkExtras(ctx context.Context) error {
	for _, l := range s.extras {
		id, ok := s.categories[l.category]
		if !ok {
			return fmt.Errorf("seed link: unknown category %q", l.category)
		}
		if err := s.link(ctx, id, l.product); err != nil {
			return err
		}
	}
	return nil
}
