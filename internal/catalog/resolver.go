// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"catalogpress/internal/models"
)

// DefaultPageSize is the number of products shown per category page.
const DefaultPageSize = 12

// Resolver computes category product listings. A category lists its own
// products plus those of its direct child categories; grandchildren are
// not included.
type Resolver struct {
	tree     TreeStore
	products ProductRepository
}

// NewResolver returns a Resolver reading from the given stores.
func NewResolver(tree TreeStore, products ProductRepository) *Resolver {
	return &Resolver{tree: tree, products: products}
}

// ListProducts returns one page of the products visible under a category,
// ordered by tree parent, then sort order, then id.
func (r *Resolver) ListProducts(ctx context.Context, categoryID uuid.UUID, page, pageSize int) (*PagedResult[models.Product], error) {
	if page < 1 {
		return nil, invalidArg("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return nil, invalidArg("page size must be >= 1, got %d", pageSize)
	}

	scope, err := r.Scope(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	found, err := r.products.FindByCategoryScope(ctx, scope)
	if err != nil {
		return nil, storageErr("find products by category scope", err)
	}

	ordered := orderProducts(found)
	slog.Debug("category products resolved",
		"category", categoryID,
		"scope", len(scope),
		"total", len(ordered),
	)
	return Paginate(ordered, page, pageSize)
}

// Scope returns the category id followed by the ids of its direct children
// that are themselves categories.
func (r *Resolver) Scope(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	return categoryScope(ctx, r.tree, categoryID)
}

func categoryScope(ctx context.Context, tree TreeStore, categoryID uuid.UUID) ([]uuid.UUID, error) {
	var (
		node     *models.Page
		children []models.Page
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := tree.FindByID(gctx, categoryID)
		if err != nil {
			return storageErr("find category", err)
		}
		node = n
		return nil
	})
	g.Go(func() error {
		c, err := tree.Children(gctx, categoryID)
		if err != nil {
			return storageErr("list category children", err)
		}
		children = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if node == nil || !node.IsCategory() {
		return nil, fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}

	scope := []uuid.UUID{node.ID}
	for _, c := range children {
		if c.IsCategory() {
			scope = append(scope, c.ID)
		}
	}
	return scope, nil
}

// ListingsContaining returns the categories whose listing can show products
// assigned to categoryID: the category itself and its parent, whose scope
// takes in direct children.
func (r *Resolver) ListingsContaining(ctx context.Context, categoryID uuid.UUID) ([]uuid.UUID, error) {
	node, err := r.tree.FindByID(ctx, categoryID)
	if err != nil {
		return nil, storageErr("find category", err)
	}
	ids := []uuid.UUID{categoryID}
	if node != nil && node.ParentID != nil {
		ids = append(ids, *node.ParentID)
	}
	return ids, nil
}

// orderProducts drops repeated product ids and sorts the rest.
func orderProducts(found []models.Product) []models.Product {
	seen := make(map[uuid.UUID]struct{}, len(found))
	out := make([]models.Product, 0, len(found))
	for _, p := range found {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	slices.SortStableFunc(out, compareProducts)
	return out
}

// compareProducts orders by parent id (products without a parent last,
// like ASC NULLS LAST), sort order, then id.
func compareProducts(a, b models.Product) int {
	if c := compareParent(a.ParentID, b.ParentID); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
		return c
	}
	return bytes.Compare(a.ID[:], b.ID[:])
}

func compareParent(a, b *uuid.UUID) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return bytes.Compare((*a)[:], (*b)[:])
}
