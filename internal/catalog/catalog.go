// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements product category listings over a page tree:
// which products a category shows, in what order, page by page, plus the
// breadcrumb, navigation and assignment rules that go with it.
package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"catalogpress/internal/models"
	"catalogpress/internal/slug"
)

// Catalog bundles the category components behind one set of stores.
type Catalog struct {
	*Resolver
	*Navigator

	Breadcrumbs *Breadcrumbs
	Assigner    *Assigner

	tree        TreeStore
	products    ProductRepository
	assignments AssignmentStore
}

// New wires every component to the same stores.
func New(tree TreeStore, products ProductRepository, assignments AssignmentStore) *Catalog {
	return &Catalog{
		Resolver:    NewResolver(tree, products),
		Navigator:   NewNavigator(tree, products, assignments),
		Breadcrumbs: NewBreadcrumbs(tree),
		Assigner:    NewAssigner(tree, products, assignments),
		tree:        tree,
		products:    products,
		assignments: assignments,
	}
}

// SaveProduct creates the product when it has no id and updates it
// otherwise, then makes sure it is assigned to the category it sits under.
// The second return value reports whether that assignment was new.
func (c *Catalog) SaveProduct(ctx context.Context, p *models.Product) (*models.Product, bool, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, false, invalidArg("product title is required")
	}
	if p.URLSegment == "" {
		p.URLSegment = slug.Generate(p.Title)
	}
	if p.URLSegment == "" {
		return nil, false, invalidArg("product url segment is empty")
	}

	if p.ParentID != nil {
		parent, err := c.tree.FindByID(ctx, *p.ParentID)
		if err != nil {
			return nil, false, storageErr("find product parent", err)
		}
		if parent == nil {
			return nil, false, fmt.Errorf("parent page %s: %w", *p.ParentID, ErrNotFound)
		}
	}

	saved, err := c.persist(ctx, p)
	if err != nil {
		return nil, false, err
	}

	linked, err := c.Assigner.EnsureDefaultCategoryAssignment(ctx, saved)
	if err != nil {
		return nil, false, err
	}
	return saved, linked, nil
}

func (c *Catalog) persist(ctx context.Context, p *models.Product) (*models.Product, error) {
	if p.ID == uuid.Nil {
		created, err := c.products.Create(ctx, p)
		if err != nil {
			return nil, storageErr("create product", err)
		}
		return created, nil
	}

	existing, err := c.products.FindByID(ctx, p.ID)
	if err != nil {
		return nil, storageErr("find product", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("product %s: %w", p.ID, ErrNotFound)
	}
	if err := c.products.Update(ctx, p); err != nil {
		return nil, storageErr("update product", err)
	}
	return p, nil
}

// ProductBySegment returns the product with the given URL segment.
func (c *Catalog) ProductBySegment(ctx context.Context, segment string) (*models.Product, error) {
	p, err := c.products.FindByURLSegment(ctx, segment)
	if err != nil {
		return nil, storageErr("find product by url segment", err)
	}
	if p == nil {
		return nil, fmt.Errorf("product %q: %w", segment, ErrNotFound)
	}
	return p, nil
}

// ProductCategories returns the ids of every category the product belongs
// to: its tree parent when that is a category, then its assignments.
func (c *Catalog) ProductCategories(ctx context.Context, p *models.Product) ([]uuid.UUID, error) {
	linked, err := c.assignments.CategoriesForProduct(ctx, p.ID)
	if err != nil {
		return nil, storageErr("list product categories", err)
	}

	var ids []uuid.UUID
	if p.ParentID != nil {
		parent, err := c.tree.FindByID(ctx, *p.ParentID)
		if err != nil {
			return nil, storageErr("find product parent", err)
		}
		if parent != nil && parent.IsCategory() {
			ids = append(ids, parent.ID)
		}
	}
	for _, id := range linked {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// CategoryOption is a category labelled with its full breadcrumb, for
// admin pickers.
type CategoryOption struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

// CategoryOptions lists every category with a breadcrumb label that
// includes hidden ancestors, sorted by label descending.
func (c *Catalog) CategoryOptions(ctx context.Context) ([]CategoryOption, error) {
	cats, err := c.tree.ListByType(ctx, models.PageTypeCategory)
	if err != nil {
		return nil, storageErr("list categories", err)
	}

	opts := make([]CategoryOption, 0, len(cats))
	for _, cat := range cats {
		label, err := c.Breadcrumbs.Build(ctx, cat.ID, BreadcrumbOptions{ShowHidden: true})
		if err != nil {
			return nil, err
		}
		opts = append(opts, CategoryOption{ID: cat.ID, Label: label})
	}

	slices.SortStableFunc(opts, func(a, b CategoryOption) int {
		return cmp.Compare(b.Label, a.Label)
	})
	return opts, nil
}
