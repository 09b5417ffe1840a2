// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"catalogpress/internal/models"
	"catalogpress/internal/slug"
)

// memTree is an in-memory TreeStore.
type memTree struct {
	mu    sync.Mutex
	pages map[uuid.UUID]models.Page
	err   error
}

func newMemTree(pages ...models.Page) *memTree {
	t := &memTree{pages: make(map[uuid.UUID]models.Page)}
	for _, p := range pages {
		t.pages[p.ID] = p
	}
	return t
}

func (t *memTree) FindByID(_ context.Context, id uuid.UUID) (*models.Page, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	p, ok := t.pages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memTree) Children(_ context.Context, id uuid.UUID) ([]models.Page, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	var out []models.Page
	for _, p := range t.pages {
		if p.ParentID != nil && *p.ParentID == id {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b models.Page) int { return a.SortOrder - b.SortOrder })
	return out, nil
}

func (t *memTree) FindByPath(_ context.Context, segments []string) (*models.Page, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	var parent *uuid.UUID
	var found *models.Page
	for _, seg := range segments {
		found = nil
		for _, p := range t.pages {
			if p.URLSegment == seg && sameParent(p.ParentID, parent) {
				found = &p
				break
			}
		}
		if found == nil {
			return nil, nil
		}
		id := found.ID
		parent = &id
	}
	return found, nil
}

func (t *memTree) ListByType(_ context.Context, typ models.PageType) ([]models.Page, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	var out []models.Page
	for _, p := range t.pages {
		if p.Type == typ {
			out = append(out, p)
		}
	}
	return out, nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// memCatalog implements ProductRepository and AssignmentStore over shared
// maps so the membership query can see both products and links.
type memCatalog struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
	links    []models.CategoryAssignment
	linkCall int
	err      error
}

func newMemCatalog(products ...models.Product) *memCatalog {
	c := &memCatalog{products: make(map[uuid.UUID]models.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *memCatalog) FindByCategoryScope(_ context.Context, scope []uuid.UUID) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	// Emulates the LEFT JOIN: one row per matching link plus tree matches,
	// so duplicates are expected.
	var out []models.Product
	for _, l := range c.links {
		if slices.Contains(scope, l.CategoryID) {
			if p, ok := c.products[l.ProductID]; ok {
				out = append(out, p)
			}
		}
	}
	for _, p := range c.products {
		if p.ParentID != nil && slices.Contains(scope, *p.ParentID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *memCatalog) FindByURLSegment(_ context.Context, segment string) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	for _, p := range c.products {
		if p.URLSegment == segment {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *memCatalog) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	p, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memCatalog) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	for _, existing := range c.products {
		if existing.URLSegment == p.URLSegment {
			return nil, fmt.Errorf("create product: %w", ErrConflict)
		}
	}
	created := *p
	created.ID = uuid.New()
	c.products[created.ID] = created
	return &created, nil
}

func (c *memCatalog) Update(_ context.Context, p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.products[p.ID] = *p
	return nil
}

func (c *memCatalog) LinkExists(_ context.Context, categoryID, productID uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	return c.hasLink(categoryID, productID), nil
}

func (c *memCatalog) Link(_ context.Context, categoryID, productID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.linkCall++
	if !c.hasLink(categoryID, productID) {
		c.links = append(c.links, models.CategoryAssignment{CategoryID: categoryID, ProductID: productID})
	}
	return nil
}

func (c *memCatalog) Unlink(_ context.Context, categoryID, productID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.links = slices.DeleteFunc(c.links, func(l models.CategoryAssignment) bool {
		return l.CategoryID == categoryID && l.ProductID == productID
	})
	return nil
}

func (c *memCatalog) CategoriesForProduct(_ context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	var out []uuid.UUID
	for _, l := range c.links {
		if l.ProductID == productID {
			out = append(out, l.CategoryID)
		}
	}
	return out, nil
}

// addLink records an assignment directly, bypassing Link bookkeeping.
func (c *memCatalog) addLink(categoryID, productID uuid.UUID) {
	c.links = append(c.links, models.CategoryAssignment{CategoryID: categoryID, ProductID: productID})
}

func (c *memCatalog) hasLink(categoryID, productID uuid.UUID) bool {
	for _, l := range c.links {
		if l.CategoryID == categoryID && l.ProductID == productID {
			return true
		}
	}
	return false
}

func (c *memCatalog) linkCount(categoryID, productID uuid.UUID) int {
	n := 0
	for _, l := range c.links {
		if l.CategoryID == categoryID && l.ProductID == productID {
			n++
		}
	}
	return n
}

// id builds a deterministic uuid whose last byte is n, so ordering by id
// follows n.
func id(n byte) uuid.UUID {
	var u uuid.UUID
	u[15] = n
	return u
}

func ptr(u uuid.UUID) *uuid.UUID { return &u }

func category(n byte, parent *uuid.UUID, title string, visible bool) models.Page {
	return models.Page{
		ID:          id(n),
		ParentID:    parent,
		Type:        models.PageTypeCategory,
		Title:       title,
		URLSegment:  slug.Generate(title),
		ShowInMenus: visible,
	}
}

func product(n byte, parent *uuid.UUID, sort int, segment string) models.Product {
	return models.Product{
		ID:         id(n),
		ParentID:   parent,
		Title:      segment,
		URLSegment: segment,
		SortOrder:  sort,
	}
}
