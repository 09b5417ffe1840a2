// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"catalogpress/internal/models"
)

// productPathSegment marks product URLs: /shop/product/<url-segment>.
const productPathSegment = "product"

// Navigator answers "is this category the active section" for menus.
type Navigator struct {
	tree        TreeStore
	products    ProductRepository
	assignments AssignmentStore
}

// NewNavigator returns a Navigator over the given stores.
func NewNavigator(tree TreeStore, products ProductRepository, assignments AssignmentStore) *Navigator {
	return &Navigator{tree: tree, products: products, assignments: assignments}
}

// IsActiveSection reports whether currentPath is the category itself, a
// page below it, or a product its listing shows: one placed under or
// assigned to the category or one of its direct child categories. Paths
// that resolve to nothing are simply not active.
func (n *Navigator) IsActiveSection(ctx context.Context, currentPath string, categoryID uuid.UUID) (bool, error) {
	segments := splitPath(currentPath)

	if seg, ok := productSegment(segments); ok {
		product, err := n.products.FindByURLSegment(ctx, seg)
		if err != nil {
			return false, storageErr("find product by url segment", err)
		}
		if product == nil {
			return false, nil
		}
		scope, err := categoryScope(ctx, n.tree, categoryID)
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return n.inScope(ctx, product, scope)
	}

	if len(segments) == 0 {
		return false, nil
	}
	page, err := n.tree.FindByPath(ctx, segments)
	if err != nil {
		return false, storageErr("find page by path", err)
	}

	visited := make(map[uuid.UUID]bool)
	for page != nil && !visited[page.ID] {
		if page.ID == categoryID {
			return true, nil
		}
		visited[page.ID] = true
		if page.ParentID == nil {
			break
		}
		if page, err = n.tree.FindByID(ctx, *page.ParentID); err != nil {
			return false, storageErr("find parent page", err)
		}
	}
	return false, nil
}

// inScope reports whether a product is a member of any category in scope.
func (n *Navigator) inScope(ctx context.Context, product *models.Product, scope []uuid.UUID) (bool, error) {
	if product.ParentID != nil && slices.Contains(scope, *product.ParentID) {
		return true, nil
	}
	assigned, err := n.assignments.CategoriesForProduct(ctx, product.ID)
	if err != nil {
		return false, storageErr("list product categories", err)
	}
	for _, id := range assigned {
		if slices.Contains(scope, id) {
			return true, nil
		}
	}
	return false, nil
}

func splitPath(p string) []string {
	p, _, _ = strings.Cut(p, "?")
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// productSegment returns the segment following "product" in a path.
func productSegment(segments []string) (string, bool) {
	for i, s := range segments {
		if s == productPathSegment && i+1 < len(segments) {
			return segments[i+1], true
		}
	}
	return "", false
}
