// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"catalogpress/internal/models"
)

// Assigner creates and removes category assignments.
type Assigner struct {
	tree        TreeStore
	products    ProductRepository
	assignments AssignmentStore
}

// NewAssigner returns an Assigner over the given stores.
func NewAssigner(tree TreeStore, products ProductRepository, assignments AssignmentStore) *Assigner {
	return &Assigner{tree: tree, products: products, assignments: assignments}
}

// EnsureDefaultCategoryAssignment assigns a product to the category it sits
// under in the tree, unless that assignment already exists. It reports
// whether a new assignment was created. Running it again is a no-op.
func (a *Assigner) EnsureDefaultCategoryAssignment(ctx context.Context, product *models.Product) (bool, error) {
	if product.ParentID == nil {
		return false, nil
	}

	parent, err := a.tree.FindByID(ctx, *product.ParentID)
	if err != nil {
		return false, storageErr("find product parent", err)
	}
	if parent == nil || !parent.IsCategory() {
		return false, nil
	}

	exists, err := a.assignments.LinkExists(ctx, parent.ID, product.ID)
	if err != nil {
		return false, storageErr("check category assignment", err)
	}
	if exists {
		return false, nil
	}

	if err := a.assignments.Link(ctx, parent.ID, product.ID); err != nil {
		return false, storageErr("link product to parent category", err)
	}

	slog.Info("product assigned to parent category",
		"product", product.ID,
		"category", parent.ID,
	)
	return true, nil
}

// Link assigns a product to a category. Both must exist; linking an
// existing pair again does nothing.
func (a *Assigner) Link(ctx context.Context, categoryID, productID uuid.UUID) error {
	if err := a.requirePair(ctx, categoryID, productID); err != nil {
		return err
	}
	if err := a.assignments.Link(ctx, categoryID, productID); err != nil {
		return storageErr("link product to category", err)
	}
	return nil
}

// Unlink removes an assignment. Removing a missing pair is not an error.
func (a *Assigner) Unlink(ctx context.Context, categoryID, productID uuid.UUID) error {
	if err := a.assignments.Unlink(ctx, categoryID, productID); err != nil {
		return storageErr("unlink product from category", err)
	}
	return nil
}

func (a *Assigner) requirePair(ctx context.Context, categoryID, productID uuid.UUID) error {
	category, err := a.tree.FindByID(ctx, categoryID)
	if err != nil {
		return storageErr("find category", err)
	}
	if category == nil || !category.IsCategory() {
		return fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
	}

	product, err := a.products.FindByID(ctx, productID)
	if err != nil {
		return storageErr("find product", err)
	}
	if product == nil {
		return fmt.Errorf("product %s: %w", productID, ErrNotFound)
	}
	return nil
}
