// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
)

// AssignmentStore manages rows in the category_products join table.
type AssignmentStore struct {
	db *sql.DB
}

// NewAssignmentStore returns a new AssignmentStore.
func NewAssignmentStore(db *sql.DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// LinkExists reports whether the product is assigned to the category.
func (s *AssignmentStore) LinkExists(ctx context.Context, categoryID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM category_products
			WHERE category_id = $1 AND product_id = $2
		)`, categoryID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category link: %w", err)
	}
	return exists, nil
}

// Link assigns a product to a category. An existing pair is left alone.
func (s *AssignmentStore) Link(ctx context.Context, categoryID, productID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_products (category_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (category_id, product_id) DO NOTHING`, categoryID, productID)
	if err != nil {
		return fmt.Errorf("link product to category: %w", err)
	}
	return nil
}

// Unlink removes an assignment if it exists.
func (s *AssignmentStore) Unlink(ctx context.Context, categoryID, productID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM category_products WHERE category_id = $1 AND product_id = $2`,
		categoryID, productID)
	if err != nil {
		return fmt.Errorf("unlink product from category: %w", err)
	}
	return nil
}

// CategoriesForProduct returns the ids of categories a product is assigned to.
func (s *AssignmentStore) CategoriesForProduct(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id FROM category_products
		WHERE product_id = $1
		ORDER BY created_at, category_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListForCategory returns the assignment rows of a category.
func (s *AssignmentStore) ListForCategory(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAssignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_id, product_id, product_order, created_at
		FROM category_products
		WHERE category_id = $1
		ORDER BY product_order NULLS LAST, created_at`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category assignments: %w", err)
	}
	defer rows.Close()

	var items []models.CategoryAssignment
	for rows.Next() {
		var a models.CategoryAssignment
		if err := rows.Scan(&a.CategoryID, &a.ProductID, &a.ProductOrder, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category assignment: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// SetProductOrder stores the editor-facing order weight of an assignment.
// Listings do not sort by it.
func (s *AssignmentStore) SetProductOrder(ctx context.Context, categoryID, productID uuid.UUID, order *int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE category_products SET product_order = $1
		WHERE category_id = $2 AND product_id = $3`, order, categoryID, productID)
	if err != nil {
		return fmt.Errorf("set product order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("set product order: %w", sql.ErrNoRows)
	}
	return nil
}

var _ catalog.AssignmentStore = (*AssignmentStore)(nil)
