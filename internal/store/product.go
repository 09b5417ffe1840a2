// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
	"catalogpress/internal/search"
)

// ProductStore handles product persistence and category-scoped lookups.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

var productColumns = []string{
	"p.id", "p.parent_id", "p.title", "p.url_segment", "p.price",
	"p.sort_order", "p.created_at", "p.updated_at",
}

const productSelect = `
	SELECT p.id, p.parent_id, p.title, p.url_segment, p.price,
	       p.sort_order, p.created_at, p.updated_at
	FROM products p`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.ParentID, &p.Title, &p.URLSegment, &p.Price,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByCategoryScope returns products assigned to, or placed under, any
// of the given categories. A product matched more than once is returned
// once per match.
func (s *ProductStore) FindByCategoryScope(ctx context.Context, scope []uuid.UUID) ([]models.Product, error) {
	if len(scope) == 0 {
		return nil, nil
	}
	ids := make([]string, len(scope))
	for i, id := range scope {
		ids[i] = id.String()
	}

	items, err := s.queryProducts(ctx, productSelect+`
		LEFT JOIN category_products cp ON cp.product_id = p.id
		WHERE cp.category_id = ANY($1::uuid[]) OR p.parent_id = ANY($1::uuid[])
		ORDER BY p.parent_id ASC NULLS LAST, p.sort_order ASC, p.id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("find products by category scope: %w", err)
	}
	return items, nil
}

// FindByURLSegment retrieves a product by its URL segment. Returns nil if not found.
func (s *ProductStore) FindByURLSegment(ctx context.Context, segment string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, productSelect+` WHERE p.url_segment = $1`, segment)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by url segment: %w", err)
	}
	return p, nil
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it with the generated ID.
func (s *ProductStore) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products AS p (parent_id, title, url_segment, price, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+strings.Join(productColumns, ", "),
		p.ParentID, p.Title, p.URLSegment, p.Price, p.SortOrder,
	)
	result, err := scanProduct(row)
	if err != nil {
		return nil, wrapWriteErr("create product", err)
	}
	return result, nil
}

// Update modifies an existing product.
func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products SET
			parent_id = $1, title = $2, url_segment = $3, price = $4,
			sort_order = $5, updated_at = NOW()
		WHERE id = $6
	`, p.ParentID, p.Title, p.URLSegment, p.Price, p.SortOrder, p.ID)
	if err != nil {
		return wrapWriteErr("update product", err)
	}
	return nil
}

// Delete removes a product. Its category assignments go with it.
func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Search runs the admin product search with the given filters applied.
func (s *ProductStore) Search(ctx context.Context, limit int, filters ...search.Filter) ([]models.Product, error) {
	q := search.NewQuery("products p", productColumns...).
		OrderBy("p.title, p.id").
		Limit(limit)
	search.ApplyAll(q, filters...)

	query, args := q.SQL()
	items, err := s.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return items, nil
}

var _ catalog.ProductRepository = (*ProductStore)(nil)
