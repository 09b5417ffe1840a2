// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
)

// PageStore reads and writes the page tree.
type PageStore struct {
	db *sql.DB
}

// NewPageStore returns a new PageStore.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, parent_id, type, title, menu_title, url_segment, show_in_menus, sort_order, created_at, updated_at`

// scanPage scans a row into a Page struct.
func scanPage(scanner interface{ Scan(...any) error }) (*models.Page, error) {
	var p models.Page
	err := scanner.Scan(
		&p.ID, &p.ParentID, &p.Type, &p.Title, &p.MenuTitle, &p.URLSegment,
		&p.ShowInMenus, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PageStore) queryPages(ctx context.Context, query string, args ...any) ([]models.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a page by ID. Returns nil if not found.
func (s *PageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE id = $1`, id)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// Children returns the direct children of a page in sibling order.
func (s *PageStore) Children(ctx context.Context, id uuid.UUID) ([]models.Page, error) {
	items, err := s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE parent_id = $1
		ORDER BY sort_order, title`, id)
	if err != nil {
		return nil, fmt.Errorf("list page children: %w", err)
	}
	return items, nil
}

// FindByPath walks URL segments down from the root pages. Returns nil if
// any segment does not resolve.
func (s *PageStore) FindByPath(ctx context.Context, segments []string) (*models.Page, error) {
	var (
		page   *models.Page
		parent *uuid.UUID
	)
	for _, seg := range segments {
		row := s.db.QueryRowContext(ctx, `
			SELECT `+pageColumns+` FROM pages
			WHERE url_segment = $1 AND parent_id IS NOT DISTINCT FROM $2`, seg, parent)
		p, err := scanPage(row)
		if err == sql.ErrNoRows {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("find page by path: %w", err)
		}
		page = p
		parent = &p.ID
	}
	return page, nil
}

// ListByType returns all pages of a type ordered for display.
func (s *PageStore) ListByType(ctx context.Context, t models.PageType) ([]models.Page, error) {
	items, err := s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE type = $1
		ORDER BY sort_order, title`, t)
	if err != nil {
		return nil, fmt.Errorf("list pages by type: %w", err)
	}
	return items, nil
}

// Create inserts a new page and returns it.
func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (parent_id, type, title, menu_title, url_segment, show_in_menus, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+pageColumns,
		p.ParentID, p.Type, p.Title, p.MenuTitle, p.URLSegment, p.ShowInMenus, p.SortOrder,
	)
	result, err := scanPage(row)
	if err != nil {
		return nil, wrapWriteErr("create page", err)
	}
	return result, nil
}

// Update modifies an existing page.
func (s *PageStore) Update(ctx context.Context, p *models.Page) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE pages SET
			parent_id = $1, type = $2, title = $3, menu_title = $4,
			url_segment = $5, show_in_menus = $6, sort_order = $7, updated_at = NOW()
		WHERE id = $8
	`, p.ParentID, p.Type, p.Title, p.MenuTitle, p.URLSegment, p.ShowInMenus, p.SortOrder, p.ID)
	if err != nil {
		return wrapWriteErr("update page", err)
	}
	return nil
}

// Delete removes a page and, through the foreign key, its subtree.
func (s *PageStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// CategoryTree returns category pages nested under their parents. Categories
// whose parent is not a category become roots of the result.
func (s *PageStore) CategoryTree(ctx context.Context) ([]models.PageNode, error) {
	flat, err := s.ListByType(ctx, models.PageTypeCategory)
	if err != nil {
		return nil, err
	}

	known := make(map[uuid.UUID]bool, len(flat))
	for _, p := range flat {
		known[p.ID] = true
	}
	for i := range flat {
		if flat[i].ParentID != nil && !known[*flat[i].ParentID] {
			flat[i].ParentID = nil
		}
	}
	return buildTree(flat, nil, 0), nil
}

// buildTree recursively builds a tree from a flat list.
func buildTree(flat []models.Page, parentID *uuid.UUID, depth int) []models.PageNode {
	var result []models.PageNode
	for _, p := range flat {
		if ptrEqual(p.ParentID, parentID) {
			result = append(result, models.PageNode{
				Page:     p,
				Depth:    depth,
				Children: buildTree(flat, &p.ID, depth+1),
			})
		}
	}
	return result
}

// ptrEqual compares two *uuid.UUID for equality (both nil or same value).
func ptrEqual(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

// ReorderItem represents a single item in a reorder request.
type ReorderItem struct {
	ID       uuid.UUID  `json:"id"`
	ParentID *uuid.UUID `json:"parent_id"`
	Order    int        `json:"order"`
}

// Reorder updates sort_order and parent_id for multiple pages in a transaction.
func (s *PageStore) Reorder(ctx context.Context, items []ReorderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE pages SET parent_id = $1, sort_order = $2, updated_at = $3
		WHERE id = $4`)
	if err != nil {
		return fmt.Errorf("prepare reorder: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, item.ParentID, item.Order, now, item.ID); err != nil {
			return fmt.Errorf("reorder page %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

var _ catalog.TreeStore = (*PageStore)(nil)
