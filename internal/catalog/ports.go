// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"

	"github.com/google/uuid"

	"catalogpress/internal/models"
)

// The stores below follow one convention: lookups that find nothing return
// (nil, nil). The catalog turns that into ErrNotFound where it matters.

// TreeStore reads the page tree.
type TreeStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
	// Children returns the direct children of a page, in sibling order.
	Children(ctx context.Context, id uuid.UUID) ([]models.Page, error)
	// FindByPath resolves URL segments from the tree root downwards.
	FindByPath(ctx context.Context, segments []string) (*models.Page, error)
	ListByType(ctx context.Context, t models.PageType) ([]models.Page, error)
}

// ProductRepository reads and writes products.
type ProductRepository interface {
	// FindByCategoryScope returns products assigned to, or tree-parented by,
	// any of the given category ids. Rows may repeat.
	FindByCategoryScope(ctx context.Context, scope []uuid.UUID) ([]models.Product, error)
	FindByURLSegment(ctx context.Context, segment string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
}

// AssignmentStore manages the category/product join rows.
type AssignmentStore interface {
	LinkExists(ctx context.Context, categoryID, productID uuid.UUID) (bool, error)
	// Link creates the pair if it does not exist yet.
	Link(ctx context.Context, categoryID, productID uuid.UUID) error
	Unlink(ctx context.Context, categoryID, productID uuid.UUID) error
	CategoriesForProduct(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error)
}
