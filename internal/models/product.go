// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. A product may sit inside a category page in
// the tree (ParentID) and may also be assigned to any number of categories
// through CategoryAssignment rows.
type Product struct {
	ID         uuid.UUID       `json:"id"`
	ParentID   *uuid.UUID      `json:"parent_id"`
	Title      string          `json:"title"`
	URLSegment string          `json:"url_segment"`
	Price      decimal.Decimal `json:"price"`
	SortOrder  int             `json:"sort_order"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CategoryAssignment links a product to a category page.
// ProductOrder is stored for editors but listings order by tree position.
type CategoryAssignment struct {
	CategoryID   uuid.UUID `json:"category_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductOrder *int      `json:"product_order,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
