// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PageType tags a node in the page tree with the kind of page it is.
type PageType string

const (
	PageTypePage     PageType = "page"
	PageTypeCategory PageType = "category"
	PageTypeShop     PageType = "shop"
)

// Page is a node in the site tree. Product categories are pages with
// Type == PageTypeCategory; their position in the tree is the category
// hierarchy.
type Page struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Type        PageType   `json:"type"`
	Title       string     `json:"title"`
	MenuTitle   string     `json:"menu_title"`
	URLSegment  string     `json:"url_segment"`
	ShowInMenus bool       `json:"show_in_menus"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsCategory reports whether the page is a product category.
func (p *Page) IsCategory() bool {
	return p.Type == PageTypeCategory
}

// NavTitle returns the menu title, falling back to the page title.
func (p *Page) NavTitle() string {
	if p.MenuTitle != "" {
		return p.MenuTitle
	}
	return p.Title
}

// PageNode is a page with its nested children, used for tree views.
type PageNode struct {
	Page
	Depth    int        `json:"depth"`
	Children []PageNode `json:"children,omitempty"`
}
