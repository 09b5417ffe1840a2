// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"catalogpress/internal/models"
)

// BreadcrumbSeparator joins titles in a rendered breadcrumb.
const BreadcrumbSeparator = " > "

// BreadcrumbOptions controls which ancestors make it into a breadcrumb.
type BreadcrumbOptions struct {
	// MaxDepth caps the number of collected nodes. 0 means no limit.
	MaxDepth int
	// Unlinked is a rendering hint for templates and does not change the trail.
	Unlinked bool
	// StopAtType ends the walk at the first node of this type (not included).
	StopAtType models.PageType
	// ShowHidden includes nodes that are hidden from menus.
	ShowHidden bool
}

// Breadcrumbs walks the page tree upwards from a node.
type Breadcrumbs struct {
	tree TreeStore
}

// NewBreadcrumbs returns a Breadcrumbs reading from tree.
func NewBreadcrumbs(tree TreeStore) *Breadcrumbs {
	return &Breadcrumbs{tree: tree}
}

// Trail returns the collected nodes ordered root first. Hidden nodes are
// skipped unless ShowHidden is set or the node is the starting node.
// A missing start node yields an empty trail.
func (b *Breadcrumbs) Trail(ctx context.Context, nodeID uuid.UUID, opts BreadcrumbOptions) ([]models.Page, error) {
	start, err := b.tree.FindByID(ctx, nodeID)
	if err != nil {
		return nil, storageErr("find breadcrumb start", err)
	}
	if start == nil {
		return nil, nil
	}

	var trail []models.Page
	visited := make(map[uuid.UUID]bool)
	page := start
	for page != nil &&
		(opts.MaxDepth == 0 || len(trail) < opts.MaxDepth) &&
		(opts.StopAtType == "" || page.Type != opts.StopAtType) {

		// A cycle in the tree would otherwise loop forever.
		if visited[page.ID] {
			break
		}
		visited[page.ID] = true

		if opts.ShowHidden || page.ShowInMenus || page.ID == start.ID {
			trail = append(trail, *page)
		}

		if page.ParentID == nil {
			break
		}
		parent, err := b.tree.FindByID(ctx, *page.ParentID)
		if err != nil {
			return nil, storageErr("find breadcrumb parent", err)
		}
		page = parent
	}

	slices.Reverse(trail)
	return trail, nil
}

// Build renders the trail as "Root > Section > Page".
func (b *Breadcrumbs) Build(ctx context.Context, nodeID uuid.UUID, opts BreadcrumbOptions) (string, error) {
	trail, err := b.Trail(ctx, nodeID, opts)
	if err != nil {
		return "", err
	}
	return JoinTrail(trail), nil
}

// JoinTrail joins the navigation titles of a trail.
func JoinTrail(trail []models.Page) string {
	titles := make([]string, len(trail))
	for i := range trail {
		titles[i] = trail[i].NavTitle()
	}
	return strings.Join(titles, BreadcrumbSeparator)
}
