// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"catalogpress/internal/cache"
	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
)

// ListingCache stores rendered listing pages. *cache.ListingCache
// implements it.
type ListingCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
	InvalidateCategory(ctx context.Context, categoryID uuid.UUID)
	InvalidateAll(ctx context.Context)
}

// CategoryTreer returns the nested category tree.
type CategoryTreer interface {
	CategoryTree(ctx context.Context) ([]models.PageNode, error)
}

// Public groups the read-only catalog endpoints. The listing endpoint
// checks the Valkey cache before resolving and stores results on miss.
type Public struct {
	catalog  *catalog.Catalog
	tree     CategoryTreer
	cache    ListingCache
	pageSize int
}

// NewPublic creates the public handler group. cache may be nil.
func NewPublic(c *catalog.Catalog, tree CategoryTreer, lc ListingCache, pageSize int) *Public {
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	return &Public{catalog: c, tree: tree, cache: lc, pageSize: pageSize}
}

// Categories returns the category tree.
func (p *Public) Categories(w http.ResponseWriter, r *http.Request) {
	nodes, err := p.tree.CategoryTree(r.Context())
	if err != nil {
		writeError(w, r, "category tree failed", err)
		return
	}
	if nodes == nil {
		nodes = []models.PageNode{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

// listingResponse is a listing page with its breadcrumb.
type listingResponse struct {
	*catalog.PagedResult[models.Product]
	CategoryID uuid.UUID `json:"category_id"`
	Breadcrumb string    `json:"breadcrumb"`
	HasNext    bool      `json:"has_next"`
}

// Products returns one page of a category listing.
func (p *Public) Products(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}
	page, err := intQuery(r, "page", 1)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	size, err := intQuery(r, "size", p.pageSize)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := cache.ListingKey(id, page, size)
	if p.cache != nil {
		if cached, ok := p.cache.Get(ctx, key); ok {
			w.Header().Set("X-Cache", "HIT")
			writeRaw(w, http.StatusOK, cached)
			return
		}
	}

	result, err := p.catalog.ListProducts(ctx, id, page, size)
	if err != nil {
		writeError(w, r, "category listing failed", err)
		return
	}
	crumb, err := p.catalog.Breadcrumbs.Build(ctx, id, catalog.BreadcrumbOptions{})
	if err != nil {
		writeError(w, r, "category breadcrumb failed", err)
		return
	}

	body, err := json.Marshal(listingResponse{
		PagedResult: result,
		CategoryID:  id,
		Breadcrumb:  crumb,
		HasNext:     result.HasNext(),
	})
	if err != nil {
		writeError(w, r, "encode listing failed", err)
		return
	}

	if p.cache != nil {
		p.cache.Set(ctx, key, body)
		w.Header().Set("X-Cache", "MISS")
	}
	writeRaw(w, http.StatusOK, body)
}

type breadcrumbResponse struct {
	Text     string        `json:"text"`
	Unlinked bool          `json:"unlinked"`
	Trail    []models.Page `json:"trail"`
}

// Breadcrumb returns the breadcrumb of a page.
func (p *Public) Breadcrumb(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "page not found")
		return
	}
	maxDepth, err := intQuery(r, "max_depth", 0)
	if err != nil || maxDepth < 0 {
		jsonError(w, http.StatusBadRequest, "max_depth must be a non-negative integer")
		return
	}

	opts := catalog.BreadcrumbOptions{
		MaxDepth:   maxDepth,
		Unlinked:   boolQuery(r, "unlinked"),
		StopAtType: models.PageType(r.URL.Query().Get("stop_at")),
		ShowHidden: boolQuery(r, "show_hidden"),
	}
	trail, err := p.catalog.Breadcrumbs.Trail(r.Context(), id, opts)
	if err != nil {
		writeError(w, r, "breadcrumb failed", err)
		return
	}
	if trail == nil {
		trail = []models.Page{}
	}
	writeJSON(w, http.StatusOK, breadcrumbResponse{
		Text:     catalog.JoinTrail(trail),
		Unlinked: opts.Unlinked,
		Trail:    trail,
	})
}

// ActiveSection reports whether a path lies in a category's section.
func (p *Public) ActiveSection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, err := uuid.Parse(q.Get("category"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "category must be a uuid")
		return
	}
	path := strings.TrimSpace(q.Get("path"))

	active, err := p.catalog.IsActiveSection(r.Context(), path, id)
	if err != nil {
		writeError(w, r, "active section check failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"active": active})
}

type productResponse struct {
	*models.Product
	Categories []uuid.UUID `json:"categories"`
}

// Product returns a product by URL segment with the categories it is in.
func (p *Public) Product(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	segment := chi.URLParam(r, "segment")

	product, err := p.catalog.ProductBySegment(ctx, segment)
	if err != nil {
		writeError(w, r, "find product failed", err)
		return
	}
	cats, err := p.catalog.ProductCategories(ctx, product)
	if err != nil {
		writeError(w, r, "product categories failed", err)
		return
	}
	if cats == nil {
		cats = []uuid.UUID{}
	}
	slog.Debug("product served", "segment", segment, "categories", len(cats))
	writeJSON(w, http.StatusOK, productResponse{Product: product, Categories: cats})
}
