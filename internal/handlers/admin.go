// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
	"catalogpress/internal/search"
	"catalogpress/internal/store"
)

// Validation limits for product input.
const (
	maxTitleLen   = 300
	maxSegmentLen = 300
	maxBodyBytes  = 64 << 10
	searchLimit   = 100
)

// ProductAdmin is the product persistence the admin endpoints need beyond
// the catalog. *store.ProductStore implements it.
type ProductAdmin interface {
	Search(ctx context.Context, limit int, filters ...search.Filter) ([]models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AssignmentAdmin exposes assignment rows to editors. *store.AssignmentStore
// implements it.
type AssignmentAdmin interface {
	ListForCategory(ctx context.Context, categoryID uuid.UUID) ([]models.CategoryAssignment, error)
	SetProductOrder(ctx context.Context, categoryID, productID uuid.UUID, order *int) error
}

// PageAdmin edits the page tree. *store.PageStore implements it.
type PageAdmin interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error)
	Create(ctx context.Context, p *models.Page) (*models.Page, error)
	Update(ctx context.Context, p *models.Page) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, items []store.ReorderItem) error
}

var (
	_ ProductAdmin    = (*store.ProductStore)(nil)
	_ AssignmentAdmin = (*store.AssignmentStore)(nil)
	_ PageAdmin       = (*store.PageStore)(nil)
)

// Admin groups the editing endpoints. Every successful write clears the
// listing cache.
type Admin struct {
	catalog     *catalog.Catalog
	products    ProductAdmin
	assignments AssignmentAdmin
	pages       PageAdmin
	cache       ListingCache
}

// NewAdmin creates the admin handler group. cache may be nil.
func NewAdmin(c *catalog.Catalog, products ProductAdmin, assignments AssignmentAdmin, pages PageAdmin, lc ListingCache) *Admin {
	return &Admin{
		catalog:     c,
		products:    products,
		assignments: assignments,
		pages:       pages,
		cache:       lc,
	}
}

func (a *Admin) invalidate(ctx context.Context) {
	if a.cache != nil {
		a.cache.InvalidateAll(ctx)
	}
}

// invalidateScope clears the listings an assignment change can reach.
func (a *Admin) invalidateScope(ctx context.Context, categoryID uuid.UUID) {
	if a.cache == nil {
		return
	}
	ids, err := a.catalog.ListingsContaining(ctx, categoryID)
	if err != nil {
		slog.Warn("listing scope lookup failed, clearing all", "category", categoryID, "error", err)
		a.cache.InvalidateAll(ctx)
		return
	}
	for _, id := range ids {
		a.cache.InvalidateCategory(ctx, id)
	}
}

// productInput is the JSON body for creating or updating a product.
type productInput struct {
	Title      string          `json:"title"`
	URLSegment string          `json:"url_segment"`
	ParentID   *uuid.UUID      `json:"parent_id"`
	Price      decimal.Decimal `json:"price"`
	SortOrder  int             `json:"sort_order"`
}

// validateProduct checks product input and returns the first problem found.
func validateProduct(in productInput) string {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(in.URLSegment) > maxSegmentLen {
		return "url_segment is too long (max 300 characters)"
	}
	if in.Price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

func decodeProduct(w http.ResponseWriter, r *http.Request) (productInput, bool) {
	var in productInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return in, false
	}
	if msg := validateProduct(in); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return in, false
	}
	return in, true
}

type saveResponse struct {
	Product *models.Product `json:"product"`
	Linked  bool            `json:"linked"`
}

// ProductCreate creates a product and assigns it to its parent category.
func (a *Admin) ProductCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	a.save(w, r, &models.Product{
		ParentID:   in.ParentID,
		Title:      in.Title,
		URLSegment: in.URLSegment,
		Price:      in.Price,
		SortOrder:  in.SortOrder,
	}, http.StatusCreated)
}

// ProductUpdate replaces a product's fields.
func (a *Admin) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	in, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	a.save(w, r, &models.Product{
		ID:         id,
		ParentID:   in.ParentID,
		Title:      in.Title,
		URLSegment: in.URLSegment,
		Price:      in.Price,
		SortOrder:  in.SortOrder,
	}, http.StatusOK)
}

func (a *Admin) save(w http.ResponseWriter, r *http.Request, p *models.Product, status int) {
	ctx := r.Context()
	saved, linked, err := a.catalog.SaveProduct(ctx, p)
	if err != nil {
		writeError(w, r, "save product failed", err)
		return
	}
	a.invalidate(ctx)
	slog.Info("product saved", "id", saved.ID, "segment", saved.URLSegment, "linked", linked)
	writeJSON(w, status, saveResponse{Product: saved, Linked: linked})
}

// ProductDelete removes a product and its assignments.
func (a *Admin) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	if err := a.products.Delete(r.Context(), id); err != nil {
		writeError(w, r, "delete product failed", err)
		return
	}
	a.invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (a *Admin) pairParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	categoryID, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "category not found")
		return uuid.Nil, uuid.Nil, false
	}
	productID, ok := uuidParam(r, "productID")
	if !ok {
		jsonError(w, http.StatusNotFound, "product not found")
		return uuid.Nil, uuid.Nil, false
	}
	return categoryID, productID, true
}

// Link assigns a product to a category.
func (a *Admin) Link(w http.ResponseWriter, r *http.Request) {
	categoryID, productID, ok := a.pairParams(w, r)
	if !ok {
		return
	}
	if err := a.catalog.Assigner.Link(r.Context(), categoryID, productID); err != nil {
		writeError(w, r, "link product failed", err)
		return
	}
	a.invalidateScope(r.Context(), categoryID)
	w.WriteHeader(http.StatusNoContent)
}

// Unlink removes a product's assignment to a category.
func (a *Admin) Unlink(w http.ResponseWriter, r *http.Request) {
	categoryID, productID, ok := a.pairParams(w, r)
	if !ok {
		return
	}
	if err := a.catalog.Assigner.Unlink(r.Context(), categoryID, productID); err != nil {
		writeError(w, r, "unlink product failed", err)
		return
	}
	a.invalidateScope(r.Context(), categoryID)
	w.WriteHeader(http.StatusNoContent)
}

// Assignments lists the assignment rows of a category.
func (a *Admin) Assignments(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "category not found")
		return
	}
	rows, err := a.assignments.ListForCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, r, "list assignments failed", err)
		return
	}
	if rows == nil {
		rows = []models.CategoryAssignment{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// SetProductOrder stores the editor order weight of an assignment. A null
// product_order clears it.
func (a *Admin) SetProductOrder(w http.ResponseWriter, r *http.Request) {
	categoryID, productID, ok := a.pairParams(w, r)
	if !ok {
		return
	}
	var body struct {
		ProductOrder *int `json:"product_order"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	err := a.assignments.SetProductOrder(r.Context(), categoryID, productID, body.ProductOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			jsonError(w, http.StatusNotFound, "assignment not found")
			return
		}
		writeError(w, r, "set product order failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search filters products by category (id or title) and product title.
// exclude drops products whose title contains the given text.
func (a *Admin) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := a.products.Search(r.Context(), searchLimit,
		search.CategoryFilter{Value: q.Get("category")},
		search.TitleFilter{Value: q.Get("q")},
		search.Not{Filter: search.TitleFilter{Value: q.Get("exclude")}},
	)
	if err != nil {
		writeError(w, r, "product search failed", err)
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	writeJSON(w, http.StatusOK, items)
}

// CategoryOptions lists categories labelled with their full breadcrumb.
func (a *Admin) CategoryOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := a.catalog.CategoryOptions(r.Context())
	if err != nil {
		writeError(w, r, "category options failed", err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// Reorder moves pages within the tree. Listings depend on placement, so
// the cache is cleared.
func (a *Admin) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []store.ReorderItem
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&items); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(items) == 0 {
		jsonError(w, http.StatusBadRequest, "no items to reorder")
		return
	}
	if err := a.pages.Reorder(r.Context(), items); err != nil {
		writeError(w, r, "reorder pages failed", err)
		return
	}
	a.invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
