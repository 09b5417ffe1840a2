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
	"unicode/utf8"

	"github.com/google/uuid"

	"catalogpress/internal/models"
	"catalogpress/internal/slug"
)

// maxAncestorWalk bounds the parent walk used to reject cyclic moves.
const maxAncestorWalk = 64

// pageInput is the JSON body for creating or updating a page.
type pageInput struct {
	ParentID    *uuid.UUID      `json:"parent_id"`
	Type        models.PageType `json:"type"`
	Title       string          `json:"title"`
	MenuTitle   string          `json:"menu_title"`
	URLSegment  string          `json:"url_segment"`
	ShowInMenus *bool           `json:"show_in_menus"`
	SortOrder   int             `json:"sort_order"`
}

// validatePage checks page input and returns the first problem found.
func validatePage(in pageInput) string {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(in.MenuTitle) > maxTitleLen {
		return "menu_title is too long (max 300 characters)"
	}
	if utf8.RuneCountInString(in.URLSegment) > maxSegmentLen {
		return "url_segment is too long (max 300 characters)"
	}
	switch in.Type {
	case "", models.PageTypePage, models.PageTypeCategory, models.PageTypeShop:
	default:
		return "type must be page, category or shop"
	}
	return ""
}

// toPage builds the page to store. Type defaults to category, visibility to
// shown, and the URL segment to the slugged title.
func (in pageInput) toPage(id uuid.UUID) (*models.Page, string) {
	p := &models.Page{
		ID:          id,
		ParentID:    in.ParentID,
		Type:        in.Type,
		Title:       strings.TrimSpace(in.Title),
		MenuTitle:   strings.TrimSpace(in.MenuTitle),
		URLSegment:  strings.TrimSpace(in.URLSegment),
		ShowInMenus: true,
		SortOrder:   in.SortOrder,
	}
	if p.Type == "" {
		p.Type = models.PageTypeCategory
	}
	if in.ShowInMenus != nil {
		p.ShowInMenus = *in.ShowInMenus
	}
	if p.URLSegment == "" {
		p.URLSegment = slug.Generate(p.Title)
	}
	if p.URLSegment == "" {
		return nil, "url_segment could not be derived from the title"
	}
	return p, ""
}

func decodePage(w http.ResponseWriter, r *http.Request) (pageInput, bool) {
	var in pageInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid JSON body")
		return in, false
	}
	if msg := validatePage(in); msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return in, false
	}
	return in, true
}

// checkParent reports a client error when the parent is missing or when
// moving page id under it would create a cycle. id is uuid.Nil on create.
func (a *Admin) checkParent(ctx context.Context, id uuid.UUID, parentID *uuid.UUID) (string, error) {
	if parentID == nil {
		return "", nil
	}
	cur := *parentID
	for range maxAncestorWalk {
		if cur == id {
			return "a page cannot be moved under itself", nil
		}
		page, err := a.pages.FindByID(ctx, cur)
		if err != nil {
			return "", err
		}
		if page == nil {
			if cur == *parentID {
				return "parent page not found", nil
			}
			return "", nil
		}
		if page.ParentID == nil {
			return "", nil
		}
		cur = *page.ParentID
	}
	return "page tree is too deep", nil
}

// PageCreate adds a page to the tree.
func (a *Admin) PageCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodePage(w, r)
	if !ok {
		return
	}
	page, msg := in.toPage(uuid.Nil)
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	msg, err := a.checkParent(ctx, uuid.Nil, page.ParentID)
	if err != nil {
		writeError(w, r, "create page failed", err)
		return
	}
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.pages.Create(ctx, page)
	if err != nil {
		writeError(w, r, "create page failed", err)
		return
	}
	a.invalidate(ctx)
	slog.Info("page created", "id", created.ID, "type", created.Type, "segment", created.URLSegment)
	writeJSON(w, http.StatusCreated, created)
}

// PageUpdate replaces a page's fields, including its position in the tree.
func (a *Admin) PageUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "page not found")
		return
	}
	in, ok := decodePage(w, r)
	if !ok {
		return
	}
	page, msg := in.toPage(id)
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	existing, err := a.pages.FindByID(ctx, id)
	if err != nil {
		writeError(w, r, "update page failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "page not found")
		return
	}
	msg, err = a.checkParent(ctx, id, page.ParentID)
	if err != nil {
		writeError(w, r, "update page failed", err)
		return
	}
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	if err := a.pages.Update(ctx, page); err != nil {
		writeError(w, r, "update page failed", err)
		return
	}
	page.CreatedAt = existing.CreatedAt
	a.invalidate(ctx)
	slog.Info("page updated", "id", id)
	writeJSON(w, http.StatusOK, page)
}

// PageDelete removes a page with its subtree. Products placed under it stay
// and lose their tree parent.
func (a *Admin) PageDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(r, "id")
	if !ok {
		jsonError(w, http.StatusNotFound, "page not found")
		return
	}

	ctx := r.Context()
	existing, err := a.pages.FindByID(ctx, id)
	if err != nil {
		writeError(w, r, "delete page failed", err)
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "page not found")
		return
	}
	if err := a.pages.Delete(ctx, id); err != nil {
		writeError(w, r, "delete page failed", err)
		return
	}
	a.invalidate(ctx)
	slog.Info("page deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
