//go:build integration

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogpress/internal/catalog"
	"catalogpress/internal/models"
	"catalogpress/internal/search"
)

func productIDs(items []models.Product) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}
	return ids
}

func TestProductStoreFindByCategoryScope(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	pages := NewPageStore(db)
	products := NewProductStore(db)
	links := NewAssignmentStore(db)

	shop := mustPage(t, pages, nil, models.PageTypeShop, "Shop", true, 0)
	a := mustPage(t, pages, &shop.ID, models.PageTypeCategory, "Anoraks", true, 0)
	b := mustPage(t, pages, &a.ID, models.PageTypeCategory, "Boots", true, 0)
	other := mustPage(t, pages, &shop.ID, models.PageTypeCategory, "Other", true, 1)

	p1 := mustProduct(t, products, nil, "Loose Item", 0)
	p2 := mustProduct(t, products, &b.ID, "Hiking Boot", 0)
	p3 := mustProduct(t, products, &other.ID, "Elsewhere", 0)
	require.NoError(t, links.Link(ctx, a.ID, p1.ID))

	got, err := products.FindByCategoryScope(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	ids := productIDs(got)
	assert.Contains(t, ids, p1.ID)
	assert.Contains(t, ids, p2.ID)
	assert.NotContains(t, ids, p3.ID)

	none, err := products.FindByCategoryScope(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductStoreCRUD(t *testing.T) {
	ctx := context.Background()
	products := NewProductStore(testDB(t))

	p := mustProduct(t, products, nil, "Trail Runner", 3)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "9.99", p.Price.StringFixed(2))

	got, err := products.FindByURLSegment(ctx, "trail-runner")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)

	got.Title = "Trail Runner II"
	require.NoError(t, products.Update(ctx, got))
	again, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trail Runner II", again.Title)

	_, err = products.Create(ctx, &models.Product{Title: "Dup", URLSegment: "trail-runner"})
	assert.True(t, errors.Is(err, catalog.ErrConflict))

	require.NoError(t, products.Delete(ctx, p.ID))
	missing, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductStoreSearch(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	pages := NewPageStore(db)
	products := NewProductStore(db)
	links := NewAssignmentStore(db)

	shop := mustPage(t, pages, nil, models.PageTypeShop, "Shop", true, 0)
	boots := mustPage(t, pages, &shop.ID, models.PageTypeCategory, "Winter Boots", true, 0)
	hats := mustPage(t, pages, &shop.ID, models.PageTypeCategory, "Hats", true, 1)

	p1 := mustProduct(t, products, nil, "Snow Boot", 0)
	p2 := mustProduct(t, products, nil, "Rain Boot", 0)
	p3 := mustProduct(t, products, nil, "Beanie", 0)
	require.NoError(t, links.Link(ctx, boots.ID, p1.ID))
	require.NoError(t, links.Link(ctx, boots.ID, p2.ID))
	require.NoError(t, links.Link(ctx, hats.ID, p3.ID))
	require.NoError(t, links.Link(ctx, hats.ID, p1.ID))

	got, err := products.Search(ctx, 50, search.CategoryFilter{Value: "winter"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p2.ID, p1.ID}, productIDs(got))

	got, err = products.Search(ctx, 50, search.CategoryFilter{Value: "winter"}, search.TitleFilter{Value: "snow"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p1.ID}, productIDs(got))

	got, err = products.Search(ctx, 50, search.CategoryFilter{Value: "winter"}, search.Not{Filter: search.TitleFilter{Value: "rain"}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p1.ID}, productIDs(got))

	got, err = products.Search(ctx, 50, search.CategoryFilter{Value: hats.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p3.ID, p1.ID}, productIDs(got), "category id from the options picker")

	got, err = products.Search(ctx, 50, search.CategoryFilter{Value: uuid.NewString()})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = products.Search(ctx, 50, search.CategoryFilter{Value: "   "})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
