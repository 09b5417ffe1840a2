// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogpress/internal/models"
)

func TestSaveProduct_AutoAssignsOnce(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)
	ctx := context.Background()

	saved, linked, err := c.SaveProduct(ctx, &models.Product{
		Title:    "Oak Bench",
		ParentID: ptr(id(1)),
		Price:    decimal.RequireFromString("149.90"),
	})
	require.NoError(t, err)
	assert.True(t, linked)
	assert.Equal(t, "oak-bench", saved.URLSegment)
	assert.Equal(t, 1, products.linkCount(id(1), saved.ID))

	again, linked, err := c.SaveProduct(ctx, saved)
	require.NoError(t, err)
	assert.False(t, linked)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, 1, products.linkCount(id(1), saved.ID))

	res, err := c.ListProducts(ctx, id(1), 1, DefaultPageSize)
	require.NoError(t, err)
	assert.Contains(t, productIDs(res.Items), saved.ID)
}

func TestSaveProduct_Validation(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)
	ctx := context.Background()

	_, _, err := c.SaveProduct(ctx, &models.Product{Title: "   "})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = c.SaveProduct(ctx, &models.Product{Title: "!!!"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = c.SaveProduct(ctx, &models.Product{Title: "Orphan", ParentID: ptr(id(99))})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = c.SaveProduct(ctx, &models.Product{ID: id(99), Title: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveProduct_DuplicateSegment(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)

	_, _, err := c.SaveProduct(context.Background(), &models.Product{Title: "Dup", URLSegment: "p1"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestCategoryOptions(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)

	opts, err := c.CategoryOptions(context.Background())
	require.NoError(t, err)

	labels := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
	}
	assert.Equal(t, []string{
		"Shop > A > D",
		"Shop > A > B > G",
		"Shop > A > B",
		"Shop > A",
	}, labels)
}

func TestProductBySegment(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)
	ctx := context.Background()

	p, err := c.ProductBySegment(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, id(22), p.ID)

	_, err = c.ProductBySegment(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductCategories(t *testing.T) {
	tree, products := fixture()
	c := New(tree, products, products)
	ctx := context.Background()

	p2, err := c.ProductBySegment(ctx, "p2")
	require.NoError(t, err)
	products.addLink(id(1), p2.ID)
	products.addLink(id(2), p2.ID)

	ids, err := c.ProductCategories(ctx, p2)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id(2), id(1)}, ids, "tree parent first, no duplicates")

	p6, err := c.ProductBySegment(ctx, "p6")
	require.NoError(t, err)
	ids, err = c.ProductCategories(ctx, p6)
	require.NoError(t, err)
	assert.Empty(t, ids, "a plain page parent is not a category")
}
