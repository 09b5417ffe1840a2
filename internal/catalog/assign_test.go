// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultCategoryAssignment(t *testing.T) {
	tree, products := fixture()
	a := NewAssigner(tree, products, products)
	ctx := context.Background()

	p := product(40, ptr(id(1)), 0, "new-chair")
	products.products[p.ID] = p

	created, err := a.EnsureDefaultCategoryAssignment(ctx, &p)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, products.linkCount(id(1), p.ID))

	created, err = a.EnsureDefaultCategoryAssignment(ctx, &p)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 1, products.linkCount(id(1), p.ID))
	assert.Equal(t, 1, products.linkCall, "second run must not reach Link")
}

func TestEnsureDefaultCategoryAssignment_NoCategoryParent(t *testing.T) {
	tree, products := fixture()
	a := NewAssigner(tree, products, products)
	ctx := context.Background()

	tests := []struct {
		name   string
		parent byte
		noPar  bool
	}{
		{name: "no parent", noPar: true},
		{name: "plain page parent", parent: 5},
		{name: "shop parent", parent: 10},
		{name: "missing parent", parent: 77},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := product(41, ptr(id(tt.parent)), 0, "x")
			if tt.noPar {
				p.ParentID = nil
			}
			created, err := a.EnsureDefaultCategoryAssignment(ctx, &p)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Zero(t, products.linkCall)
		})
	}
}

func TestLinkAndUnlink(t *testing.T) {
	tree, products := fixture()
	a := NewAssigner(tree, products, products)
	ctx := context.Background()

	require.NoError(t, a.Link(ctx, id(2), id(21)))
	require.NoError(t, a.Link(ctx, id(2), id(21)))
	assert.Equal(t, 1, products.linkCount(id(2), id(21)))

	require.NoError(t, a.Unlink(ctx, id(2), id(21)))
	assert.Zero(t, products.linkCount(id(2), id(21)))

	// Unlinking again is fine.
	require.NoError(t, a.Unlink(ctx, id(2), id(21)))
}

func TestLink_NotFound(t *testing.T) {
	tree, products := fixture()
	a := NewAssigner(tree, products, products)
	ctx := context.Background()

	assert.ErrorIs(t, a.Link(ctx, id(99), id(21)), ErrNotFound, "missing category")
	assert.ErrorIs(t, a.Link(ctx, id(5), id(21)), ErrNotFound, "page is not a category")
	assert.ErrorIs(t, a.Link(ctx, id(1), id(99)), ErrNotFound, "missing product")
}
