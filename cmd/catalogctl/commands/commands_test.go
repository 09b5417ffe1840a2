// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogpress/internal/models"
)

// run executes the root command with args, capturing output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestArgumentValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"list needs an id", []string{"list"}, "accepts 1 arg"},
		{"list rejects bad uuid", []string{"list", "boots"}, "is not a uuid"},
		{"list rejects zero page", []string{"list", uuid.NewString(), "--page", "0"}, "at least 1"},
		{"breadcrumb rejects bad uuid", []string{"breadcrumb", "x"}, "is not a uuid"},
		{"link needs two ids", []string{"link", uuid.NewString()}, "accepts 2 arg"},
		{"unlink rejects bad product", []string{"unlink", uuid.NewString(), "p"}, "product id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	listPage = 1
}

func TestWriteTree(t *testing.T) {
	root := models.Page{ID: uuid.New(), Type: models.PageTypeCategory, Title: "Footwear", ShowInMenus: true}
	child := models.Page{ID: uuid.New(), Type: models.PageTypeCategory, Title: "Hiking Boots", MenuTitle: "Boots"}

	var buf bytes.Buffer
	writeTree(&buf, []models.PageNode{{
		Page:     root,
		Children: []models.PageNode{{Page: child, Depth: 1}},
	}})

	out := buf.String()
	assert.Contains(t, out, "Footwear  "+root.ID.String())
	assert.Contains(t, out, "  Boots (hidden)  "+child.ID.String())
}

type recordingCache struct{ ids []uuid.UUID }

func (r *recordingCache) InvalidateCategory(_ context.Context, id uuid.UUID) {
	r.ids = append(r.ids, id)
}

func TestInvalidate(t *testing.T) {
	boots, footwear := uuid.New(), uuid.New()
	rec := &recordingCache{}
	invalidate(context.Background(), rec, []uuid.UUID{boots, footwear})
	assert.Equal(t, []uuid.UUID{boots, footwear}, rec.ids)
}

func TestValkeySettings(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("VALKEY_HOST", "valkey.internal")
	t.Setenv("VALKEY_PORT", "6380")
	t.Setenv("VALKEY_PASSWORD", "pw")

	addr, password, err := valkeySettings()
	require.NoError(t, err)
	assert.Equal(t, "valkey.internal:6380", addr)
	assert.Equal(t, "pw", password)

	valkeyAddr = "127.0.0.1:7000"
	t.Cleanup(func() { valkeyAddr = "" })
	addr, _, err = valkeySettings()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", addr)
}

func TestCacheFlags(t *testing.T) {
	for _, name := range []string{"valkey", "no-cache"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}
