//go:build integration

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go starts one PostgreSQL container for the package and hands
// each test a migrated, emptied database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"catalogpress/internal/database"
	"catalogpress/internal/models"
)

var sharedDB *sql.DB

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalogpress"),
		postgres.WithUsername("catalogpress"),
		postgres.WithPassword("catalogpress"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "skipping store integration tests: %v\n", err)
		return 0
	}
	defer func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "terminate container: %v\n", err)
		}
	}()

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "connection string: %v\n", err)
		return 1
	}

	db, err := database.Connect(ctx, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		return 1
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return 1
	}

	sharedDB = db
	return m.Run()
}

// testDB returns the shared database with every table emptied.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	_, err := sharedDB.Exec("TRUNCATE category_products, products, pages CASCADE")
	require.NoError(t, err)
	return sharedDB
}

func mustPage(t *testing.T, s *PageStore, parent *uuid.UUID, typ models.PageType, title string, visible bool, sort int) *models.Page {
	t.Helper()
	p, err := s.Create(context.Background(), &models.Page{
		ParentID:    parent,
		Type:        typ,
		Title:       title,
		URLSegment:  slugFor(title),
		ShowInMenus: visible,
		SortOrder:   sort,
	})
	require.NoError(t, err)
	return p
}

func mustProduct(t *testing.T, s *ProductStore, parent *uuid.UUID, title string, sort int) *models.Product {
	t.Helper()
	p, err := s.Create(context.Background(), &models.Product{
		ParentID:   parent,
		Title:      title,
		URLSegment: slugFor(title),
		Price:      decimal.RequireFromString("9.99"),
		SortOrder:  sort,
	})
	require.NoError(t, err)
	return p
}
