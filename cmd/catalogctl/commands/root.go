// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package commands implements the catalogctl subcommands.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"catalogpress/cmd/catalogctl/output"
	"catalogpress/internal/catalog"
	"catalogpress/internal/config"
	"catalogpress/internal/database"
	"catalogpress/internal/store"
)

var (
	// Global flags
	dbURL      string
	valkeyAddr string
	noCache    bool
	verbose    bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Inspect and edit the product catalog",
	Long: `catalogctl talks to the catalog database directly.

It lists category products page by page, prints breadcrumbs and the
category tree, and links or unlinks products and categories.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.New(os.Stderr).Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to the POSTGRES_* configuration)")
	rootCmd.PersistentFlags().StringVar(&valkeyAddr, "valkey", "", "Valkey address for listing cache invalidation (defaults to the VALKEY_* configuration)")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Skip listing cache invalidation after writes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(listCmd, breadcrumbCmd, treeCmd, linkCmd, unlinkCmd, migrateCmd, seedCmd)
}

// env holds the opened database and the catalog built on it.
type env struct {
	db          *sql.DB
	pages       *store.PageStore
	products    *store.ProductStore
	assignments *store.AssignmentStore
	catalog     *catalog.Catalog
}

func (e *env) Close() error { return e.db.Close() }

// resolveDSN prefers --db and falls back to the service configuration.
func resolveDSN() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load config: %w", err)
	}
	return cfg.DSN(), nil
}

func openDB(ctx context.Context) (*sql.DB, error) {
	dsn, err := resolveDSN()
	if err != nil {
		return nil, err
	}
	return database.Connect(ctx, dsn)
}

func openEnv(ctx context.Context) (*env, error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, err
	}
	e := &env{
		db:          db,
		pages:       store.NewPageStore(db),
		products:    store.NewProductStore(db),
		assignments: store.NewAssignmentStore(db),
	}
	e.catalog = catalog.New(e.pages, e.products, e.assignments)
	return e, nil
}

func parseID(what, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s id %q is not a uuid", what, raw)
	}
	return id, nil
}

func printer(w io.Writer) *output.Printer { return output.New(w) }
