// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains of the
// catalog API: public read endpoints and a token-protected admin group.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"catalogpress/internal/handlers"
	"catalogpress/internal/middleware"
)

// Options configures the admin route group.
type Options struct {
	AdminToken     string
	AdminRateLimit int // requests per minute per client, 0 disables
}

// New creates the chi router with all middleware and routes wired up.
func New(public *handlers.Public, admin *handlers.Admin, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Get("/categories", public.Categories)
	r.Route("/categories/{id}", func(r chi.Router) {
		r.Get("/products", public.Products)
		r.Get("/breadcrumb", public.Breadcrumb)
	})
	r.Get("/nav/active", public.ActiveSection)
	r.Get("/products/{segment}", public.Product)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		if opts.AdminRateLimit > 0 {
			r.Use(middleware.NewRateLimiter(opts.AdminRateLimit, time.Minute).Middleware)
		}
		r.Use(middleware.RequireToken(opts.AdminToken))

		r.Route("/products", func(r chi.Router) {
			r.Post("/", admin.ProductCreate)
			r.Get("/search", admin.Search)
			r.Put("/{id}", admin.ProductUpdate)
			r.Delete("/{id}", admin.ProductDelete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/options", admin.CategoryOptions)
			r.Get("/{id}/assignments", admin.Assignments)
			r.Post("/{id}/products/{productID}", admin.Link)
			r.Delete("/{id}/products/{productID}", admin.Unlink)
			r.Put("/{id}/products/{productID}/order", admin.SetProductOrder)
		})

		r.Route("/pages", func(r chi.Router) {
			r.Post("/", admin.PageCreate)
			r.Put("/reorder", admin.Reorder)
			r.Put("/{id}", admin.PageUpdate)
			r.Delete("/{id}", admin.PageDelete)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
