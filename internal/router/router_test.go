// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the route table, middleware chains and the
// health endpoint. Handlers are built without stores; only requests that
// never reach a store are exercised here.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalogpress/internal/catalog"
	"catalogpress/internal/handlers"
)

func newTestRouter(opts Options) http.Handler {
	c := catalog.New(nil, nil, nil)
	return New(handlers.NewPublic(c, nil, nil, 0), handlers.NewAdmin(c, nil, nil, nil, nil), opts)
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRouterGlobalMiddleware(t *testing.T) {
	h := newTestRouter(Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
	if rr.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestRouterNotFound(t *testing.T) {
	h := newTestRouter(Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	h := newTestRouter(Options{AdminToken: "s3cret"})

	routes := []struct{ method, path string }{
		{http.MethodPost, "/admin/products"},
		{http.MethodGet, "/admin/products/search"},
		{http.MethodGet, "/admin/categories/options"},
		{http.MethodPost, "/admin/categories/a/products/b"},
		{http.MethodDelete, "/admin/categories/a/products/b"},
		{http.MethodPut, "/admin/pages/reorder"},
	}
	for _, rt := range routes {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", rt.method, rt.path, rr.Code)
		}
		if rr.Header().Get("Cache-Control") != "no-store" {
			t.Errorf("%s %s: Cache-Control not no-store", rt.method, rt.path)
		}
	}
}

func TestRouterAdminRateLimit(t *testing.T) {
	h := newTestRouter(Options{AdminToken: "s3cret", AdminRateLimit: 1})

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/admin/products/search", nil)
		req.RemoteAddr = "198.51.100.4:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	if got := send(); got != http.StatusUnauthorized {
		t.Fatalf("first request: got %d, want 401", got)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want 429", got)
	}
}

func TestRouterPublicBadID(t *testing.T) {
	h := newTestRouter(Options{})

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/categories/not-a-uuid/products", nil))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}

func TestRouterAdminPageRoutes(t *testing.T) {
	h := newTestRouter(Options{})

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(method, "/admin/pages/not-a-uuid", nil))

		if rr.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want 404", method, rr.Code)
		}
		if body := rr.Body.String(); !strings.Contains(body, "page not found") {
			t.Errorf("%s: body = %q, want the page handler's error", method, body)
		}
	}
}
