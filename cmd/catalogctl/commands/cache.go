// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package commands

import (
	"context"

	"github.com/google/uuid"

	"catalogpress/cmd/catalogctl/output"
	"catalogpress/internal/cache"
	"catalogpress/internal/config"
)

// categoryInvalidator drops the cached listing pages of one category.
// *cache.ListingCache implements it.
type categoryInvalidator interface {
	InvalidateCategory(ctx context.Context, categoryID uuid.UUID)
}

// valkeySettings prefers --valkey and falls back to the VALKEY_*
// configuration for the address and password.
func valkeySettings() (addr, password string, err error) {
	cfg, err := config.Load()
	if err != nil {
		if valkeyAddr == "" {
			return "", "", err
		}
		return valkeyAddr, "", nil
	}
	addr = cfg.ValkeyAddr()
	if valkeyAddr != "" {
		addr = valkeyAddr
	}
	return addr, cfg.ValkeyPassword, nil
}

// clearListings removes the cached listings an assignment change to
// categoryID affects. A missing cache is reported and otherwise ignored;
// stale entries then expire with their TTL.
func clearListings(ctx context.Context, e *env, p *output.Printer, categoryID uuid.UUID) {
	if noCache {
		return
	}
	ids, err := e.catalog.ListingsContaining(ctx, categoryID)
	if err != nil {
		p.Warning("cached listings not cleared: %v", err)
		return
	}
	addr, password, err := valkeySettings()
	if err != nil {
		p.Warning("cached listings not cleared: %v", err)
		return
	}
	client, err := cache.ConnectValkey(ctx, addr, password)
	if err != nil {
		p.Warning("valkey at %s unavailable, cached listings expire on their own", addr)
		return
	}
	defer client.Close()

	invalidate(ctx, cache.NewListingCache(client, 0), ids)
	p.Muted("cleared cached listings of %d categories", len(ids))
}

func invalidate(ctx context.Context, lc categoryInvalidator, ids []uuid.UUID) {
	for _, id := range ids {
		lc.InvalidateCategory(ctx, id)
	}
}
