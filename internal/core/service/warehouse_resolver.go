package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
	"github.com/craftkart/merchant-ops/internal/core/ports"
)

// Warehouse resolution tiers, in fallback order.
const (
	WarehouseSourceNamed     = "named"
	WarehouseSourceAnyActive = "any_active"
	WarehouseSourceDefault   = "default"
)

// defaultWarehouse is the built-in last-resort pickup origin. Missing
// warehouse data degrades to it rather than failing the request.
var defaultWarehouse = domain.Warehouse{
	Name:                  "CraftKart Main Warehouse",
	Address:               "Plot 12, Udyog Vihar Phase 4, Near Metro Pillar 121",
	City:                  "Gurugram",
	State:                 "Haryana",
	Pincode:               "122015",
	Phone:                 "9811000000",
	Active:                true,
	RegisteredWithCarrier: true,
}

// ResolvedWarehouse is a warehouse plus the tier that produced it, so tests
// and logs can assert which fallback fired.
type ResolvedWarehouse struct {
	domain.Warehouse
	Source string
}

// WarehouseResolver resolves a pickup location name through a three-tier
// fallback: named warehouse, any active warehouse, built-in default.
type WarehouseResolver struct {
	repo ports.WarehouseRepository
	log  zerolog.Logger
}

func NewWarehouseResolver(repo ports.WarehouseRepository, log zerolog.Logger) *WarehouseResolver {
	return &WarehouseResolver{repo: repo, log: log}
}

// Resolve never fails; missing data degrades tier by tier.
func (r *WarehouseResolver) Resolve(ctx context.Context, name string) ResolvedWarehouse {
	if name != "" {
		wh, err := r.repo.FindByName(ctx, name)
		if err == nil && wh != nil && wh.Active {
			return ResolvedWarehouse{Warehouse: *wh, Source: WarehouseSourceNamed}
		}
		r.log.Warn().Str("pickup_location", name).Err(err).Msg("named warehouse unavailable, trying any active")
	}

	wh, err := r.repo.FindAnyActive(ctx)
	if err == nil && wh != nil {
		r.log.Info().Str("warehouse", wh.Name).Msg("pickup resolved to an active warehouse")
		return ResolvedWarehouse{Warehouse: *wh, Source: WarehouseSourceAnyActive}
	}

	r.log.Warn().Err(err).Msg("no active warehouse found, using built-in default")
	return ResolvedWarehouse{Warehouse: defaultWarehouse, Source: WarehouseSourceDefault}
}
