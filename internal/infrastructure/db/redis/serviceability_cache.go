package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/craftkart/merchant-ops/internal/core/domain"
)

const serviceabilityTTL = time.Hour

// ServiceabilityCache caches per-pincode carrier serviceability lookups so a
// burst of shipments into one area costs a single carrier round trip.
type ServiceabilityCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewServiceabilityCache(client *redis.Client, log zerolog.Logger) *ServiceabilityCache {
	return &ServiceabilityCache{client: client, log: log}
}

// Get is best effort. A miss, a decode failure and a Redis outage all return
// ok=false so the caller falls through to the live lookup.
func (c *ServiceabilityCache) Get(ctx context.Context, pincode string) (*domain.PincodeServiceability, bool) {
	raw, err := c.client.Get(ctx, c.key(pincode)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("pincode", pincode).Msg("serviceability cache read failed")
		}
		return nil, false
	}

	var sv domain.PincodeServiceability
	if err := json.Unmarshal(raw, &sv); err != nil {
		return nil, false
	}
	return &sv, true
}

func (c *ServiceabilityCache) Set(ctx context.Context, pincode string, sv *domain.PincodeServiceability) {
	raw, err := json.Marshal(sv)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(pincode), raw, serviceabilityTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("pincode", pincode).Msg("serviceability cache write failed")
	}
}

func (c *ServiceabilityCache) key(pincode string) string {
	return fmt.Sprintf("serviceability:%s", pincode)
}
