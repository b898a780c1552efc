package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/revivatech/diagnose/engine/domain"
	"github.com/revivatech/diagnose/pkg/resilience"
)

// Lookuper is the catalog backend consumed by the Resolver. *Store satisfies
// it; a nil backend leaves the resolver in pattern-only mode.
type Lookuper interface {
	Lookup(ctx context.Context, brand, model string) (Device, error)
}

// Resolver turns free-text device mentions into DeviceInfo, enriching pattern
// matches from the catalog store through a TTL cache.
type Resolver struct {
	store   Lookuper
	cache   *expirable.LRU[string, Device]
	breaker *resilience.Breaker
	logger  *slog.Logger
}

// NewResolver creates a Resolver. store may be nil.
func NewResolver(store Lookuper, cacheSize int, ttl time.Duration, logger *slog.Logger) *Resolver {
	if cacheSize <= 0 {
		cacheSize = 256
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		store:   store,
		cache:   expirable.NewLRU[string, Device](cacheSize, nil, ttl),
		breaker: resilience.NewBreaker(resilience.BreakerOpts{FailThreshold: 5, Timeout: 30 * time.Second}),
		logger:  logger,
	}
}

// Resolve extracts the best device mention from text and returns its
// metadata. The second return is false when no device is recognized.
func (r *Resolver) Resolve(ctx context.Context, text string) (domain.DeviceInfo, bool) {
	match := ExtractBest(text)
	if match == nil {
		return domain.DeviceInfo{}, false
	}

	info := match.DeviceInfo()
	if dev, ok := r.lookup(ctx, match.Brand, match.Model); ok {
		if dev.Category != "" {
			info.Category = dev.Category
		}
		if info.Year == 0 {
			info.Year = dev.Year
		}
		info.WarrantyStatus = dev.WarrantyStatus
	}
	return info, true
}

func (r *Resolver) lookup(ctx context.Context, brand, model string) (Device, bool) {
	if r.store == nil {
		return Device{}, false
	}
	key := DeviceID(brand, model)
	if dev, ok := r.cache.Get(key); ok {
		return dev, true
	}
	var dev Device
	err := r.breaker.Call(ctx, func(ctx context.Context) error {
		var lerr error
		dev, lerr = r.store.Lookup(ctx, brand, model)
		return lerr
	})
	if err != nil {
		r.logger.Debug("catalog lookup miss", "key", key, "error", err)
		return Device{}, false
	}
	r.cache.Add(key, dev)
	return dev, true
}
