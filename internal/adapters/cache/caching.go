package cache

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/ports"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// CachingGeocoder wraps a Geocoder with a persistent cache. Concurrent
// lookups for the same key share a single upstream call.
//
// Only successful resolutions are cached; NotFound and transport errors are
// always passed through. Cache failures are logged and never fail a lookup.
type CachingGeocoder struct {
	next          ports.Geocoder
	store         ports.GeocodeCache
	group         singleflight.Group
	lookupTimeout time.Duration
}

// Upper bound for one shared upstream lookup (three geocoding attempts).
const defaultLookupTimeout = 30 * time.Second

func NewCachingGeocoder(next ports.Geocoder, store ports.GeocodeCache) (*CachingGeocoder, error) {
	if next == nil {
		return nil, errors.New("caching geocoder: next is nil")
	}
	return &CachingGeocoder{next: next, store: store, lookupTimeout: defaultLookupTimeout}, nil
}

// normalizePlace ensures consistent cache keys by collapsing whitespace and case.
func normalizePlace(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (c *CachingGeocoder) Geocode(ctx context.Context, placeText string) (domain.GeocodeResult, error) {
	key := normalizePlace(placeText)
	if key == "" || c.store == nil {
		return c.next.Geocode(ctx, placeText)
	}

	if res, ok, err := c.store.Get(ctx, key); err != nil {
		log.Printf("geocode cache read failed: %v", err)
	} else if ok {
		return res, nil
	}

	// The shared lookup outlives any single caller; each caller stops
	// waiting when its own context ends.
	ch := c.group.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.lookupTimeout)
		defer cancel()

		res, err := c.next.Geocode(sctx, placeText)
		if err != nil {
			return domain.GeocodeResult{}, err
		}
		if err := c.store.Put(sctx, key, res); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
		return res, nil
	})

	select {
	case <-ctx.Done():
		return domain.GeocodeResult{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return domain.GeocodeResult{}, r.Err
		}
		return r.Val.(domain.GeocodeResult), nil
	}
}

// CachingRouter wraps a Router with a route cache keyed by rounded endpoints.
type CachingRouter struct {
	next  ports.Router
	store ports.RouteCache
}

func NewCachingRouter(next ports.Router, store ports.RouteCache) (*CachingRouter, error) {
	if next == nil {
		return nil, errors.New("caching router: next is nil")
	}
	return &CachingRouter{next: next, store: store}, nil
}

// RouteKey identifies a route by its endpoints at ~1 m precision.
func RouteKey(origin, destination domain.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f;%.5f,%.5f", origin.Lat, origin.Lng, destination.Lat, destination.Lng)
}

func (c *CachingRouter) Route(ctx context.Context, origin, destination domain.Coordinate) (domain.Route, error) {
	if c.store == nil {
		return c.next.Route(ctx, origin, destination)
	}

	key := RouteKey(origin, destination)
	if r, ok, err := c.store.Get(ctx, key); err != nil {
		log.Printf("route cache read failed: %v", err)
	} else if ok && len(r.Polyline) >= 2 {
		return r, nil
	}

	r, err := c.next.Route(ctx, origin, destination)
	if err != nil {
		return domain.Route{}, err
	}

	if err := c.store.Put(ctx, key, r); err != nil {
		log.Printf("route cache write failed: %v", err)
	}
	return r, nil
}
