package stations

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/httpx"
	"ev-trip-service/internal/platform/obs"
	"ev-trip-service/internal/ports"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bluele/gcache"
)

// OpenChargeMapDirectory queries the OpenChargeMap proxy for stations.
//
// Decoded responses are kept in a small LRU keyed by the query string so
// repeated plans over the same corridor do not hit the directory again.
type OpenChargeMapDirectory struct {
	client   *httpx.Client
	endpoint string
	cache    gcache.Cache
	cacheTTL time.Duration
}

type DirectoryOption func(*OpenChargeMapDirectory)

// WithResponseCache enables the LRU response cache.
func WithResponseCache(size int, ttl time.Duration) DirectoryOption {
	return func(d *OpenChargeMapDirectory) {
		if size <= 0 || ttl <= 0 {
			return
		}
		d.cache = gcache.New(size).LRU().Build()
		d.cacheTTL = ttl
	}
}

func NewOpenChargeMapDirectory(client *httpx.Client, endpoint string, opts ...DirectoryOption) (*OpenChargeMapDirectory, error) {
	if client == nil {
		return nil, errors.New("openchargemap directory: client is nil")
	}
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("openchargemap directory: endpoint is empty")
	}

	d := &OpenChargeMapDirectory{client: client, endpoint: endpoint}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Probe asks for a single station around a fixed point.
func (d *OpenChargeMapDirectory) Probe(ctx context.Context) (err error) {
	defer obs.Time(ctx, "ocm.Probe")(&err)

	q := url.Values{}
	q.Set("latitude", "20")
	q.Set("longitude", "77")
	q.Set("distance", "10")
	q.Set("maxresults", "1")

	var records []poiRecord
	if err := d.client.GetJSON(ctx, d.endpoint, q, &records); err != nil {
		return fmt.Errorf("probe station directory: %w", err)
	}
	return nil
}

func (d *OpenChargeMapDirectory) Search(
	ctx context.Context,
	sq ports.StationQuery,
) (_ []domain.ChargingStation, err error) {
	defer obs.Time(ctx, "ocm.Search")(&err)

	if sq.MaxResults <= 0 {
		return nil, errors.New("search stations: max results must be positive")
	}

	q := url.Values{}
	q.Set("latitude", formatFloat(sq.Center.Lat))
	q.Set("longitude", formatFloat(sq.Center.Lng))
	q.Set("distance", formatFloat(sq.RadiusKm))
	q.Set("maxresults", strconv.Itoa(sq.MaxResults))
	key := q.Encode()

	if d.cache != nil {
		if v, err := d.cache.Get(key); err == nil {
			return cloneStations(v.([]domain.ChargingStation)), nil
		}
	}

	var records []poiRecord
	if err := d.client.GetJSON(ctx, d.endpoint, q, &records); err != nil {
		return nil, fmt.Errorf("search stations: %w", err)
	}

	out := make([]domain.ChargingStation, 0, len(records))
	skipped := 0
	for _, r := range records {
		s, ok := r.toDomain()
		if !ok {
			skipped++
			continue
		}
		out = append(out, s)
	}
	if skipped > 0 {
		log.Printf("req_id=%s station directory skipped=%d records without location", obs.RequestID(ctx), skipped)
	}

	if d.cache != nil {
		if err := d.cache.SetWithExpire(key, cloneStations(out), d.cacheTTL); err != nil {
			log.Printf("station cache write failed: %v", err)
		}
	}

	return out, nil
}

// cloneStations copies the connection slices so callers may annotate the
// result without touching cached values.
func cloneStations(in []domain.ChargingStation) []domain.ChargingStation {
	out := make([]domain.ChargingStation, len(in))
	for i, s := range in {
		s.Connections = append([]domain.Connection(nil), s.Connections...)
		s.DistanceFromRouteKm = nil
		out[i] = s
	}
	return out
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', 6, 64) }

func itoa(i int64) string { return strconv.FormatInt(i, 10) }
