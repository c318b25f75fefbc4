package routing

import (
	"context"
	"encoding/json"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/httpx"
	"ev-trip-service/internal/platform/obs"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RouteNotFoundError is returned when the routing service has no drivable
// path between the two coordinates.
type RouteNotFoundError struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	Reason      string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf(
		"no route found from (%.5f, %.5f) to (%.5f, %.5f): %s",
		e.Origin.Lat, e.Origin.Lng, e.Destination.Lat, e.Destination.Lng, e.Reason,
	)
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Geometry geojson.Geometry `json:"geometry"`
		Distance float64          `json:"distance"`
		Duration float64          `json:"duration"`
	} `json:"routes"`
}

// OSRMRouter resolves driving routes with the OSRM HTTP API.
type OSRMRouter struct {
	client  *httpx.Client
	baseURL string
	profile string
}

func NewOSRMRouter(client *httpx.Client, baseURL string) (*OSRMRouter, error) {
	if client == nil {
		return nil, errors.New("osrm router: client is nil")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("osrm router: base url is empty")
	}

	return &OSRMRouter{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving",
	}, nil
}

func (o *OSRMRouter) Route(
	ctx context.Context,
	origin domain.Coordinate,
	destination domain.Coordinate,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s;%s",
		o.baseURL, o.profile, lngLat(origin), lngLat(destination),
	)

	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")

	var decoded routeResponse
	if err := o.client.GetJSON(ctx, endpoint, q, &decoded); err != nil {
		// OSRM reports unroutable inputs as 400 with a JSON error code.
		var se *httpx.StatusError
		if errors.As(err, &se) && se.Code == http.StatusBadRequest {
			var body routeResponse
			if json.Unmarshal([]byte(se.Body), &body) == nil && isNoRoute(body.Code) {
				return domain.Route{}, &RouteNotFoundError{Origin: origin, Destination: destination, Reason: body.Code}
			}
		}
		return domain.Route{}, fmt.Errorf("osrm route: %w", err)
	}

	if decoded.Code != "" && decoded.Code != "Ok" {
		return domain.Route{}, &RouteNotFoundError{Origin: origin, Destination: destination, Reason: decoded.Code}
	}
	if len(decoded.Routes) == 0 {
		return domain.Route{}, &RouteNotFoundError{Origin: origin, Destination: destination, Reason: "no routes returned"}
	}

	best := decoded.Routes[0]
	line, ok := best.Geometry.Geometry().(orb.LineString)
	if !ok || len(line) == 0 {
		return domain.Route{}, fmt.Errorf("osrm route: unexpected geometry type %q", best.Geometry.Type)
	}

	return domain.Route{
		Polyline:        NormalizeLineString(line),
		DistanceKm:      int(math.Round(best.Distance / 1000)),
		DurationMinutes: int(math.Round(best.Duration / 60)),
	}, nil
}

// NormalizeLineString converts GeoJSON [lng, lat] positions into (lat, lng)
// coordinates. A single-point line is duplicated so every route has at least
// two points.
func NormalizeLineString(line orb.LineString) []domain.Coordinate {
	out := make([]domain.Coordinate, 0, max(len(line), 2))
	for _, p := range line {
		out = append(out, domain.FromPoint(p))
	}
	if len(out) == 1 {
		out = append(out, out[0])
	}
	return out
}

func lngLat(c domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lng, c.Lat)
}

func isNoRoute(code string) bool {
	switch code {
	case "NoRoute", "NoSegment", "NoMatch":
		return true
	}
	return false
}
