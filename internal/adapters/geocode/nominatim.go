package geocode

import (
	"context"
	"errors"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/httpx"
	"ev-trip-service/internal/platform/obs"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
)

// ErrEmptyQuery is returned for blank place text.
var ErrEmptyQuery = errors.New("geocode: place text must not be empty")

type candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder resolves place names with the Nominatim search API.
//
// Resolution tries, in order: the original text scoped to the configured
// country, the alias-corrected text with the same scope, and finally the
// original text with the country name appended and no scope.
type NominatimGeocoder struct {
	client      *httpx.Client
	baseURL     string
	countryCode string
	countryName string
}

func NewNominatimGeocoder(client *httpx.Client, baseURL, countryCode, countryName string) (*NominatimGeocoder, error) {
	if client == nil {
		return nil, errors.New("nominatim geocoder: client is nil")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("nominatim geocoder: base url is empty")
	}

	return &NominatimGeocoder{
		client:      client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: strings.ToLower(countryCode),
		countryName: countryName,
	}, nil
}

type attempt struct {
	query   string
	country string
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, placeText string) (_ domain.GeocodeResult, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	original := strings.TrimSpace(placeText)
	if original == "" {
		return domain.GeocodeResult{}, ErrEmptyQuery
	}

	corrected := Correct(original)
	if corrected != strings.ToLower(original) {
		log.Printf("req_id=%s geocode corrected %q -> %q", obs.RequestID(ctx), original, corrected)
	}

	attempts := []attempt{
		{query: original, country: g.countryCode},
		{query: corrected, country: g.countryCode},
		{query: original + ", " + g.countryName},
	}

	for _, a := range attempts {
		candidates, err := g.search(ctx, a)
		if err != nil {
			return domain.GeocodeResult{}, fmt.Errorf("geocode %q: %w", a.query, err)
		}
		if len(candidates) == 0 {
			continue
		}

		return parseCandidate(candidates[0])
	}

	return domain.GeocodeResult{}, &NotFoundError{
		Query:      original,
		Suggestion: suggestionFor(original, g.countryName),
	}
}

func (g *NominatimGeocoder) search(ctx context.Context, a attempt) ([]candidate, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", a.query)
	if a.country != "" {
		q.Set("countrycodes", a.country)
	}
	q.Set("limit", "3")

	var out []candidate
	if err := g.client.GetJSON(ctx, g.baseURL+"/search", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func parseCandidate(c candidate) (domain.GeocodeResult, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(c.Lat), 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse latitude %q: %w", c.Lat, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(c.Lon), 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse longitude %q: %w", c.Lon, err)
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.GeocodeResult{}, fmt.Errorf("coordinate out of range: %v,%v", lat, lng)
	}

	return domain.GeocodeResult{Coordinate: coord, DisplayName: c.DisplayName}, nil
}
