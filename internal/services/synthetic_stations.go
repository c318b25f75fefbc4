package services

import (
	"ev-trip-service/internal/domain"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

// FallbackStrategy produces stations when the live directory cannot be used.
type FallbackStrategy interface {
	Stations(route domain.Route, corridorKm float64) []domain.ChargingStation
}

var (
	syntheticPowersKW = []float64{22, 50, 150}
	syntheticTypes    = []string{"Type 2", "CCS", "CHAdeMO"}
)

const syntheticOffsetDeg = 0.1

// SyntheticStations is the degraded-mode strategy: it places 3 to 5
// operational demo stations along the route.
type SyntheticStations struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSyntheticStations seeds the generator; seed 0 uses the current time.
func NewSyntheticStations(seed uint64) *SyntheticStations {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &SyntheticStations{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *SyntheticStations) Stations(route domain.Route, corridorKm float64) []domain.ChargingStation {
	n := len(route.Polyline)
	if n == 0 {
		return []domain.ChargingStation{}
	}

	count := min(5, max(3, n/50))

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ChargingStation, 0, count)
	for i := 0; i < count; i++ {
		idx := int(math.Floor(float64(n) / float64(count+1) * float64(i+1)))
		if idx >= n {
			idx = n / 2
		}
		anchor := route.Polyline[idx]

		c := domain.Coordinate{
			Lat: anchor.Lat + (s.rng.Float64()-0.5)*syntheticOffsetDeg,
			Lng: anchor.Lng + (s.rng.Float64()-0.5)*syntheticOffsetDeg,
		}
		conn := domain.Connection{
			PowerKW: syntheticPowersKW[s.rng.IntN(len(syntheticPowersKW))],
			Type:    syntheticTypes[s.rng.IntN(len(syntheticTypes))],
		}

		station := domain.ChargingStation{
			ID:          fmt.Sprintf("degraded:%d", i+1),
			Coordinate:  c,
			Title:       fmt.Sprintf("Demo Charging Station %d", i+1),
			Address:     fmt.Sprintf("Highway Service Area %d", i+1),
			Operational: true,
			Connections: []domain.Connection{conn},
		}
		out = append(out, station.WithRouteDistance(s.rng.Float64()*corridorKm*0.8))
	}

	sortByRouteDistance(out)
	return out
}

func sortByRouteDistance(stations []domain.ChargingStation) {
	sort.SliceStable(stations, func(i, j int) bool {
		return stations[i].RouteDistance() < stations[j].RouteDistance()
	})
}
