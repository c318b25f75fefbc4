package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable of the trip service. It is built once at startup
// and passed explicitly into each component.
type Config struct {
	Port string

	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration

	NominatimURL    string
	OSRMURL         string
	StationProxyURL string
	OCMAPIKey       string
	UserAgent       string
	CountryCode     string
	CountryName     string

	HTTPTimeout  time.Duration
	ProbeTimeout time.Duration

	SafetyReservePct    float64
	TargetChargePct     float64
	MinStationPowerKW   float64
	ConsumptionKWhPerKm float64
	RatePerKWh          float64
	CorridorKm          float64

	// DegradedSeed seeds synthetic station generation; 0 means time-based.
	DegradedSeed uint64

	VehicleSeedPath string
	AllowedOrigins  []string
}

// Get returns the environment value for key or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}

func getList(key, fallback string) []string {
	parts := strings.Split(Get(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads the configuration from the environment, applying defaults for
// everything that is not set.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		DatabaseURL:     Get("DATABASE_URL", ""),
		RedisURL:        Get("REDIS_URL", ""),
		NominatimURL:    Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OSRMURL:         Get("OSRM_URL", "https://router.project-osrm.org"),
		StationProxyURL: Get("STATION_PROXY_URL", "http://localhost:5000/api/openchargemap"),
		OCMAPIKey:       Get("OCM_API_KEY", ""),
		UserAgent:       Get("USER_AGENT", "ev-trip-service/1.0"),
		CountryCode:     Get("COUNTRY_CODE", "in"),
		CountryName:     Get("COUNTRY_NAME", "India"),
		VehicleSeedPath: Get("VEHICLE_SEED_PATH", "data/seeds/vehicles.json"),
		AllowedOrigins:  getList("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}

	var err error
	floats := []struct {
		key      string
		dst      *float64
		fallback float64
	}{
		{"SAFETY_RESERVE_PCT", &cfg.SafetyReservePct, 20},
		{"TARGET_CHARGE_PCT", &cfg.TargetChargePct, 80},
		{"MIN_STATION_POWER_KW", &cfg.MinStationPowerKW, 22},
		{"CONSUMPTION_KWH_PER_KM", &cfg.ConsumptionKWhPerKm, 0.2},
		{"RATE_PER_KWH", &cfg.RatePerKWh, 12},
		{"CORRIDOR_KM", &cfg.CorridorKm, 15},
	}
	for _, f := range floats {
		if *f.dst, err = getFloat(f.key, f.fallback); err != nil {
			return Config{}, err
		}
	}

	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.ProbeTimeout, err = getDuration("PROBE_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}

	if v := Get("DEGRADED_SEED", ""); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: DEGRADED_SEED=%q: %w", v, err)
		}
		cfg.DegradedSeed = seed
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects combinations the planner cannot work with.
func (c Config) Validate() error {
	if c.SafetyReservePct < 0 || c.SafetyReservePct >= 100 {
		return errors.New("config: SAFETY_RESERVE_PCT must be in [0, 100)")
	}
	if c.TargetChargePct <= c.SafetyReservePct || c.TargetChargePct > 100 {
		return errors.New("config: TARGET_CHARGE_PCT must be above the safety reserve and at most 100")
	}
	if c.ConsumptionKWhPerKm <= 0 {
		return errors.New("config: CONSUMPTION_KWH_PER_KM must be positive")
	}
	if c.RatePerKWh < 0 {
		return errors.New("config: RATE_PER_KWH must not be negative")
	}
	if c.CorridorKm <= 0 {
		return errors.New("config: CORRIDOR_KM must be positive")
	}
	if strings.TrimSpace(c.CountryCode) == "" {
		return errors.New("config: COUNTRY_CODE is required")
	}
	return nil
}
