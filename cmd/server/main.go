package main

import (
	"context"
	"database/sql"
	"errors"
	"ev-trip-service/internal/adapters/cache"
	"ev-trip-service/internal/adapters/geocode"
	"ev-trip-service/internal/adapters/repositories"
	"ev-trip-service/internal/adapters/routing"
	"ev-trip-service/internal/adapters/stations"
	"ev-trip-service/internal/api"
	"ev-trip-service/internal/config"
	"ev-trip-service/internal/domain"
	"ev-trip-service/internal/platform/db"
	"ev-trip-service/internal/platform/httpx"
	"ev-trip-service/internal/ports"
	"ev-trip-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	stationCacheSize = 256
	stationCacheTTL  = 5 * time.Minute
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, OpenChargeMap, Postgres, Redis)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	memory := cache.NewMemoryCache(cfg.CacheTTL)
	var (
		geocodeStore ports.GeocodeCache = memory.Geocodes()
		routeStore   ports.RouteCache   = memory.Routes()
		vehicles     ports.VehicleRepository
	)

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := initAndSeed(sqlDB, cfg.VehicleSeedPath); err != nil {
			log.Fatal(err)
		}
		geocodeStore = cache.NewSQLGeocodeCache(sqlDB)
		vehicles = repositories.NewPostgresVehicleRepository(sqlDB)
		log.Println("Using Postgres for geocode cache and vehicle catalog")
	} else {
		seeds, err := repositories.LoadVehicleSeeds(cfg.VehicleSeedPath)
		if err != nil {
			log.Fatal(err)
		}
		vehicles = repositories.NewMemoryVehicleRepository(seeds)
		log.Println("DATABASE_URL not set (using in-memory geocode cache and vehicle catalog)")
	}

	if cfg.RedisURL != "" {
		rdb, err := openRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		routeStore = cache.NewRedisRouteCache(rdb, cfg.CacheTTL)
		log.Println("Using Redis for route cache")
	}

	planner, err := newTripPlanner(cfg, geocodeStore, routeStore)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(planner, vehicles, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
}

func newTripPlanner(cfg config.Config, geocodeStore ports.GeocodeCache, routeStore ports.RouteCache) (*services.TripPlanner, error) {
	client := httpx.NewClient(cfg.HTTPTimeout, cfg.UserAgent)

	stationClient := httpx.NewClient(cfg.HTTPTimeout, cfg.UserAgent)
	if cfg.OCMAPIKey != "" {
		stationClient.SetHeader("X-API-Key", cfg.OCMAPIKey)
	}

	nominatim, err := geocode.NewNominatimGeocoder(client, cfg.NominatimURL, cfg.CountryCode, cfg.CountryName)
	if err != nil {
		return nil, fmt.Errorf("new trip planner: %w", err)
	}
	geocoder, err := cache.NewCachingGeocoder(nominatim, geocodeStore)
	if err != nil {
		return nil, fmt.Errorf("new trip planner: %w", err)
	}

	osrm, err := routing.NewOSRMRouter(client, cfg.OSRMURL)
	if err != nil {
		return nil, fmt.Errorf("new trip planner: %w", err)
	}
	router, err := cache.NewCachingRouter(osrm, routeStore)
	if err != nil {
		return nil, fmt.Errorf("new trip planner: %w", err)
	}

	directory, err := stations.NewOpenChargeMapDirectory(
		stationClient,
		cfg.StationProxyURL,
		stations.WithResponseCache(stationCacheSize, stationCacheTTL),
	)
	if err != nil {
		return nil, fmt.Errorf("new trip planner: %w", err)
	}

	locator := services.NewStationLocator(directory, services.NewSyntheticStations(cfg.DegradedSeed), cfg.ProbeTimeout)

	policy := services.DefaultStopPolicy()
	policy.SafetyReservePct = cfg.SafetyReservePct
	policy.TargetChargePct = cfg.TargetChargePct
	policy.MinStationPowerKW = cfg.MinStationPowerKW
	policy.Energy = domain.EnergyModel{
		ConsumptionKWhPerKm: cfg.ConsumptionKWhPerKm,
		RatePerKWh:          cfg.RatePerKWh,
	}

	return services.NewTripPlanner(geocoder, router, locator, policy, cfg.CorridorKm)
}

func openRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("openRedis: parse url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("openRedis: ping: %w", err)
	}

	return rdb, nil
}

func initAndSeed(sqlDB *sql.DB, seedPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromJSON(ctx, sqlDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
