package main

import (
	"context"
	"ev-trip-service/internal/adapters/repositories"
	"ev-trip-service/internal/config"
	"ev-trip-service/internal/platform/db"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding the vehicle catalog")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	sqlDB, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if *schemaOnly {
		return
	}

	seedPath := config.Get("VEHICLE_SEED_PATH", "data/seeds/vehicles.json")
	log.Println("Seeding vehicle catalog...")
	if err := repositories.SeedFromJSON(ctx, sqlDB, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
