package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-draw/internal/auth"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/database"
	"github.com/mauv0809/padel-draw/internal/role"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

const (
	clubID     = "demo-club"
	numCouples = 12
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"MIGRATIONS_DIR": "./migrations",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "JWT_SECRET"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	if config["DB_NAME"] == "" && config["TURSO_PRIMARY_URL"] == "" {
		log.Fatalf("Error: set DB_NAME or TURSO_PRIMARY_URL")
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	store := club.New(db)

	t := &club.Tournament{
		ID:     uuid.NewString(),
		ClubID: clubID,
		Name:   "Demo Open " + time.Now().Format("2006-01-02"),
		Config: tournament.Config{Format: tournament.FormatZones, ZoneSize: 4}.WithDefaults(),
	}
	if err := store.CreateTournament(t); err != nil {
		log.Fatalf("Failed to create tournament: %s", err)
	}
	log.Info("Created tournament", "id", t.ID, "name", t.Name)

	levels := make([]club.PlayerLevel, 0, 2*numCouples)
	for i := 1; i <= numCouples; i++ {
		c := tournament.Couple{
			ID:           uuid.NewString(),
			Player1ID:    fmt.Sprintf("demo-player-%02da", i),
			Player2ID:    fmt.Sprintf("demo-player-%02db", i),
			Name:         fmt.Sprintf("Demo Couple %d", i),
			RegisteredAt: time.Now(),
		}
		if err := store.RegisterCouple(t.ID, c); err != nil {
			log.Fatalf("Failed to register couple %s: %s", c.Name, err)
		}
		level := 1.0 + float64(numCouples-i)*0.25
		levels = append(levels,
			club.PlayerLevel{PlayerID: c.Player1ID, Name: c.Name + " A", Level: level, UpdatedAt: time.Now().Unix()},
			club.PlayerLevel{PlayerID: c.Player2ID, Name: c.Name + " B", Level: level, UpdatedAt: time.Now().Unix()},
		)
	}
	if err := store.UpsertPlayerLevels(levels); err != nil {
		log.Fatalf("Failed to store player levels: %s", err)
	}
	log.Info("Registered demo couples", "count", numCouples)

	if secret := cfg["JWT_SECRET"]; secret != "" {
		token, err := auth.Sign(secret, "demo-owner", role.Club{ID: clubID}, 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to sign club token: %s", err)
		}
		fmt.Printf("Club token (24h): %s\n", token)
	}
}
