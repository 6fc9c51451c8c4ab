package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultMigrationsDir = "./migrations"
	defaultMaxEntrants   = 128
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromEnv builds the configuration from lookup. Required keys that are
// missing are reported together.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	required := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, def string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return def
	}

	cfg := Config{
		DBName:        required("DB_NAME"),
		MigrationsDir: optional("MIGRATIONS_DIR", defaultMigrationsDir),
		Port:          optional("PORT", defaultPort),
		JWTSecret:     required("JWT_SECRET"),
		Slack: SlackConfig{
			Token:         required("SLACK_BOT_TOKEN"),
			ChannelID:     required("SLACK_CHANNEL_ID"),
			SigningSecret: required("SLACK_SIGNING_SECRET"),
		},
		TenantID: optional("TENANT_ID", ""),
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:   optional("GCP_PROJECT", ""),
		TopicPrefix: optional("PUBSUB_TOPIC_PREFIX", ""),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	maxEntrants, err := strconv.Atoi(optional("MAX_ENTRANTS", strconv.Itoa(defaultMaxEntrants)))
	if err != nil || maxEntrants < 2 {
		return Config{}, fmt.Errorf("MAX_ENTRANTS must be a number of at least 2")
	}
	cfg.MaxEntrants = maxEntrants
	return cfg, nil
}
