package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	MaxEntrants   int
	JWTSecret     string
	Slack         SlackConfig
	// TenantID is the Playtomic club used for player level lookups. Empty
	// disables the lookup.
	TenantID string
	Turso    TursoConfig
	// ProjectID is the GCP project for Pub/Sub. Empty uses a no-op client.
	ProjectID   string
	TopicPrefix string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
