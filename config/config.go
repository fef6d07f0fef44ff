package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-duel/internal/transport"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	EnvStage       = "STAGE"
	EnvTransport   = "BATTLESHIP_TRANSPORT"
	EnvReadTimeout = "BATTLESHIP_READ_TIMEOUT"
	EnvStrictFleet = "BATTLESHIP_STRICT_FLEET"
	EnvDatabaseUrl = "DATABASE_URL"
	EnvMigrations  = "BATTLESHIP_MIGRATIONS"

	defaultMigrations = "file://db/migration"
)

type Config struct {
	Stage       string
	Transport   string
	ReadTimeout time.Duration
	StrictFleet bool
	DatabaseUrl string
	Migrations  string
}

// Load reads the configuration from the environment. Outside of prod
// a .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	if os.Getenv(EnvStage) != StageProd {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Stage:       getEnv(EnvStage, StageDev),
		Transport:   getEnv(EnvTransport, transport.KindTCP),
		DatabaseUrl: os.Getenv(EnvDatabaseUrl),
		Migrations:  getEnv(EnvMigrations, defaultMigrations),
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod\tgot: %s", cfg.Stage)
	}

	if !transport.IsValidKind(cfg.Transport) {
		return Config{}, fmt.Errorf("transport must be tcp or ws\tgot: %s", cfg.Transport)
	}

	if v := os.Getenv(EnvReadTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvReadTimeout, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("%s must not be negative\tgot: %s", EnvReadTimeout, d)
		}
		cfg.ReadTimeout = d
	}

	switch os.Getenv(EnvStrictFleet) {
	case "", "0", "false":
	case "1", "true":
		cfg.StrictFleet = true
	default:
		return Config{}, fmt.Errorf("%s must be true or false", EnvStrictFleet)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
