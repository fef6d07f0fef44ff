package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{EnvStage, EnvTransport, EnvReadTimeout, EnvStrictFleet, EnvDatabaseUrl, EnvMigrations} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}

	expected := Config{
		Stage:      StageDev,
		Transport:  "tcp",
		Migrations: defaultMigrations,
	}
	if cfg != expected {
		t.Fatalf("expected: %+v\tgot: %+v", expected, cfg)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvStage, StageProd)
	t.Setenv(EnvTransport, "ws")
	t.Setenv(EnvReadTimeout, "30s")
	t.Setenv(EnvStrictFleet, "true")
	t.Setenv(EnvDatabaseUrl, "postgres://localhost/battleship")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Transport != "ws" || cfg.ReadTimeout != 30*time.Second || !cfg.StrictFleet {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.DatabaseUrl != "postgres://localhost/battleship" {
		t.Fatalf("expected database url\tgot: %s", cfg.DatabaseUrl)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "stage", key: EnvStage, value: "staging"},
		{name: "transport", key: EnvTransport, value: "udp"},
		{name: "timeout", key: EnvReadTimeout, value: "soon"},
		{name: "negative timeout", key: EnvReadTimeout, value: "-1s"},
		{name: "strict fleet", key: EnvStrictFleet, value: "maybe"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Setenv(test.key, test.value)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("expected error for %s=%s", test.key, test.value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BATTLESHIP_TRANSPORT=ws\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	t.Setenv(EnvStage, StageDev)
	// godotenv does not override variables that are already set
	os.Unsetenv(EnvTransport)
	defer os.Unsetenv(EnvTransport)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Transport != "ws" {
		t.Fatalf("expected transport from .env: ws\tgot: %s", cfg.Transport)
	}
}

func TestLoadWithoutDotEnv(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	t.Setenv(EnvStage, StageDev)
	if _, err := Load(); err != nil {
		t.Fatal(err)
	}
}
