package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.DB.Path != "pharmacare.db" {
		t.Fatalf("unexpected db path %q", cfg.DB.Path)
	}
	if cfg.DB.MaxOpenConns != 1 {
		t.Fatalf("expected single writer connection, got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.DB.BusyTimeout != 5*time.Second {
		t.Fatalf("unexpected busy timeout %v", cfg.DB.BusyTimeout)
	}
	if !cfg.FeatureFlags.AutoMigrate {
		t.Fatal("expected auto migrate on by default")
	}
	if !cfg.App.IsDev() {
		t.Fatal("expected dev env by default")
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	t.Setenv("PHARMACARE_DB_PATH", "   ")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for blank db path")
	}
}

func TestLoadRejectsZeroConns(t *testing.T) {
	t.Setenv("PHARMACARE_DB_MAX_OPEN_CONNS", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero max open conns")
	}
}
