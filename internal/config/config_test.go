package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "job-board")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "3000")
	t.Setenv("WORKOS_API_KEY", "sk_test")
	t.Setenv("WORKOS_CLIENT_ID", "client_test")
	t.Setenv("SESSION_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("expected default driver postgres, got %q", cfg.Database.Driver)
	}
	if cfg.Identity.RedirectURI != "http://localhost:3000/auth/callback" {
		t.Fatalf("unexpected redirect uri %q", cfg.Identity.RedirectURI)
	}
	if cfg.Session.TTL != 7*24*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.Session.TTL)
	}
	if cfg.Upload.PublicPrefix != "/uploads" {
		t.Fatalf("unexpected upload prefix %q", cfg.Upload.PublicPrefix)
	}
	if cfg.Enricher.MaxConcurrentLookups != 8 {
		t.Fatalf("unexpected max concurrent lookups %d", cfg.Enricher.MaxConcurrentLookups)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("WORKOS_API_KEY", "")
	t.Setenv("SESSION_SECRET", " ")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "WORKOS_API_KEY") || !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Fatalf("expected both keys in error, got %v", err)
	}
}

func TestLoad_MongoRequiresURI(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "mongo")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) || !strings.Contains(err.Error(), "MONGO_URI") {
		t.Fatalf("expected missing MONGO_URI, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequired(t)
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "SESSION_TTL") || !strings.Contains(err.Error(), "DB_DRIVER") {
		t.Fatalf("expected invalid keys in error, got %v", err)
	}
}
