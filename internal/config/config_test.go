package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SEED_DEMO_DATA", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != "memory" || cfg.LateCutoff != "09:00" || cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location.String() != "Asia/Seoul" {
		t.Fatalf("location = %s", cfg.Location)
	}
	if cfg.JWTSecret == "" || cfg.SeedDemoData || cfg.NotificationsEnabled() {
		t.Fatalf("unexpected secret/seed/notify defaults: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("BLOB_S3_PATH_STYLE", "yes-please")
	t.Setenv("MATTERMOST_URL", "http://mm.local/")
	t.Setenv("MATTERMOST_BOT_TOKEN", "tok")
	t.Setenv("MATTERMOST_CHANNEL_ID", "chan")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Location != time.UTC || cfg.JWTTTL != 90*time.Minute || !cfg.SeedDemoData {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.BlobS3PathStyle {
		t.Fatal("invalid bool should fall back to false")
	}
	if cfg.MattermostURL != "http://mm.local" || !cfg.NotificationsEnabled() {
		t.Fatalf("mattermost config: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("TZ_NAME", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatal("expected bad time zone to fail")
	}
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected missing secret in production to fail")
	}
}
