package famhome_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-famhome"
)

func TestConfigValidateRejectsUnknownPlatform(t *testing.T) {
	cfg := famhome.DefaultConfig()
	cfg.Render.DefaultPlatform = "windows"

	if err := cfg.Validate(); !errors.Is(err, famhome.ErrDefaultPlatformInvalid) {
		t.Fatalf("expected ErrDefaultPlatformInvalid, got %v", err)
	}
}

func TestConfigValidateRequiresDSN(t *testing.T) {
	cfg := famhome.DefaultConfig()
	cfg.Storage.Driver = "sqlite"

	if err := cfg.Validate(); !errors.Is(err, famhome.ErrStorageDSNRequired) {
		t.Fatalf("expected ErrStorageDSNRequired, got %v", err)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := famhome.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.DefaultPlatform != famhome.DefaultConfig().Render.DefaultPlatform {
		t.Fatalf("expected default platform, got %q", cfg.Render.DefaultPlatform)
	}
}
