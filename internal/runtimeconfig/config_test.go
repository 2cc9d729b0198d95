package runtimeconfig_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-famhome/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.StorageDriver() != "memory" {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageDriver())
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name: "logging provider required",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = ""
			},
			want: runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name: "unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "syslog"
			},
			want: runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name: "invalid level",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Level = "loud"
			},
			want: runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "invalid gologger format",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Features.Logger = true
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
		{
			name:   "unknown storage driver",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Driver = "mongodb" },
			want:   runtimeconfig.ErrStorageDriverUnknown,
		},
		{
			name:   "sqlite needs a dsn",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Storage.Driver = "sqlite" },
			want:   runtimeconfig.ErrStorageDSNRequired,
		},
		{
			name:   "negative parse cache",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Render.ParseCacheSize = -1 },
			want:   runtimeconfig.ErrParseCacheSizeInvalid,
		},
		{
			name:   "unknown default platform",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Render.DefaultPlatform = "tv" },
			want:   runtimeconfig.ErrDefaultPlatformInvalid,
		},
		{
			name:   "unknown markdown extension",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Markdown.Extensions = []string{"gfm", "mermaid"} },
			want:   runtimeconfig.ErrMarkdownExtensionUnknown,
		},
		{
			name:   "negative command timeout",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Commands.Timeout = -time.Second },
			want:   runtimeconfig.ErrCommandTimeoutInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadReadsYAML(t *testing.T) {
	cfg, err := runtimeconfig.Load(filepath.Join("testdata", "famhome.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Provider != "gologger" || cfg.Logging.Level != "debug" || !cfg.Features.Logger {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Cache.Enabled || cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.StorageDriver() != "sqlite" || cfg.Storage.DSN == "" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if cfg.Render.ParseCacheSize != 16 || cfg.Render.DefaultPlatform != "ios" || cfg.Render.DimmerColor != "rgba(0,0,0,0.4)" {
		t.Fatalf("unexpected render config %+v", cfg.Render)
	}
	if len(cfg.Render.TrustedImagePrefixes) != 1 || cfg.Render.TrustedImagePrefixes[0] != "https://cdn.example.com/" {
		t.Fatalf("unexpected trusted prefixes %v", cfg.Render.TrustedImagePrefixes)
	}
	if cfg.Markdown.HardWraps || cfg.Markdown.HomesDir != "fixtures/homes" {
		t.Fatalf("unexpected markdown config %+v", cfg.Markdown)
	}
	if cfg.Markdown.Pattern != "*.md" || len(cfg.Markdown.Extensions) != 2 {
		t.Fatalf("expected untouched markdown defaults, got %+v", cfg.Markdown)
	}
	if cfg.Commands.Timeout != 10*time.Second || !cfg.Features.Commands {
		t.Fatalf("unexpected command config %+v / %+v", cfg.Commands, cfg.Features)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := runtimeconfig.Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg.Render.ParseCacheSize != runtimeconfig.DefaultConfig().Render.ParseCacheSize {
			t.Fatalf("expected defaults for %q, got %+v", path, cfg.Render)
		}
	}
}

func TestLoadValidates(t *testing.T) {
	_, err := runtimeconfig.Load(filepath.Join("testdata", "invalid.yaml"))
	if !errors.Is(err, runtimeconfig.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
