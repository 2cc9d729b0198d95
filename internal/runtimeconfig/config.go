package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-famhome/internal/markdown"
)

var (
	ErrLoggingProviderRequired  = errors.New("famhome config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("famhome config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("famhome config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("famhome config: logging format is invalid")
	ErrStorageDriverUnknown     = errors.New("famhome config: storage driver is invalid")
	ErrStorageDSNRequired       = errors.New("famhome config: storage dsn is required for the selected driver")
	ErrParseCacheSizeInvalid    = errors.New("famhome config: render parse cache size must be zero or positive")
	ErrDefaultPlatformInvalid   = errors.New("famhome config: render default platform is invalid")
	ErrMarkdownExtensionUnknown = errors.New("famhome config: markdown extension is not supported")
	ErrCommandTimeoutInvalid    = errors.New("famhome config: command timeout must be zero or positive")
)

// Storage drivers accepted by StorageConfig.Driver.
const (
	StorageDriverMemory   = "memory"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Config aggregates feature flags and adapter settings.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Cache    CacheConfig    `yaml:"cache"`
	Storage  StorageConfig  `yaml:"storage"`
	Render   RenderConfig   `yaml:"render"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Commands CommandsConfig `yaml:"commands"`
	Features Features       `yaml:"features"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// CacheConfig controls the repository cache in front of the family store.
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// StorageConfig selects the database behind the family store. An empty
// driver keeps families in memory.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// RenderConfig tunes parsing and both render adapters.
type RenderConfig struct {
	ParseCacheSize       int      `yaml:"parse_cache_size"`
	DefaultPlatform      string   `yaml:"default_platform"`
	DimmerColor          string   `yaml:"dimmer_color"`
	TrustedImagePrefixes []string `yaml:"trusted_image_prefixes"`
	TrustedImageHosts    []string `yaml:"trusted_image_hosts"`
}

// MarkdownConfig mirrors interfaces.ParseOptions plus the home file loader.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
	HomesDir   string   `yaml:"homes_dir"`
	Pattern    string   `yaml:"pattern"`
	Recursive  bool     `yaml:"recursive"`
}

// CommandsConfig captures command-layer behaviour.
type CommandsConfig struct {
	Timeout                time.Duration `yaml:"timeout"`
	AutoRegisterDispatcher bool          `yaml:"auto_register_dispatcher"`
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool `yaml:"logger"`
	Commands bool `yaml:"commands"`
}

// DefaultConfig returns the defaults used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Render: RenderConfig{
			ParseCacheSize:  128,
			DefaultPlatform: "web",
		},
		Markdown: MarkdownConfig{
			Extensions: append([]string(nil), markdown.DefaultExtensions...),
			HardWraps:  true,
			HomesDir:   "homes",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Features: Features{
			Commands: true,
		},
	}
}

// Load reads a YAML file over DefaultConfig. A blank path or a missing file
// yields the defaults. The result is validated.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("famhome config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("famhome config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}

	switch driver := normalize(cfg.Storage.Driver); driver {
	case "", StorageDriverMemory:
	case StorageDriverSQLite, StorageDriverPostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}

	if cfg.Render.ParseCacheSize < 0 {
		return ErrParseCacheSizeInvalid
	}
	switch normalize(cfg.Render.DefaultPlatform) {
	case "", "web", "ios", "android":
	default:
		return fmt.Errorf("%w: %s", ErrDefaultPlatformInvalid, cfg.Render.DefaultPlatform)
	}

	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}

	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	return nil
}

// StorageDriver returns the normalised driver name, "memory" when unset.
func (cfg Config) StorageDriver() string {
	if driver := normalize(cfg.Storage.Driver); driver != "" {
		return driver
	}
	return StorageDriverMemory
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
