package famhome

import "github.com/goliatone/go-famhome/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
	ErrStorageDriverUnknown     = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired       = runtimeconfig.ErrStorageDSNRequired
	ErrParseCacheSizeInvalid    = runtimeconfig.ErrParseCacheSizeInvalid
	ErrDefaultPlatformInvalid   = runtimeconfig.ErrDefaultPlatformInvalid
	ErrMarkdownExtensionUnknown = runtimeconfig.ErrMarkdownExtensionUnknown
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
)

type (
	Config         = runtimeconfig.Config
	LoggingConfig  = runtimeconfig.LoggingConfig
	CacheConfig    = runtimeconfig.CacheConfig
	StorageConfig  = runtimeconfig.StorageConfig
	RenderConfig   = runtimeconfig.RenderConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	Features       = runtimeconfig.Features
)

// DefaultConfig returns the in-memory defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML configuration file. A blank or missing path yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
