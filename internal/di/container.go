package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-famhome/internal/commands"
	familiescmd "github.com/goliatone/go-famhome/internal/commands/families"
	"github.com/goliatone/go-famhome/internal/families"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/logging/console"
	"github.com/goliatone/go-famhome/internal/logging/gologger"
	"github.com/goliatone/go-famhome/internal/render"
	"github.com/goliatone/go-famhome/internal/runtimeconfig"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// Container wires the family store, the render service and the command
// handlers from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB   *bun.DB
	ownsDB  bool
	homesFS fs.FS

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	familyRepo families.FamilyRepository
	familySvc  families.Service
	renderSvc  *render.Service

	commandRegistry familiescmd.CommandRegistry
	commandHandlers *familiescmd.HandlerSet
	subscriptions   []familiescmd.Subscription
	importReport    func(familiescmd.ImportResult)
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB stores families in db instead of the configured driver. The
// caller keeps ownership of db.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithFamilyService replaces the family service built from the repository.
func WithFamilyService(svc families.Service) Option {
	return func(c *Container) {
		c.familySvc = svc
	}
}

// WithHomesFS sets the filesystem home files are imported from. Defaults to
// Config.Markdown.HomesDir on disk.
func WithHomesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.homesFS = fsys
	}
}

// WithCommandRegistry registers the family handlers with reg.
func WithCommandRegistry(reg familiescmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// WithImportReport receives the summary of every home import.
func WithImportReport(fn func(familiescmd.ImportResult)) Option {
	return func(c *Container) {
		c.importReport = fn
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:     cfg,
		cacheTTL:   cacheTTL,
		familyRepo: families.NewMemoryFamilyRepository(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()

	if c.familySvc == nil {
		c.familySvc = families.NewService(c.familyRepo, families.WithLogger(logging.FamiliesLogger(c.loggerProvider)))
	}

	renderSvc, err := render.NewService(render.Config{
		Markdown: interfaces.ParseOptions{
			Extensions: cfg.Markdown.Extensions,
			HardWraps:  cfg.Markdown.HardWraps,
			SafeMode:   cfg.Markdown.SafeMode,
		},
		ParseCacheSize:       cfg.Render.ParseCacheSize,
		TrustedImagePrefixes: cfg.Render.TrustedImagePrefixes,
		TrustedImageHosts:    cfg.Render.TrustedImageHosts,
		DimmerColor:          cfg.Render.DimmerColor,
	}, render.WithLogger(logging.RenderLogger(c.loggerProvider)))
	if err != nil {
		c.Close()
		return nil, err
	}
	c.renderSvc = renderSvc

	if err := c.configureCommands(); err != nil {
		c.Close()
		return nil, err
	}

	c.logger.Info("container.configured",
		"storage", c.storageLabel(),
		"cache", c.cacheService != nil,
		"commands", cfg.Features.Commands,
		"dispatcher", len(c.subscriptions) > 0,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider == nil && c.Config.Features.Logger {
		switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
		case "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     c.Config.Logging.Level,
				Format:    c.Config.Logging.Format,
				AddSource: c.Config.Logging.AddSource,
				Focus:     c.Config.Logging.Focus,
			})
			if err != nil {
				return err
			}
			c.loggerProvider = provider
		default:
			level := console.ParseLevel(c.Config.Logging.Level)
			c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "famhome.container")
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB == nil {
		driver := c.Config.StorageDriver()
		if driver == runtimeconfig.StorageDriverMemory {
			return nil
		}
		db, err := OpenDatabase(c.Config.Storage)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}

	if err := families.Migrate(context.Background(), c.bunDB); err != nil {
		c.Close()
		return fmt.Errorf("famhome container: %w", err)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		} else {
			c.logger.Warn("container.cache.disabled", "error", err)
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	if c.cacheService != nil {
		c.familyRepo = families.NewBunFamilyRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.familyRepo = families.NewBunFamilyRepository(c.bunDB)
}

func (c *Container) configureCommands() error {
	homesFS := c.homesFS
	if homesFS == nil {
		if dir := strings.TrimSpace(c.Config.Markdown.HomesDir); dir != "" {
			homesFS = os.DirFS(dir)
		}
	}

	gates := familiescmd.FeatureGates{
		CommandsEnabled: func() bool { return c.Config.Features.Commands },
	}
	timeout := c.Config.Commands.Timeout

	set, err := familiescmd.RegisterFamilyCommands(c.commandRegistry, c.familySvc, c.loggerProvider, gates,
		familiescmd.WithHomes(familiescmd.ImportHomesConfig{
			FS:        homesFS,
			Pattern:   c.Config.Markdown.Pattern,
			Recursive: c.Config.Markdown.Recursive,
			Report:    c.importReport,
		}),
		familiescmd.WithInitHandlerOptions(commands.WithTimeout[familiescmd.InitFamilyCommand](timeout)),
		familiescmd.WithUpdateBodyHandlerOptions(commands.WithTimeout[familiescmd.UpdateHomeBodyCommand](timeout)),
		familiescmd.WithImportHTMLHandlerOptions(commands.WithTimeout[familiescmd.ImportHTMLCommand](timeout)),
		familiescmd.WithImportHomesHandlerOptions(commands.WithTimeout[familiescmd.ImportHomesCommand](timeout)),
	)
	if err != nil {
		return err
	}
	c.commandHandlers = set

	if c.Config.Commands.AutoRegisterDispatcher {
		c.subscriptions = familiescmd.Subscribe(set)
	}
	return nil
}

func (c *Container) storageLabel() string {
	if c.bunDB == nil {
		return runtimeconfig.StorageDriverMemory
	}
	if c.ownsDB {
		return c.Config.StorageDriver()
	}
	return "external"
}

// LoggerProvider returns the provider in use, which may be nil when logging
// is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// FamilyService returns the family service.
func (c *Container) FamilyService() families.Service {
	return c.familySvc
}

// RenderService returns the render service.
func (c *Container) RenderService() *render.Service {
	return c.renderSvc
}

// CommandHandlers returns the family command handlers.
func (c *Container) CommandHandlers() *familiescmd.HandlerSet {
	return c.commandHandlers
}

// BunDB returns the database behind the family store, or nil in memory mode.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Close releases dispatcher subscriptions and any database the container
// opened itself.
func (c *Container) Close() error {
	for _, sub := range c.subscriptions {
		if sub != nil {
			sub.Unsubscribe()
		}
	}
	c.subscriptions = nil

	var err error
	if c.ownsDB && c.bunDB != nil {
		err = c.bunDB.Close()
		c.bunDB = nil
		c.ownsDB = false
	}
	if err != nil {
		return errors.Join(errors.New("famhome container: close database"), err)
	}
	return nil
}
