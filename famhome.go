// Package famhome parses and renders family home pages written in the homemd
// dialect and keeps each family's page in a store.
package famhome

import (
	"context"

	"github.com/google/uuid"

	familiescmd "github.com/goliatone/go-famhome/internal/commands/families"
	"github.com/goliatone/go-famhome/internal/di"
	"github.com/goliatone/go-famhome/internal/families"
	"github.com/goliatone/go-famhome/internal/homemd"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/render"
	"github.com/goliatone/go-famhome/internal/render/nativerender"
)

type (
	// Document is a parsed home page body.
	Document = homemd.Document
	// Platform selects the render adapter.
	Platform = render.Platform
	// Output is a rendered home page.
	Output = render.Output
	// NativeNode is one node of the native view tree.
	NativeNode = nativerender.Node
	// Family is a stored family and its home page.
	Family = families.Family
	// FamilyService exports the family store contract.
	FamilyService = families.Service
	// CommandHandlers groups the family command handlers.
	CommandHandlers = familiescmd.HandlerSet
	// Option overrides container wiring.
	Option = di.Option
)

const (
	PlatformWeb     = render.PlatformWeb
	PlatformIOS     = render.PlatformIOS
	PlatformAndroid = render.PlatformAndroid
)

var (
	// ErrUnknownPlatform is wrapped by ParsePlatform failures.
	ErrUnknownPlatform = render.ErrUnknownPlatform
	// ErrFamilyNotFound matches lookups of unknown families.
	ErrFamilyNotFound = families.ErrFamilyNotFound
)

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithBunDB           = di.WithBunDB
	WithCache           = di.WithCache
	WithFamilyService   = di.WithFamilyService
	WithHomesFS         = di.WithHomesFS
	WithCommandRegistry = di.WithCommandRegistry
	WithImportReport    = di.WithImportReport
)

// ParsePlatform normalises a platform name.
func ParsePlatform(value string) (Platform, error) {
	return render.ParsePlatform(value)
}

// Parse runs the dialect parser without a configured module.
func Parse(raw string) Document {
	return homemd.Parse(raw)
}

// Module is the top level runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg and optional container overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Parse parses raw through the module's memoizing parser.
func (m *Module) Parse(raw string) Document {
	return m.container.RenderService().Parse(raw)
}

// Render parses raw and renders it for platform.
func (m *Module) Render(ctx context.Context, platform Platform, raw string) (*Output, error) {
	return m.container.RenderService().Render(ctx, platform, raw)
}

// RenderFamily renders the stored home page body of familyID.
func (m *Module) RenderFamily(ctx context.Context, platform Platform, familyID uuid.UUID) (*Output, error) {
	family, err := m.container.FamilyService().GetFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}
	out, err := m.container.RenderService().Render(ctx, platform, family.BodyMarkdown)
	if err != nil {
		logging.WithFamilyContext(logging.RenderLogger(m.container.LoggerProvider()), family.ID.String(), family.OwnerUID).
			Error("render.family.failed", "platform", string(platform), "error", err)
		return nil, err
	}
	return out, nil
}

// Families returns the family store service.
func (m *Module) Families() FamilyService {
	return m.container.FamilyService()
}

// Commands returns the family command handlers.
func (m *Module) Commands() *CommandHandlers {
	return m.container.CommandHandlers()
}

// Close releases the module's database and dispatcher subscriptions.
func (m *Module) Close() error {
	return m.container.Close()
}
