package familiescmd

import (
	"errors"

	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-famhome/internal/commands"
	"github.com/goliatone/go-famhome/internal/families"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Subscription is a dispatcher registration that can be released.
type Subscription interface {
	Unsubscribe()
}

// HandlerSet groups the family command handlers.
type HandlerSet struct {
	Init        *InitFamilyHandler
	UpdateBody  *UpdateHomeBodyHandler
	ImportHTML  *ImportHTMLHandler
	ImportHomes *ImportHomesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	homes      ImportHomesConfig
	initOpts   []commands.HandlerOption[InitFamilyCommand]
	updateOpts []commands.HandlerOption[UpdateHomeBodyCommand]
	htmlOpts   []commands.HandlerOption[ImportHTMLCommand]
	importOpts []commands.HandlerOption[ImportHomesCommand]
}

// WithHomes configures the filesystem ImportHomesCommand reads from.
func WithHomes(cfg ImportHomesConfig) Option {
	return func(o *options) {
		o.homes = cfg
	}
}

// WithInitHandlerOptions forwards options to the InitFamilyHandler constructor.
func WithInitHandlerOptions(opts ...commands.HandlerOption[InitFamilyCommand]) Option {
	return func(o *options) {
		o.initOpts = append(o.initOpts, opts...)
	}
}

// WithUpdateBodyHandlerOptions forwards options to the UpdateHomeBodyHandler constructor.
func WithUpdateBodyHandlerOptions(opts ...commands.HandlerOption[UpdateHomeBodyCommand]) Option {
	return func(o *options) {
		o.updateOpts = append(o.updateOpts, opts...)
	}
}

// WithImportHTMLHandlerOptions forwards options to the ImportHTMLHandler constructor.
func WithImportHTMLHandlerOptions(opts ...commands.HandlerOption[ImportHTMLCommand]) Option {
	return func(o *options) {
		o.htmlOpts = append(o.htmlOpts, opts...)
	}
}

// WithImportHomesHandlerOptions forwards options to the ImportHomesHandler constructor.
func WithImportHomesHandlerOptions(opts ...commands.HandlerOption[ImportHomesCommand]) Option {
	return func(o *options) {
		o.importOpts = append(o.importOpts, opts...)
	}
}

// RegisterFamilyCommands builds the family handlers and registers them with
// reg when it is not nil.
func RegisterFamilyCommands(reg CommandRegistry, service families.Service, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("families command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "families")
	set := &HandlerSet{
		Init:        NewInitFamilyHandler(service, logger, gates, cfg.initOpts...),
		UpdateBody:  NewUpdateHomeBodyHandler(service, logger, gates, cfg.updateOpts...),
		ImportHTML:  NewImportHTMLHandler(service, logger, gates, cfg.htmlOpts...),
		ImportHomes: NewImportHomesHandler(service, cfg.homes, logger, gates, cfg.importOpts...),
	}

	if reg == nil {
		return set, nil
	}
	for _, handler := range []any{set.Init, set.UpdateBody, set.ImportHTML, set.ImportHomes} {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Subscribe attaches every handler in set to the go-command dispatcher.
func Subscribe(set *HandlerSet) []Subscription {
	if set == nil {
		return nil
	}
	return []Subscription{
		dispatcher.SubscribeCommand(set.Init),
		dispatcher.SubscribeCommand(set.UpdateBody),
		dispatcher.SubscribeCommand(set.ImportHTML),
		dispatcher.SubscribeCommand(set.ImportHomes),
	}
}
