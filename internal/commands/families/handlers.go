package familiescmd

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-famhome/internal/commands"
	"github.com/goliatone/go-famhome/internal/families"
	"github.com/goliatone/go-famhome/internal/homemd"
	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/internal/markdown"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

const (
	initOperation        = "families.init"
	updateBodyOperation  = "families.update_home_body"
	importHTMLOperation  = "families.import_html"
	importHomesOperation = "families.import_homes"
)

var (
	// ErrCommandsDisabled is returned when the commands feature is off.
	ErrCommandsDisabled = errors.New("families command: feature disabled")
	// ErrHomeOwnerMissing is reported for a home file without an owner.
	ErrHomeOwnerMissing = errors.New("families command: home file has no owner")
	// ErrHomesSourceMissing is returned when no filesystem was configured.
	ErrHomesSourceMissing = errors.New("families command: homes filesystem not configured")
)

var (
	_ command.Commander[InitFamilyCommand]     = (*InitFamilyHandler)(nil)
	_ command.Commander[UpdateHomeBodyCommand] = (*UpdateHomeBodyHandler)(nil)
	_ command.Commander[ImportHTMLCommand]     = (*ImportHTMLHandler)(nil)
	_ command.Commander[ImportHomesCommand]    = (*ImportHomesHandler)(nil)
)

// mapServiceError keeps input errors in the validation category.
func mapServiceError(err error) error {
	switch {
	case errors.Is(err, families.ErrOwnerRequired):
		return commands.ValidationError(err, "FAMILY_OWNER_REQUIRED")
	case errors.Is(err, families.ErrFamilyIDRequired):
		return commands.ValidationError(err, "FAMILY_ID_REQUIRED")
	case errors.Is(err, families.ErrFamilyNotFound):
		return commands.ValidationError(err, "FAMILY_NOT_FOUND")
	case errors.Is(err, families.ErrNameRequired):
		return commands.ValidationError(err, "FAMILY_NAME_REQUIRED")
	default:
		return err
	}
}

// InitFamilyHandler runs InitFamilyCommand.
type InitFamilyHandler struct {
	inner *commands.Handler[InitFamilyCommand]
}

// NewInitFamilyHandler creates a handler bound to service.
func NewInitFamilyHandler(service families.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[InitFamilyCommand]) *InitFamilyHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg InitFamilyCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}
		family, err := service.InitFamily(ctx, families.InitFamilyInput{OwnerUID: msg.OwnerUID, Name: msg.Name})
		if err != nil {
			return mapServiceError(err)
		}
		logging.WithFamilyContext(logger, family.ID.String(), family.OwnerUID).Info("families.command.init.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InitFamilyCommand]{
		commands.WithLogger[InitFamilyCommand](logger),
		commands.WithOperation[InitFamilyCommand](initOperation),
		commands.WithMessageFields(func(msg InitFamilyCommand) map[string]any {
			return map[string]any{"owner_uid": strings.TrimSpace(msg.OwnerUID)}
		}),
	}
	return &InitFamilyHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute implements command.Commander.
func (h *InitFamilyHandler) Execute(ctx context.Context, msg InitFamilyCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateHomeBodyHandler runs UpdateHomeBodyCommand.
type UpdateHomeBodyHandler struct {
	inner *commands.Handler[UpdateHomeBodyCommand]
}

// NewUpdateHomeBodyHandler creates a handler bound to service.
func NewUpdateHomeBodyHandler(service families.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[UpdateHomeBodyCommand]) *UpdateHomeBodyHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg UpdateHomeBodyCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}
		family, err := service.UpdateBodyMarkdown(ctx, msg.FamilyID, msg.BodyMarkdown)
		if err != nil {
			return mapServiceError(err)
		}
		doc := homemd.Parse(family.BodyMarkdown)
		logging.WithFamilyContext(logger, family.ID.String(), family.OwnerUID).Info("families.command.update_home_body.completed",
			"segments", len(doc.Segments),
			"background", doc.HasBackground(),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateHomeBodyCommand]{
		commands.WithLogger[UpdateHomeBodyCommand](logger),
		commands.WithOperation[UpdateHomeBodyCommand](updateBodyOperation),
		commands.WithMessageFields(func(msg UpdateHomeBodyCommand) map[string]any {
			return map[string]any{"family_id": msg.FamilyID.String(), "body_bytes": len(msg.BodyMarkdown)}
		}),
	}
	return &UpdateHomeBodyHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute implements command.Commander.
func (h *UpdateHomeBodyHandler) Execute(ctx context.Context, msg UpdateHomeBodyCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportHTMLHandler runs ImportHTMLCommand.
type ImportHTMLHandler struct {
	inner *commands.Handler[ImportHTMLCommand]
}

// NewImportHTMLHandler creates a handler bound to service.
func NewImportHTMLHandler(service families.Service, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportHTMLCommand]) *ImportHTMLHandler {
	logger = commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg ImportHTMLCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}
		family, err := service.ImportHTML(ctx, msg.FamilyID, msg.HTML)
		if err != nil {
			return mapServiceError(err)
		}
		logging.WithFamilyContext(logger, family.ID.String(), family.OwnerUID).Info("families.command.import_html.completed",
			"body_bytes", len(family.BodyMarkdown),
		)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportHTMLCommand]{
		commands.WithLogger[ImportHTMLCommand](logger),
		commands.WithOperation[ImportHTMLCommand](importHTMLOperation),
		commands.WithMessageFields(func(msg ImportHTMLCommand) map[string]any {
			return map[string]any{"family_id": msg.FamilyID.String(), "html_bytes": len(msg.HTML)}
		}),
	}
	return &ImportHTMLHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute implements command.Commander.
func (h *ImportHTMLHandler) Execute(ctx context.Context, msg ImportHTMLCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ImportResult summarises one ImportHomesCommand run.
type ImportResult struct {
	Imported []string
	Skipped  []string
	Errors   map[string]error
	DryRun   bool
}

// ImportHomesHandler runs ImportHomesCommand against a filesystem.
type ImportHomesHandler struct {
	inner *commands.Handler[ImportHomesCommand]
}

// ImportHomesConfig wires the home file loader.
type ImportHomesConfig struct {
	FS        fs.FS
	Pattern   string
	Recursive bool
	// Report receives the summary of every successful run.
	Report func(ImportResult)
}

// NewImportHomesHandler creates a handler reading home files from cfg.FS.
func NewImportHomesHandler(service families.Service, cfg ImportHomesConfig, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ImportHomesCommand]) *ImportHomesHandler {
	logger = commands.EnsureLogger(logger)
	loader := markdown.NewLoader(cfg.FS, markdown.LoaderConfig{Pattern: cfg.Pattern, Recursive: cfg.Recursive})

	exec := func(ctx context.Context, msg ImportHomesCommand) error {
		if !gates.commandsEnabled() {
			return ErrCommandsDisabled
		}
		if cfg.FS == nil {
			return ErrHomesSourceMissing
		}
		files, err := loader.LoadDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		result := ImportResult{DryRun: msg.DryRun, Errors: map[string]error{}}
		for _, file := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := importHome(ctx, service, file, msg.DryRun); err != nil {
				if errors.Is(err, ErrHomeOwnerMissing) {
					result.Skipped = append(result.Skipped, file.FilePath)
				} else {
					result.Errors[file.FilePath] = err
				}
				logger.Warn("families.command.import_homes.file_failed", "file_path", file.FilePath, "error", err)
				continue
			}
			result.Imported = append(result.Imported, file.FilePath)
		}

		logging.WithFields(logger, map[string]any{
			"imported_count": len(result.Imported),
			"skipped_count":  len(result.Skipped),
			"error_count":    len(result.Errors),
			"dry_run":        msg.DryRun,
		}).Info("families.command.import_homes.completed")
		if cfg.Report != nil {
			cfg.Report(result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportHomesCommand]{
		commands.WithLogger[ImportHomesCommand](logger),
		commands.WithOperation[ImportHomesCommand](importHomesOperation),
		commands.WithMessageFields(func(msg ImportHomesCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
	}
	return &ImportHomesHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

// Execute implements command.Commander.
func (h *ImportHomesHandler) Execute(ctx context.Context, msg ImportHomesCommand) error {
	return h.inner.Execute(ctx, msg)
}

func importHome(ctx context.Context, service families.Service, file *interfaces.HomeFile, dryRun bool) error {
	meta := file.FrontMatter
	owner := strings.TrimSpace(meta.Owner)
	if owner == "" {
		return ErrHomeOwnerMissing
	}
	body := string(file.Body)
	if dryRun {
		return nil
	}

	family, err := service.InitFamily(ctx, families.InitFamilyInput{OwnerUID: owner, Name: meta.Name})
	if err != nil {
		return err
	}
	input := families.UpdateHomeInput{ID: family.ID, BodyMarkdown: &body}
	if name := strings.TrimSpace(meta.Name); name != "" {
		input.Name = &name
	}
	if meta.HeaderTitle != "" {
		input.HeaderTitle = &meta.HeaderTitle
	}
	if meta.BodyTitle != "" {
		input.BodyTitle = &meta.BodyTitle
	}
	if meta.Footer != "" {
		input.Footer = &meta.Footer
	}
	_, err = service.UpdateHome(ctx, input)
	return err
}
