package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-famhome/pkg/interfaces"
)

const (
	rootModule     = "famhome"
	renderModule   = "famhome.render"
	familiesModule = "famhome.families"
	commandsModule = "famhome.commands"
)

const (
	fieldFamilyID = "family_id"
	fieldOwnerUID = "owner_uid"
	fieldPlatform = "platform"
	fieldFilePath = "file_path"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one
// that returns nil, yields the no-op logger. The module name is attached as
// the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// RenderLogger returns the logger used by the render adapters.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// FamiliesLogger returns the logger used by the family store.
func FamiliesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, familiesModule)
}

// CommandLogger returns the logger for a command handler, namespaced under
// famhome.commands.
func CommandLogger(provider interfaces.LoggerProvider, command string) interfaces.Logger {
	command = strings.TrimSpace(command)
	if command == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return ModuleLogger(provider, commandsModule+"."+command)
}

// WithFamilyContext annotates logger with family identifiers. Empty values
// are skipped.
func WithFamilyContext(logger interfaces.Logger, familyID, ownerUID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(familyID); trimmed != "" {
		fields[fieldFamilyID] = trimmed
	}
	if trimmed := strings.TrimSpace(ownerUID); trimmed != "" {
		fields[fieldOwnerUID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRenderContext annotates logger with the target platform and, when
// known, the source file.
func WithRenderContext(logger interfaces.Logger, platform, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(platform); trimmed != "" {
		fields[fieldPlatform] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
