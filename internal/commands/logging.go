package commands

import (
	"strings"

	"github.com/goliatone/go-famhome/internal/logging"
	"github.com/goliatone/go-famhome/pkg/interfaces"
)

// CommandLogger returns the logger for one command family, tagged so every
// command entry can be filtered on component=command.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	return logging.WithFields(logging.CommandLogger(provider, name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
