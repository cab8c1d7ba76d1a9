package commands

import (
	"strings"

	"github.com/Breezeware-OS/dynamo-pages-template/internal/logging"
	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const commandModuleRoot = "pages.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching it with
// consistent structured fields so command executions stay attributable in logs.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
