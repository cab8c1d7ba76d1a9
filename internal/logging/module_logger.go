package logging

import (
	"context"
	"strings"

	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

const (
	rootModule        = "pages"
	documentsModule   = "pages.documents"
	collectionsModule = "pages.collections"
	markdownModule    = "pages.markdown"
	commandsModule    = "pages.commands"
)

const (
	fieldDocumentID = "document_id"
	fieldUserID     = "user_id"
	fieldImportPath = "import_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
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

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DocumentsLogger returns the logger namespace reserved for document services.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// CollectionsLogger returns the logger namespace reserved for collection services.
func CollectionsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, collectionsModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown rendering and import.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger returns the logger namespace reserved for command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithDocumentContext enriches the provided logger with common document fields
// such as document id and acting user. Empty values are ignored.
func WithDocumentContext(logger interfaces.Logger, documentID, userID string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(documentID); trimmed != "" {
		fields[fieldDocumentID] = trimmed
	}
	if trimmed := strings.TrimSpace(userID); trimmed != "" {
		fields[fieldUserID] = trimmed
	}
	return WithFields(logger, fields)
}

// WithImportContext enriches the provided logger with the source path of an
// imported Markdown file.
func WithImportContext(logger interfaces.Logger, path string) interfaces.Logger {
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		return WithFields(logger, map[string]any{fieldImportPath: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
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
