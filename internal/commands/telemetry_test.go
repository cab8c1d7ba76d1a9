package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Breezeware-OS/dynamo-pages-template/pkg/interfaces"
)

type recordingLogger struct {
	fields   map[string]any
	messages []string
}

func (l *recordingLogger) Trace(msg string, args ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.messages = append(l.messages, msg) }
func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return l
}

// fieldsLogger also supports the optional fields extension.
type fieldsLogger struct {
	recordingLogger
}

func (l *fieldsLogger) WithFields(fields map[string]any) interfaces.Logger {
	l.fields = fields
	return l
}

func TestDefaultTelemetryLogsOutcomes(t *testing.T) {
	logger := &recordingLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:  "pages.test.message",
		Fields:   map[string]any{"command": "pages.test.message"},
		Duration: 5 * time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})
	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:  "pages.test.message",
		Duration: 5 * time.Millisecond,
		Error:    errors.New("boom"),
		Status:   TelemetryStatusFailed,
	})

	if len(logger.messages) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logger.messages))
	}
	if logger.messages[0] != "command.execute.success" {
		t.Fatalf("unexpected success entry %q", logger.messages[0])
	}
	if logger.messages[1] != "command.execute.failed" {
		t.Fatalf("unexpected failure entry %q", logger.messages[1])
	}
}

func TestDefaultTelemetryAttachesFieldsWhenSupported(t *testing.T) {
	logger := &fieldsLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:  "pages.test.message",
		Fields:   map[string]any{"operation": "document.publish"},
		Duration: time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})

	if logger.fields["operation"] != "document.publish" {
		t.Fatalf("expected fields to reach the logger, got %v", logger.fields)
	}
	if len(logger.messages) != 1 || logger.messages[0] != "command.execute.success" {
		t.Fatalf("unexpected entries %v", logger.messages)
	}
}
