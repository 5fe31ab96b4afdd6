package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConditionalSourceHandlerPerLevel(t *testing.T) {
	defaultLevels := []slog.Level{slog.LevelWarn, slog.LevelError}

	tests := []struct {
		name             string
		level            slog.Level
		showSourceLevels []slog.Level
		wantSource       bool
	}{
		{"debug omits source", slog.LevelDebug, defaultLevels, false},
		{"info omits source", slog.LevelInfo, defaultLevels, false},
		{"warn carries source", slog.LevelWarn, defaultLevels, true},
		{"error carries source", slog.LevelError, defaultLevels, true},
		{"info carries source when configured", slog.LevelInfo,
			[]slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}, true},
		{"no levels configured", slog.LevelError, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			baseHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			})
			log := slog.New(NewConditionalSourceHandler(baseHandler, tt.showSourceLevels...))

			log.Log(context.Background(), tt.level, "probe")

			gotSource := strings.Contains(buf.String(), "source=")
			if gotSource != tt.wantSource {
				t.Errorf("source presence = %v, want %v, output: %s", gotSource, tt.wantSource, buf.String())
			}
		})
	}
}

func TestConditionalSourceHandlerPreservesAttrs(t *testing.T) {
	var buf bytes.Buffer
	baseHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{AddSource: false})
	log := slog.New(NewConditionalSourceHandler(baseHandler, slog.LevelError)).With("ticket_id", "42")

	log.Info("probe")

	output := buf.String()
	if strings.Contains(output, "source=") {
		t.Errorf("info record should not carry source, output: %s", output)
	}
	if !strings.Contains(output, "ticket_id=42") {
		t.Errorf("attribute lost through wrapper, output: %s", output)
	}
}

func TestConditionalSourceHandlerPreservesGroups(t *testing.T) {
	var buf bytes.Buffer
	baseHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{AddSource: false})
	log := slog.New(NewConditionalSourceHandler(baseHandler, slog.LevelError)).WithGroup("request")

	log.Info("probe", "path", "/tickets")

	output := buf.String()
	if !strings.Contains(output, "path") {
		t.Errorf("group attribute lost through wrapper, output: %s", output)
	}
}

func TestConditionalSourceHandlerEnabledDelegates(t *testing.T) {
	var buf bytes.Buffer
	baseHandler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewConditionalSourceHandler(baseHandler, slog.LevelError)

	if !handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled by the base handler")
	}
	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by the base handler")
	}
}
