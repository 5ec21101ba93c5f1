package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/temper/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "Without timing cache, 812.40 ms", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "cache capture skipped", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "build failed", goldenName: "handler_error"},
		{name: "debug level", level: slog.LevelDebug, msg: "stage compiling finished", goldenName: "handler_debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			handler := logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
			slog.New(handler).Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_FiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil)
	slog.New(handler).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	handler := logger.NewPrettyHandler(buf, nil).
		WithAttrs([]slog.Attr{slog.String("stage", "compiling")}).
		WithGroup("cache")
	slog.New(handler).Info("build finished", slog.Int("bytes", 4096))

	g := goldie.New(t)
	g.Assert(t, "handler_attrs_group", buf.Bytes())
}
