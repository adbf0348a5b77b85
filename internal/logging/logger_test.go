package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/robert-malhotra/go-gdsii/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			logger := logging.New(tc.level)
			assert.Equal(t, tc.expected, logger.GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", logging.FieldStructure, "TOP")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "structure=TOP")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	assert.Same(t, logging.Default(), logging.Default())
	assert.Equal(t, log.InfoLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")
	ctx := logging.WithLogger(context.Background(), base)

	ctx, logger := logging.With(ctx, logging.FieldPath, "lib.gds")
	assert.Same(t, logger, logging.FromContext(ctx))

	logging.FromContext(ctx).Debug("read structure", logging.FieldStructure, "TOP", logging.FieldElements, 3)
	assert.Contains(t, buf.String(), "path=lib.gds")
	assert.Contains(t, buf.String(), "structure=TOP")
	assert.Contains(t, buf.String(), "elements=3")
}
