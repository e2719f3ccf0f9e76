package logger

import (
  "testing"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "go.uber.org/zap"
  "go.uber.org/zap/zapcore"
  "go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownMode(t *testing.T) {
  _, err := New("verbose")
  require.Error(t, err)
}

func TestNewKnownModes(t *testing.T) {
  for _, mode := range []string{"", "development", "production"} {
    log, err := New(mode)
    require.NoError(t, err, mode)
    require.NotNil(t, log)
  }
}

func TestWithCarriesFields(t *testing.T) {
  core, logs := observer.New(zapcore.DebugLevel)
  log := &Logger{sugar: zap.New(core).Sugar()}

  log.With("repo", "MessageRepo").Info("saved message", "id", 3)

  entries := logs.All()
  require.Len(t, entries, 1)
  assert.Equal(t, "saved message", entries[0].Message)
  fields := entries[0].ContextMap()
  assert.Equal(t, "MessageRepo", fields["repo"])
  assert.EqualValues(t, 3, fields["id"])
}
