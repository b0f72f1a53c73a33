package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log, err := New(LogOption{})
	require.NoError(t, err)
	log.Info("defaults to console at info")

	log, err = New(LogOption{Format: "json", Level: "debug"})
	require.NoError(t, err)
	log.Debug("json at debug")

	log, err = New(LogOption{Format: "console", Level: "warn", LogDir: t.TempDir()})
	require.NoError(t, err)
	log.Warn("rotating file sink")
	require.NoError(t, log.Sync())
}

func TestNew_BadOptions(t *testing.T) {
	_, err := New(LogOption{Format: "xml"})
	assert.ErrorContains(t, err, "log format")

	_, err = New(LogOption{Level: "loud"})
	assert.ErrorContains(t, err, "log level")
}
