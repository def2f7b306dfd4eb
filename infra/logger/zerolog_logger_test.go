package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestConfigureLevelAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	closer, err := Configure(Config{Level: "warn", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = Configure(Config{})
	})

	var buf bytes.Buffer
	l := newZerolog("geocode", &buf)
	l.Infof("suppressed")
	l.Warnf("kept %d", 1)
	require.NoError(t, closer.Close())

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), `"component":"geocode"`)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "kept 1"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	_, err := Configure(Config{Level: "loud"})
	assert.Error(t, err)
}
