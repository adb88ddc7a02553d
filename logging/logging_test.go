package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/spritewalk/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConsoleLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, done := logging.New(logging.Options{Level: zapcore.InfoLevel, Console: &buf})

	log.Debugw("hidden", "k", 1)
	log.Infow("player walked", "x", 2)
	done()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "player walked")
	assert.Contains(t, out, `"x": 2`)
}

func TestRollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spritewalk.log")
	var buf bytes.Buffer
	log, done := logging.New(logging.Options{Level: zapcore.DebugLevel, File: path, Console: &buf})

	log.Debug("frame advanced")
	done()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame advanced")
	assert.Contains(t, buf.String(), "frame advanced")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logging.Nop().Infow("ignored") })
}
