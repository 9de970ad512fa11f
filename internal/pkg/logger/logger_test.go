package logger

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDailyFilename(t *testing.T) {
	assert.Equal(t, "stdout_3-7-26.log", DailyFilename(time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)))
}

func TestDailyWriterAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := NewDailyWriter(dir)
	require.NoError(t, err)
	w.now = func() time.Time { return time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC) }

	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(dir, "stdout_3-7-26.log"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(body))
}

func TestNewWithoutDir(t *testing.T) {
	l, err := New(Options{Debug: true})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}
