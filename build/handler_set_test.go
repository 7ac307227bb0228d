package build

import (
	"bytes"
	"path/filepath"
	"testing"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

// TestHandlerSet checks that records reach every handler of the set and that
// the level applies to all of them.
func TestHandlerSet(t *testing.T) {
	t.Parallel()

	var buf1, buf2 bytes.Buffer
	set := NewHandlerSet(
		btclogv1.LevelInfo,
		btclog.NewDefaultHandler(&buf1, btclog.WithNoTimestamp()),
		btclog.NewDefaultHandler(&buf2, btclog.WithNoTimestamp()),
	)
	require.Equal(t, btclogv1.LevelInfo, set.Level())

	logger := btclog.NewSLogger(set).SubSystem("TEST")
	logger.Debugf("hidden")
	logger.Infof("hello %v", "world")

	for _, buf := range []*bytes.Buffer{&buf1, &buf2} {
		out := buf.String()
		require.Contains(t, out, "TEST")
		require.Contains(t, out, "hello world")
		require.NotContains(t, out, "hidden")
	}

	set.SetLevel(btclogv1.LevelError)
	require.Equal(t, btclogv1.LevelError, set.Level())
	require.Equal(t, btclogv1.LevelError, set.SubSystem("SUB").Level())
}

// TestLogConfigValidate checks the validation of the logging options.
func TestLogConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultLogConfig()
	require.NoError(t, cfg.Validate())

	cfg.File.Compressor = Zstd
	require.NoError(t, cfg.Validate())

	cfg.File.Compressor = "lz4"
	require.ErrorContains(t, cfg.Validate(), "invalid log compressor")

	cfg = DefaultLogConfig()
	cfg.Console.CallSite = "medium"
	require.ErrorContains(t, cfg.Validate(), "invalid call-site")

	level, err := ParseLogLevel("debug")
	require.NoError(t, err)
	require.Equal(t, btclogv1.LevelDebug, level)

	set := NewHandlerSet(level)
	require.Equal(t, btclogv1.LevelDebug, set.Level())

	_, err = ParseLogLevel("loud")
	require.Error(t, err)
}

// TestRotatingLogWriter checks that the rotator creates the log file and
// refuses unknown compressors.
func TestRotatingLogWriter(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "logs", "test.log")

	cfg := DefaultLogConfig().File
	cfg.Compressor = "lz4"

	w := NewRotatingLogWriter()
	require.Error(t, w.InitLogRotator(cfg, logFile))

	cfg.Compressor = Zstd
	require.NoError(t, w.InitLogRotator(cfg, logFile))

	_, err := w.Write([]byte("log line\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.FileExists(t, logFile)
}
