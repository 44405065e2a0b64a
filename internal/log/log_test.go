package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"journal-backend/internal/config"
)

func TestRedactsSensitiveFields(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"password", "token", "idToken", "secret", "credentials", "Authorization"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()
			out := logSingleField(t, key, "hunter2")
			require.Equal(t, "[REDACTED]", out[key])
		})
	}
}

func TestNonSensitiveFieldsPassThrough(t *testing.T) {
	t.Parallel()
	out := logSingleField(t, "path", "/api/trade-entries")
	require.Equal(t, "/api/trade-entries", out["path"])
}

func TestRedactsInsideGroupsAndWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "debug", "json")
	require.NoError(t, err)

	logger.With("secret", "s3").Info("bootstrap", slog.Group("request", "idToken", "abc", "email", "a@b.c"))

	out := map[string]any{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	require.Equal(t, "[REDACTED]", out["secret"])
	group := out["request"].(map[string]any)
	require.Equal(t, "[REDACTED]", group["idToken"])
	require.Equal(t, "a@b.c", group["email"])
}

func TestNewWithWriterLevelsAndFormats(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "warn", "text")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "password", "x")
	line := buf.String()
	require.NotContains(t, line, "hidden")
	require.Contains(t, line, "msg=shown")
	require.Contains(t, line, "password=[REDACTED]")

	_, err = NewWithWriter(&buf, "loud", "json")
	require.Error(t, err)
	_, err = NewWithWriter(&buf, "info", "xml")
	require.Error(t, err)
}

func TestNewWritesToRotatedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "journal.log")
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	logger.Info("server started", "addr", ":5000")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "server started"))
}

func TestLogRotationCreatesNewFile(t *testing.T) {
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "journal.log")

	writer, err := NewRotatingWriter(RotationConfig{
		File:      logPath,
		MaxSizeMB: 1,
		MaxFiles:  2,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	chunk := bytes.Repeat([]byte("a"), 512*1024)
	for i := 0; i < 4; i++ {
		_, err = writer.Write(chunk)
		require.NoError(t, err)
	}

	files, err := filepath.Glob(filepath.Join(logDir, "journal*"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(files), 2)
}

func logSingleField(t *testing.T, key, value string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	base := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewRedactingHandler(base))
	logger.Info("test", key, value)

	line := bytes.TrimSpace(buf.Bytes())
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(line, &out))
	return out
}
