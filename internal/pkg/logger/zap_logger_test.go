package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.log")
	l := NewIsolatedLogger(path)

	l.Info("activity", "NOTE_CREATED", map[string]interface{}{"note_id": 7})
	l.Error("activity", "forward failed", map[string]interface{}{"error": errors.New("nats down")})
	l.Debug("activity", "dropped below file level", nil)
	require.NoError(t, l.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "NOTE_CREATED", first["message"])
	assert.Equal(t, "activity", first["module"])
	assert.Contains(t, first, "timestamp")

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "nats down", second["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Warn("any", "ignored", nil)
	assert.NoError(t, l.Sync())
}
