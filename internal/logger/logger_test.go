package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func TestInitDisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: false, Writer: &buf}))

	Error("dropped")
	SetTarget("pid 1")
	Error("dropped too")

	assert.Empty(t, buf.String())
}

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Level: slog.LevelDebug, Writer: &buf}))
	t.Cleanup(func() { _ = Close() })

	Debug("edit rejected", "node", "Hex64", "text", "zz")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "edit rejected", recs[0]["msg"])
	assert.Equal(t, "zz", recs[0]["text"])
	assert.NotEmpty(t, recs[0]["session"])
	assert.NotContains(t, recs[0], "target")
}

func TestSessionAndTarget(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf}))
	t.Cleanup(func() { _ = Close() })

	Info("started")
	SetTarget("pid 4242")
	Info("attached")
	SetTarget("core.bin")
	Warn("refresh failed")

	recs := records(t, &buf)
	require.Len(t, recs, 3)
	session := recs[0]["session"]
	for _, r := range recs {
		assert.Equal(t, session, r["session"], "one id per session")
	}
	assert.Equal(t, "pid 4242", recs[1]["target"])
	assert.Equal(t, "core.bin", recs[2]["target"], "target is replaced, not stacked")

	buf.Reset()
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf}))
	Info("next run")
	assert.NotEqual(t, session, records(t, &buf)[0]["session"])
}

func TestInitCreatesDailyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))

	Info("attached")
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, logPrefix+time.Now().Format(dateLayout)+logSuffix))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"attached"`)

	Info("after close")
	data, err = os.ReadFile(filepath.Join(dir, logPrefix+time.Now().Format(dateLayout)+logSuffix))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after close")
}

func TestCleanOldLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	old := logPrefix + "2026-01-01" + logSuffix
	week := logPrefix + "2026-03-20" + logSuffix
	fresh := logPrefix + "2026-03-30" + logSuffix
	other := "unrelated.log"
	for _, name := range []string{old, week, fresh, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	exists := func(name string) bool {
		_, err := os.Stat(filepath.Join(dir, name))
		return err == nil
	}

	cleanOldLogs(dir, now, defaultKeepFor)
	assert.False(t, exists(old))
	assert.True(t, exists(week))
	assert.True(t, exists(fresh))
	assert.True(t, exists(other))

	cleanOldLogs(dir, now, 7)
	assert.False(t, exists(week))
	assert.True(t, exists(fresh))
}
