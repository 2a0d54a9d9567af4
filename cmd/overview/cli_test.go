package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

func run(t *testing.T, cache string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--offline", "--cache", cache, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestOfflineLayoutLifecycle(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "layout.db")

	out, toasts, err := run(t, cache, "layout", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Quick Notes")
	assert.Contains(t, out, "Calendar")
	assert.Contains(t, toasts, "Dashboard layout saved locally")

	out, _, err = run(t, cache, "widget", "add", grid.KindMonitoringChart)
	require.NoError(t, err)
	added := regexp.MustCompile(`Added (widget-[0-9a-f]{32}) at`).FindStringSubmatch(out)
	require.Len(t, added, 2)
	assert.Contains(t, out, "Monitoring Dashboard")

	// the cached layout survives between invocations
	out, _, err = run(t, cache, "layout", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Monitoring Dashboard")

	_, _, err = run(t, cache, "widget", "move", added[1], "9", "0")
	require.ErrorIs(t, err, grid.ErrOutOfBounds)
	_, _, err = run(t, cache, "widget", "move", added[1], "0", "0")
	require.NoError(t, err)
	_, _, err = run(t, cache, "widget", "resize", added[1], "2", "1")
	require.NoError(t, err)

	_, _, err = run(t, cache, "widget", "remove", added[1])
	require.NoError(t, err)
	out, _, err = run(t, cache, "layout", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "Monitoring Dashboard")

	out, _, err = run(t, cache, "layout", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Dashboard layout reset")
}

func TestWidgetErrors(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "layout.db")

	_, _, err := run(t, cache, "widget", "add", "stock-ticker")
	require.ErrorIs(t, err, grid.ErrUnknownWidgetType)

	_, _, err = run(t, cache, "widget", "remove", "widget-missing")
	require.ErrorIs(t, err, grid.ErrWidgetNotFound)

	_, _, err = run(t, cache, "widget", "move", "widget-missing", "one", "0")
	require.Error(t, err)
}

func TestWidgetTypesOffline(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "layout.db")
	out, _, err := run(t, cache, "--roles", grid.RoleDCFApprover, "widget", "types")
	require.NoError(t, err)
	assert.Contains(t, out, grid.KindDCFApproverChart)
	assert.Contains(t, out, grid.KindQuickNotes)
	assert.NotContains(t, out, grid.KindDCFRequestorChart)
}

func TestTimeoutFlagBoundsAPIRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		select {
		case <-r.Context().Done():
		case <-time.After(10 * time.Second):
		}
	}))
	defer srv.Close()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs([]string{
		"--api", srv.URL,
		"--token", "t",
		"--timeout", "100ms",
		"--cache", filepath.Join(t.TempDir(), "layout.db"),
		"--log-level", "error",
		"layout", "show",
	})

	start := time.Now()
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Positive(t, hits.Load())
	assert.Contains(t, stdout.String(), "Quick Notes")
}
