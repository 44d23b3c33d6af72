package poller

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xPuncker/cron-dashboard/internal/schedule"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeJobs(t *testing.T, path, content string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestPollerConfiguration(t *testing.T) {
	testCases := []struct {
		name     string
		interval time.Duration
	}{
		{"Default interval", time.Minute},
		{"Short interval", time.Second},
		{"Long interval", time.Hour},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(nil, "jobs.yaml", newTestLogger(), tc.interval)

			assert.NotNil(t, p)
			assert.Equal(t, tc.interval, p.interval)
			assert.True(t, p.modTime.IsZero())
		})
	}
}

func TestPollerReloadsChangedTable(t *testing.T) {
	logger := newTestLogger()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	writeJobs(t, path, "jobs:\n  - {id: a, name: A, schedule: \"@daily\"}\n", base)

	registry, err := schedule.NewRegistry(nil, logger, time.Minute)
	require.NoError(t, err)

	p := New(registry, path, logger, time.Minute)
	assert.False(t, p.update(), "unchanged file must not reload")
	assert.Empty(t, registry.Definitions())

	writeJobs(t, path, "jobs:\n  - {id: a, name: A, schedule: \"@daily\"}\n  - {id: b, name: B, next_run: \"2026-10-20T10:00:00Z\"}\n", base.Add(time.Minute))
	assert.True(t, p.update())
	assert.Len(t, registry.Definitions(), 2)

	writeJobs(t, path, "jobs:\n  - {id: c, name: C, schedule: \"not a schedule\"}\n", base.Add(2*time.Minute))
	assert.False(t, p.update())
	assert.Len(t, registry.Definitions(), 2, "rejected table must keep the previous one")
	assert.False(t, p.update(), "rejected file is not retried")

	writeJobs(t, path, "jobs: [", base.Add(3*time.Minute))
	assert.False(t, p.update())
	assert.Len(t, registry.Definitions(), 2)
}

func TestPollerMissingFile(t *testing.T) {
	p := New(nil, filepath.Join(t.TempDir(), "gone.yaml"), newTestLogger(), time.Minute)
	assert.False(t, p.update())
}

func TestPollerStopWaitsForLoop(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := New(nil, filepath.Join(t.TempDir(), "jobs.yaml"), logger, time.Hour)
	p.Start(context.Background())
	p.Stop()

	entry := hook.LastEntry()
	require.NotNil(t, entry, "loop must have exited before Stop returned")
	assert.Equal(t, "Job table poller stopped", entry.Message)

	p.Stop()
}

func TestPollerContextCancel(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	p := New(nil, filepath.Join(t.TempDir(), "jobs.yaml"), logger, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	p.Start(ctx)
	cancel()

	assert.Eventually(t, func() bool {
		entry := hook.LastEntry()
		return entry != nil && entry.Message == "Job table poller stopped"
	}, time.Second, 10*time.Millisecond)

	p.Stop()
}

func TestPollerReloadsWhileRunning(t *testing.T) {
	logger := newTestLogger()
	path := filepath.Join(t.TempDir(), "jobs.yaml")
	// ahead of the wall clock so the write itself never looks like a change
	base := time.Now().Add(time.Hour).Truncate(time.Second)
	writeJobs(t, path, "jobs: []\n", base)

	registry, err := schedule.NewRegistry(nil, logger, time.Minute)
	require.NoError(t, err)

	p := New(registry, path, logger, 10*time.Millisecond)
	p.Start(context.Background())
	defer p.Stop()

	writeJobs(t, path, "jobs:\n  - {id: a, name: A, schedule: \"@daily\"}\n", base.Add(time.Minute))

	assert.Eventually(t, func() bool {
		return len(registry.Definitions()) == 1
	}, time.Second, 10*time.Millisecond)
}
