package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string, ignore func(string) bool) (*atomic.Int32, context.CancelFunc, chan error) {
	t.Helper()
	var runs atomic.Int32
	w := New([]string{root}, 50*time.Millisecond, ignore, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	w.ready = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.ready:
	case err := <-done:
		cancel()
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("watcher did not start")
	}
	return &runs, cancel, done
}

func TestWatcher_DebouncesBurstIntoOneRun(t *testing.T) {
	root := t.TempDir()
	runs, cancel, done := startWatcher(t, root, nil)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(root, "mod.py"), []byte{byte('a' + i)}, 0o600))
	}

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_NewSubdirectoriesAreWatched(t *testing.T) {
	root := t.TempDir()
	runs, cancel, done := startWatcher(t, root, nil)
	defer func() {
		cancel()
		<-done
	}()

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o750))
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)

	before := runs.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "mod.py"), []byte("x"), 0o600))
	require.Eventually(t, func() bool { return runs.Load() > before }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoredPathsDoNotTrigger(t *testing.T) {
	root := t.TempDir()
	ignore := func(p string) bool { return strings.HasSuffix(p, ".pyc") }
	runs, cancel, done := startWatcher(t, root, ignore)

	require.NoError(t, os.WriteFile(filepath.Join(root, "mod.pyc"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden.py"), []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, runs.Load())

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, time.Millisecond, nil, func(context.Context) error { return nil })
	require.Error(t, w.Run(context.Background()))
}

func TestShouldIgnoreEvent(t *testing.T) {
	assert.True(t, shouldIgnoreEvent("/src/.git"))
	assert.True(t, shouldIgnoreEvent("/src/mod.py~"))
	assert.True(t, shouldIgnoreEvent("/src/.mod.py.swp"))
	assert.True(t, shouldIgnoreEvent("/src/#mod.py#"))
	assert.False(t, shouldIgnoreEvent("/src/mod.py"))
}
