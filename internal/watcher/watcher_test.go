package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/defreg/internal/watcher"
)

func startWatcher(t *testing.T, cfg watcher.Config) <-chan []watcher.Change {
	t.Helper()
	w, err := watcher.New(cfg)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.cmp")
	require.NoError(t, os.WriteFile(path, []byte("description: a"), 0644))

	onChange := startWatcher(t, watcher.Config{Root: dir, DebounceDur: 50 * time.Millisecond})

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("description: %d", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case batch := <-onChange:
		require.Len(t, batch, 1)
		require.Equal(t, path, batch[0].Path)
		require.Equal(t, watcher.OpWrite, batch[0].Op)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	onChange := startWatcher(t, watcher.Config{
		Root:        dir,
		DebounceDur: 30 * time.Millisecond,
		Relevant:    func(p string) bool { return !strings.HasSuffix(p, ".swp") },
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.cmp.swp"), []byte("x"), 0644))

	select {
	case batch := <-onChange:
		t.Fatalf("unexpected notification: %v", batch)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NewDirectoriesAreWatched(t *testing.T) {
	dir := t.TempDir()
	onChange := startWatcher(t, watcher.Config{Root: dir, DebounceDur: 50 * time.Millisecond})

	bundle := filepath.Join(dir, "test", "button")
	require.NoError(t, os.MkdirAll(bundle, 0755))
	// Give the loop a moment to register the new directories.
	time.Sleep(50 * time.Millisecond)
	target := filepath.Join(bundle, "button.cmp")
	require.NoError(t, os.WriteFile(target, []byte("description: b"), 0644))

	deadline := time.After(time.Second)
	for {
		select {
		case batch := <-onChange:
			for _, c := range batch {
				if c.Path == target {
					return
				}
			}
		case <-deadline:
			t.Fatal("change in new directory not reported")
		}
	}
}

func TestWatcher_RemoveReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "button.css")
	require.NoError(t, os.WriteFile(path, []byte(".THIS {}"), 0644))

	onChange := startWatcher(t, watcher.Config{Root: dir, DebounceDur: 30 * time.Millisecond})
	require.NoError(t, os.Remove(path))

	select {
	case batch := <-onChange:
		require.Equal(t, []watcher.Change{{Path: path, Op: watcher.OpRemove}}, batch)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected remove notification")
	}
}

func TestWatcher_Stop(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(t.TempDir()))
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/src")
	require.Equal(t, "/src", cfg.Root)
	require.Equal(t, 250*time.Millisecond, cfg.DebounceDur)
	require.Nil(t, cfg.Relevant)
}

func TestOp_String(t *testing.T) {
	require.Equal(t, "write", watcher.OpWrite.String())
	require.Equal(t, "create", watcher.OpCreate.String())
	require.Equal(t, "remove", watcher.OpRemove.String())
}
