package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type collector struct {
	mu    sync.Mutex
	calls [][]string
}

func (c *collector) onChange(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, paths)
}

func (c *collector) seen() map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]bool{}
	for _, call := range c.calls {
		for _, p := range call {
			out[p] = true
		}
	}
	return out
}

func startWatcher(t *testing.T, root string, c *collector) {
	t.Helper()
	w, err := New(zap.NewNop().Sugar(), 50*time.Millisecond, "*.sgf", c.onChange)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, root) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// let Run register the tree before files are written
	time.Sleep(100 * time.Millisecond)
}

func TestWatcherReportsSgfFiles(t *testing.T) {
	root := t.TempDir()
	c := &collector{}
	startWatcher(t, root, c)

	game := filepath.Join(root, "game.sgf")
	require.NoError(t, os.WriteFile(game, []byte("(;GM[1]SZ[9])"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool { return c.seen()[game] }, 2*time.Second, 20*time.Millisecond)
	assert.False(t, c.seen()[filepath.Join(root, "notes.txt")])
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	c := &collector{}
	startWatcher(t, root, c)

	dir := filepath.Join(root, "Chapter 1")
	require.NoError(t, os.Mkdir(dir, 0o755))
	time.Sleep(100 * time.Millisecond)

	game := filepath.Join(dir, "1.sgf")
	require.NoError(t, os.WriteFile(game, []byte("(;GM[1]SZ[9])"), 0o644))

	assert.Eventually(t, func() bool { return c.seen()[game] }, 2*time.Second, 20*time.Millisecond)
}

func TestWatcherDebounces(t *testing.T) {
	c := &collector{}
	w, err := New(zap.NewNop().Sugar(), 30*time.Millisecond, "*.sgf", c.onChange)
	require.NoError(t, err)
	defer w.Close()

	w.schedule("b.sgf")
	w.schedule("a.sgf")
	w.schedule("b.sgf")

	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.calls) == 1
	}, time.Second, 10*time.Millisecond)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Equal(t, []string{"a.sgf", "b.sgf"}, c.calls[0])
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(zap.NewNop().Sugar(), time.Millisecond, "*.sgf", nil)
	assert.Error(t, err)

	_, err = New(zap.NewNop().Sugar(), time.Millisecond, "[", func([]string) {})
	assert.Error(t, err)
}
