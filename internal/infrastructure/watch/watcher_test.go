package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
)

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 5; i++ {
		d.trigger()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	var fired atomic.Int32
	d := newDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.trigger()
	d.stop()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, fired.Load())
}

func TestConfigWatcher_ReloadsValidEdits(t *testing.T) {
	path := config.DefaultPath(t.TempDir())
	require.NoError(t, config.Save(path, config.Default()))

	var mu sync.Mutex
	var names []string
	w, err := NewConfigWatcher(path, 20*time.Millisecond, func(cfg *config.WidgetConfig) {
		mu.Lock()
		defer mu.Unlock()
		names = append(names, cfg.StudioName)
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)

	// Broken edit is ignored.
	require.NoError(t, os.WriteFile(path, []byte("endpoint: ftp://nope\n"), 0600))
	time.Sleep(100 * time.Millisecond)

	cfg := config.Default()
	cfg.StudioName = "Reloaded Studio"
	require.NoError(t, config.Save(path, cfg))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(names) > 0 && names[len(names)-1] == "Reloaded Studio"
	}, 2*time.Second, 20*time.Millisecond)

	// Writes to sibling files do not trigger reloads.
	mu.Lock()
	before := len(names)
	mu.Unlock()
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1\n"), 0600))
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, before, len(names))
	mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
