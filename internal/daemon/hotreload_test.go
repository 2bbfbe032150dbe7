package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wayshell/internal/config"
)

func TestConfigWatcher_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bar]\nheight = 30\n"), 0644))

	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, w.Path())

	var mu sync.Mutex
	var reloaded *config.Config
	w.SetReloadCallback(func(c *config.Config) {
		mu.Lock()
		reloaded = c
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initial := config.DefaultConfig()
	require.NoError(t, w.Start(ctx, initial))
	defer w.Stop()
	assert.Same(t, initial, w.current())

	require.NoError(t, os.WriteFile(path, []byte("[bar]\nheight = 42\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return reloaded != nil && reloaded.Bar.Height == 42
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, 42, w.current().Bar.Height)
}

func TestConfigWatcher_InvalidFileKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayshell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bar]\nheight = 30\n"), 0644))

	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)

	errCh := make(chan error, 4)
	w.SetErrorCallback(func(err error) { errCh <- err })
	w.SetReloadCallback(func(*config.Config) { t.Error("unexpected reload") })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initial := config.DefaultConfig()
	require.NoError(t, w.Start(ctx, initial))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("[bar\nheight = "), 0644))

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("expected error callback")
	}
	assert.Same(t, initial, w.current())
}

func TestConfigWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wayshell.toml")

	w, err := NewConfigWatcher(path, nil)
	require.NoError(t, err)

	called := make(chan struct{}, 1)
	w.SetReloadCallback(func(*config.Config) { called <- struct{}{} })
	w.SetErrorCallback(func(error) { called <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx, config.DefaultConfig()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0644))

	select {
	case <-called:
		t.Fatal("callback fired for unrelated file")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestNewConfigWatcher_DefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	w, err := NewConfigWatcher("", nil)
	require.NoError(t, err)

	want, err := config.ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, want, w.Path())
}
