package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wayshell/internal/model"
)

func TestExpandFieldCodes(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{"firefox %u", "firefox "},
		{"echo 100%%", "echo 100%"},
		{"gimp %F", "gimp "},
		{"app %f %F %u %U %i %c %k", "app       "},
		{"app --name=%c", "app --name="},
		{"app %z", "app "},
		{"app %", "app %"},
		{"echo 50%", "echo 50%"},
		{"a%\nb", "a%\nb"},
		{"a%%\n%u", "a%\n"},
		{"plain", "plain"},
		{"", ""},
		{"%%%u%%", "%%"},
		{"héllo %U wörld", "héllo  wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandFieldCodes(tt.template))
		})
	}
}

func TestCommand(t *testing.T) {
	cmd, ok := Command(model.ApplicationEntry{Name: "Firefox", Exec: "firefox %u"})
	assert.True(t, ok)
	assert.Equal(t, "firefox ", cmd)

	_, ok = Command(model.ApplicationEntry{Name: "NoExec"})
	assert.False(t, ok)
}

func TestShellSpawner(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "spawned")
	s := NewShellSpawner("/bin/sh", nil)
	assert.Equal(t, "/bin/sh", s.Shell())

	require.NoError(t, s.Spawn(context.Background(), "touch "+marker))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShellSpawner_Errors(t *testing.T) {
	s := NewShellSpawner("/bin/sh", nil)
	assert.ErrorIs(t, s.Spawn(context.Background(), ""), ErrEmptyCommand)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Spawn(ctx, "true"), context.Canceled)

	missing := NewShellSpawner(filepath.Join(t.TempDir(), "no-shell"), nil)
	assert.Error(t, missing.Spawn(context.Background(), "true"))
}

func TestNewShellSpawner_DefaultShell(t *testing.T) {
	t.Setenv("SHELL", "")
	assert.Equal(t, "/bin/sh", NewShellSpawner("", nil).Shell())

	t.Setenv("SHELL", "/usr/bin/zsh")
	assert.Equal(t, "/usr/bin/zsh", NewShellSpawner("", nil).Shell())
}
