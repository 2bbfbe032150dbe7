package model

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationEntry_Validate(t *testing.T) {
	valid := ApplicationEntry{Name: "Firefox", Exec: "firefox %u", Path: "/usr/share/applications/firefox.desktop"}

	tests := []struct {
		name    string
		modify  func(*ApplicationEntry)
		wantErr error
	}{
		{"valid entry", func(e *ApplicationEntry) {}, nil},
		{"empty name", func(e *ApplicationEntry) { e.Name = "  " }, ErrEmptyName},
		{"empty path", func(e *ApplicationEntry) { e.Path = "" }, ErrEmptyPath},
		{"no display", func(e *ApplicationEntry) { e.NoDisplay = true }, ErrNotVisible},
		{"hidden", func(e *ApplicationEntry) { e.Hidden = true }, ErrNotVisible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.modify(&e)
			err := e.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestApplicationEntry_HasExec(t *testing.T) {
	assert.True(t, ApplicationEntry{Exec: "foot"}.HasExec())
	assert.False(t, ApplicationEntry{}.HasExec())
	assert.False(t, ApplicationEntry{Exec: "   "}.HasExec())
}

func TestIndex_Names(t *testing.T) {
	idx := Index{{Name: "Files"}, {Name: "Firefox"}}
	assert.Equal(t, []string{"Files", "Firefox"}, idx.Names())
	assert.Equal(t, 2, idx.Len())
	assert.Empty(t, Index{}.Names())
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	_, err = ulid.Parse(a)
	assert.NoError(t, err)
}
