// Package model defines the core data structures for wayshell.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// ApplicationEntry is a launchable application parsed from one desktop entry file.
// Values are never mutated after parsing.
type ApplicationEntry struct {
	ID        string `json:"id" yaml:"id"`                                 // Desktop file id, e.g. org.mozilla.firefox.desktop
	Name      string `json:"name" yaml:"name"`                             // Display name used for ranking
	Exec      string `json:"exec,omitempty" yaml:"exec,omitempty"`         // Command template; empty when the entry has no Exec key
	Comment   string `json:"comment,omitempty" yaml:"comment,omitempty"`   // Tooltip text
	Icon      string `json:"icon,omitempty" yaml:"icon,omitempty"`         // Icon name or path
	Terminal  bool   `json:"terminal,omitempty" yaml:"terminal,omitempty"` // Wants a terminal emulator
	NoDisplay bool   `json:"no_display,omitempty" yaml:"no_display,omitempty"`
	Hidden    bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Path      string `json:"path" yaml:"path"` // Source .desktop file
}

// HasExec reports whether the entry carries a command template.
func (e ApplicationEntry) HasExec() bool {
	return strings.TrimSpace(e.Exec) != ""
}

// Visible reports whether the entry belongs in the launcher index.
func (e ApplicationEntry) Visible() bool {
	return !e.NoDisplay && !e.Hidden
}

// Index is the ordered list of visible entries produced by one directory scan.
// Order is directory-scan order and is significant for ranking ties.
type Index []ApplicationEntry

// Len returns the number of entries in the index.
func (idx Index) Len() int {
	return len(idx)
}

// Names returns the display names in index order.
func (idx Index) Names() []string {
	names := make([]string, len(idx))
	for i, e := range idx {
		names[i] = e.Name
	}
	return names
}

// RankedCandidate pairs an entry with its similarity to the current query.
// Score is always in (0, 1].
type RankedCandidate struct {
	Entry ApplicationEntry `json:"entry" yaml:"entry"`
	Score float64          `json:"score" yaml:"score"`
}

// Validation errors.
var (
	ErrEmptyName  = errors.New("entry name cannot be empty")
	ErrEmptyPath  = errors.New("entry path cannot be empty")
	ErrNotVisible = errors.New("entry is hidden or marked NoDisplay")
)

// Validate checks that an entry can be placed in an index.
func (e ApplicationEntry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if e.Path == "" {
		return ErrEmptyPath
	}
	if !e.Visible() {
		return ErrNotVisible
	}
	return nil
}

// NewSessionID returns a fresh ULID used to tag one open launcher session.
func NewSessionID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}
