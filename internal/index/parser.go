package index

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rkoesters/xdg/desktop"

	"github.com/jmylchreest/wayshell/internal/model"
)

// ParseFunc turns one desktop entry file into an ApplicationEntry.
type ParseFunc func(path string) (model.ApplicationEntry, error)

// ErrNotApplication is returned for Link and Directory entries.
var ErrNotApplication = errors.New("desktop entry is not of type Application")

// DesktopParser parses a freedesktop.org desktop entry file.
func DesktopParser(path string) (model.ApplicationEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ApplicationEntry{}, fmt.Errorf("failed to open desktop entry: %w", err)
	}
	defer f.Close()

	de, err := desktop.New(f)
	if err != nil {
		return model.ApplicationEntry{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if de.Type != desktop.Application {
		return model.ApplicationEntry{}, ErrNotApplication
	}

	return model.ApplicationEntry{
		ID:        filepath.Base(path),
		Name:      de.Name,
		Exec:      de.Exec,
		Comment:   de.Comment,
		Icon:      de.Icon,
		Terminal:  de.Terminal,
		NoDisplay: de.NoDisplay,
		Hidden:    de.Hidden,
		Path:      path,
	}, nil
}

// desktopID derives the desktop file id from a path below an applications root.
// Subdirectories are joined with "-", so kde/konsole.desktop becomes kde-konsole.desktop.
func desktopID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}
