// Package index builds the application index from desktop entry files.
package index

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataDirs is used when XDG_DATA_DIRS is unset or empty.
const DefaultDataDirs = "/usr/local/share/:/usr/share/"

// SearchRoots returns the application directories to scan, highest priority first.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share, followed by each
// element of XDG_DATA_DIRS. Every root is suffixed with "applications".
func SearchRoots() []string {
	var roots []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		roots = append(roots, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = DefaultDataDirs
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		roots = append(roots, filepath.Join(dir, "applications"))
	}

	return roots
}
