package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/wayshell/internal/model"
)

// Builder scans a fixed set of roots with a parser.
// A Builder holds no cache; every Build call rescans the filesystem.
type Builder struct {
	roots  []string
	parse  ParseFunc
	logger *slog.Logger
}

// NewBuilder creates a Builder. A nil parse uses DesktopParser.
func NewBuilder(roots []string, parse ParseFunc, logger *slog.Logger) *Builder {
	if parse == nil {
		parse = DesktopParser
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{roots: roots, parse: parse, logger: logger}
}

// Roots returns the directories this builder scans.
func (b *Builder) Roots() []string {
	return b.roots
}

// Build walks every root and returns the visible application entries in scan order.
func (b *Builder) Build() model.Index {
	idx := model.Index{}
	for _, root := range b.roots {
		w := walker{
			root:      root,
			parse:     b.parse,
			logger:    b.logger,
			ancestors: make(map[string]struct{}),
		}
		idx = w.walk(root, idx)
	}
	b.logger.Debug("index built", "roots", len(b.roots), "entries", len(idx))
	return idx
}

// Build scans roots using parse and the default logger.
func Build(roots []string, parse ParseFunc) model.Index {
	return NewBuilder(roots, parse, nil).Build()
}

type walker struct {
	root   string
	parse  ParseFunc
	logger *slog.Logger
	// resolved directories on the current descent path
	ancestors map[string]struct{}
}

// walk descends into dir, following symlinks. A link back to a directory
// already on the current path is skipped so cycles terminate; a directory
// reached through two separate links is indexed twice.
func (w *walker) walk(dir string, idx model.Index) model.Index {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.logger.Debug("skipping directory", "path", dir, "error", err)
		return idx
	}
	if _, loop := w.ancestors[resolved]; loop {
		w.logger.Debug("skipping symlink loop", "path", dir)
		return idx
	}
	w.ancestors[resolved] = struct{}{}
	defer delete(w.ancestors, resolved)

	// ReadDir returns entries sorted by filename.
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Debug("skipping directory", "path", dir, "error", err)
		return idx
	}

	for _, de := range entries {
		path := filepath.Join(dir, de.Name())

		// Stat follows links; a dangling link is skipped.
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Debug("skipping entry", "path", path, "error", err)
			continue
		}

		if info.IsDir() {
			idx = w.walk(path, idx)
			continue
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(de.Name(), ".desktop") {
			continue
		}

		entry, err := w.parse(path)
		if err != nil {
			w.logger.Debug("skipping desktop entry", "path", path, "error", err)
			continue
		}
		entry.ID = desktopID(w.root, path)
		if entry.Path == "" {
			entry.Path = path
		}
		if err := entry.Validate(); err != nil {
			w.logger.Debug("skipping desktop entry", "path", path, "error", err)
			continue
		}
		idx = append(idx, entry)
	}
	return idx
}
