package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrThemeNotFound is returned when a theme exists neither in the user
// themes directory nor among the bundled themes.
var ErrThemeNotFound = errors.New("theme not found")

// importRegex matches @import "file.css"; @import 'file.css'; and @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a resolved stylesheet with imports inlined.
type Theme struct {
	Name    string
	Path    string // empty for bundled themes
	CSS     string
	Bundled bool
}

// ThemesDir returns the user themes directory, ~/.config/wayshell/themes.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "wayshell", "themes"), nil
}

// Resolve finds a theme by name. A file named <name>.css in dir wins over a
// bundled theme of the same name. An empty name resolves the default theme.
func Resolve(dir, name string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid theme name %q", name)
	}

	if dir != "" {
		p := filepath.Join(dir, name+".css")
		if _, err := os.Stat(p); err == nil {
			return NewTheme(name, p)
		}
	}

	if css, ok := Embedded(name); ok {
		return &Theme{Name: name, CSS: ProcessImports(css, "", nil), Bundled: true}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// NewTheme loads a theme from a CSS file on disk.
func NewTheme(name, path string) (*Theme, error) {
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme %s: %w", name, err)
	}
	return &Theme{
		Name: name,
		Path: path,
		CSS:  ProcessImports(string(css), filepath.Dir(path), nil),
	}, nil
}

// Reload re-reads a file-backed theme and reports whether the resolved CSS
// changed. Imported files are re-read as well.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled || t.Path == "" {
		return false, nil
	}

	fresh, err := NewTheme(t.Name, t.Path)
	if err != nil {
		return false, err
	}
	if fresh.CSS == t.CSS {
		return false, nil
	}
	t.CSS = fresh.CSS
	return true, nil
}

// ProcessImports inlines @import statements, resolving relative paths
// against baseDir. Imports that are missing on disk fall back to bundled
// partials and themes. seen guards against import cycles and may be nil.
func ProcessImports(css, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(stmt string) string {
		m := importRegex.FindStringSubmatch(stmt)
		if len(m) < 2 {
			return stmt
		}
		ref := m[1]

		full := ref
		if !filepath.IsAbs(ref) {
			full = filepath.Join(baseDir, ref)
		}
		if seen[full] {
			return "/* circular import skipped: " + ref + " */"
		}
		seen[full] = true

		data, err := os.ReadFile(full)
		if err == nil {
			return "/* imported: " + ref + " */\n" + ProcessImports(string(data), filepath.Dir(full), seen)
		}

		if css, ok := embeddedImport(ref); ok {
			return "/* imported (embedded): " + ref + " */\n" + css
		}
		return "/* import failed: " + ref + ": " + err.Error() + " */"
	})
}

func embeddedImport(ref string) (string, bool) {
	base := filepath.Base(ref)
	if strings.HasPrefix(base, "_") {
		if css, ok := EmbeddedPartial(base); ok {
			return css, true
		}
	}
	return Embedded(strings.TrimSuffix(base, ".css"))
}

// List returns bundled theme names followed by user themes from dir that
// do not shadow a bundled name.
func List(dir string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, n := range ListEmbedded() {
		seen[n] = true
		names = append(names, n)
	}

	if dir == "" {
		return names
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return names
	}
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, "_") || filepath.Ext(n) != ".css" {
			continue
		}
		n = strings.TrimSuffix(n, ".css")
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// ColorSchemeClass returns the CSS class ("light" or "dark") for a
// configured color scheme. "system" defers to systemDark.
func ColorSchemeClass(scheme string, systemDark bool) string {
	switch scheme {
	case "dark":
		return "dark"
	case "light":
		return "light"
	}
	if systemDark {
		return "dark"
	}
	return "light"
}
