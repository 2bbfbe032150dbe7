package theme

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

//go:embed themes/*.css
var embedded embed.FS

// DefaultThemeName is the theme used when none is configured or the
// configured one cannot be found.
const DefaultThemeName = "default"

// BundledThemes lists the embedded theme names.
var BundledThemes = []string{"default", "minimal"}

// Embedded returns the raw CSS of a bundled theme. Imports are not resolved.
func Embedded(name string) (string, bool) {
	if name == "" || strings.HasPrefix(name, "_") {
		return "", false
	}
	return readEmbedded(name + ".css")
}

// EmbeddedPartial returns a bundled partial. The leading underscore and the
// .css extension are optional.
func EmbeddedPartial(name string) (string, bool) {
	name = strings.TrimSuffix(path.Base(name), ".css")
	if !strings.HasPrefix(name, "_") {
		name = "_" + name
	}
	return readEmbedded(name + ".css")
}

func readEmbedded(file string) (string, bool) {
	data, err := embedded.ReadFile("themes/" + file)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbedded returns the names of all bundled themes, partials excluded.
func ListEmbedded() []string {
	entries, err := fs.ReadDir(embedded, "themes")
	if err != nil {
		return BundledThemes
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || path.Ext(name) != ".css" {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".css"))
	}
	return names
}
