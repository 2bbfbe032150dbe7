// Package launcher turns desktop entry Exec templates into commands and runs them.
package launcher

import (
	"strings"

	"github.com/jmylchreest/wayshell/internal/model"
)

// ExpandFieldCodes removes desktop entry field codes from an Exec template.
// "%%" becomes a literal "%". Every other "%<c>", including the file/URL codes
// f F u U and the icon/name/location codes i c k, expands to nothing, because
// the launcher never passes arguments. A "%" at the end of the template or
// before a newline is not a field code and is kept.
func ExpandFieldCodes(template string) string {
	if !strings.Contains(template, "%") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '%' {
			b.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) || runes[i+1] == '\n' {
			b.WriteRune(r)
			continue
		}
		i++
		if runes[i] == '%' {
			b.WriteRune('%')
		}
	}
	return b.String()
}

// Command returns the expanded command line for an entry.
// The second result is false when the entry has no Exec template.
func Command(entry model.ApplicationEntry) (string, bool) {
	if !entry.HasExec() {
		return "", false
	}
	return ExpandFieldCodes(entry.Exec), true
}
