// Package output renders application listings and ranking results for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/wayshell/internal/model"
)

// App is an index entry plus the modification time of its desktop file.
type App struct {
	model.ApplicationEntry `yaml:",inline"`
	Modified               time.Time `json:"modified,omitempty" yaml:"modified,omitempty"`
}

// NewApps stats each entry's source file. Entries whose file cannot be
// stat'ed keep a zero Modified time.
func NewApps(idx model.Index) []App {
	apps := make([]App, len(idx))
	for i, e := range idx {
		apps[i] = App{ApplicationEntry: e}
		if info, err := os.Stat(e.Path); err == nil {
			apps[i].Modified = info.ModTime()
		}
	}
	return apps
}

// Formatter renders CLI listings.
type Formatter interface {
	// Apps writes an application listing.
	Apps(w io.Writer, apps []App) error
	// Ranked writes the ranked candidates for query, best first.
	Ranked(w io.Writer, query string, ranked []model.RankedCandidate) error
}

// FormatType names an output format.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatTable FormatType = "table"
)

// ValidFormats returns the accepted --output values.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatTable}
}

// ParseFormat parses an --output value. Empty means plain.
func ParseFormat(s string) (FormatType, error) {
	if s == "" {
		return FormatPlain, nil
	}
	for _, f := range ValidFormats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q, must be one of: %v", s, ValidFormats())
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template  string // Per-item template for plain output
	ShowIndex bool   // 1-based index prefix in plain output
	ShowPath  bool   // Source path in plain and table output
}

// NewFormatter creates a formatter for format.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return NewTableFormatter(opts)
	default:
		return NewPlainFormatter(opts)
	}
}

// age renders a modification time relative to now.
func age(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return humanize.Time(t)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"truncate": func(s string, maxLen int) string {
			r := []rune(s)
			if maxLen <= 0 || len(r) <= maxLen {
				return s
			}
			if maxLen <= 3 {
				return string(r[:maxLen])
			}
			return string(r[:maxLen-3]) + "..."
		},
		"age":   age,
		"score": func(f float64) string { return fmt.Sprintf("%.3f", f) },
	}
}
