package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jmylchreest/wayshell/internal/model"
)

// PlainFormatter writes one human-readable line per item.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a plain text formatter. An unparsable template
// is ignored in favor of the default layout.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}
	if opts.Template != "" {
		if tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template); err == nil {
			f.template = tmpl
		}
	}
	return f
}

// templateData is what a custom template sees for each item.
type templateData struct {
	Index int
	App   App
	Score float64
}

// Apps writes "name  (id)" lines.
func (f *PlainFormatter) Apps(w io.Writer, apps []App) error {
	for i, a := range apps {
		var line string
		if f.template != nil {
			var sb strings.Builder
			if err := f.template.Execute(&sb, templateData{Index: i + 1, App: a}); err != nil {
				return err
			}
			line = sb.String()
		} else {
			line = f.appLine(i+1, a)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) appLine(index int, a App) string {
	var sb strings.Builder
	if f.opts.ShowIndex {
		fmt.Fprintf(&sb, "[%d] ", index)
	}
	sb.WriteString(a.Name)
	fmt.Fprintf(&sb, "  (%s)", a.ID)
	if f.opts.ShowPath {
		fmt.Fprintf(&sb, "  %s, modified %s", a.Path, age(a.Modified))
	}
	return sb.String()
}

// Ranked writes "score  name" lines, best first.
func (f *PlainFormatter) Ranked(w io.Writer, query string, ranked []model.RankedCandidate) error {
	for i, c := range ranked {
		var line string
		if f.template != nil {
			var sb strings.Builder
			data := templateData{Index: i + 1, App: App{ApplicationEntry: c.Entry}, Score: c.Score}
			if err := f.template.Execute(&sb, data); err != nil {
				return err
			}
			line = sb.String()
		} else {
			line = fmt.Sprintf("%.3f  %s", c.Score, c.Entry.Name)
			if f.opts.ShowIndex {
				line = fmt.Sprintf("[%d] %s", i+1, line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
