package output

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/jmylchreest/wayshell/internal/model"
)

// TableFormatter writes aligned columns with a header row.
type TableFormatter struct {
	opts FormatterOptions
}

// NewTableFormatter creates a table formatter.
func NewTableFormatter(opts FormatterOptions) *TableFormatter {
	return &TableFormatter{opts: opts}
}

func (f *TableFormatter) Apps(w io.Writer, apps []App) error {
	headers := []any{"ID", "NAME", "EXEC", "MODIFIED"}
	if f.opts.ShowPath {
		headers = append(headers, "PATH")
	}

	tbl := table.New(headers...).WithWriter(w)
	for _, a := range apps {
		row := []any{a.ID, a.Name, a.Exec, age(a.Modified)}
		if f.opts.ShowPath {
			row = append(row, a.Path)
		}
		tbl.AddRow(row...)
	}
	tbl.Print()
	return nil
}

func (f *TableFormatter) Ranked(w io.Writer, query string, ranked []model.RankedCandidate) error {
	tbl := table.New("#", "SCORE", "NAME", "ID").WithWriter(w)
	for i, c := range ranked {
		tbl.AddRow(i+1, fmt.Sprintf("%.3f", c.Score), c.Entry.Name, c.Entry.ID)
	}
	tbl.Print()
	return nil
}
