package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/wayshell/internal/model"
)

// rankedDoc is the structured shape of a ranking result.
type rankedDoc struct {
	Query   string                  `json:"query" yaml:"query"`
	Results []model.RankedCandidate `json:"results" yaml:"results"`
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Apps(w io.Writer, apps []App) error {
	return encodeJSON(w, nonNil(apps))
}

func (f *JSONFormatter) Ranked(w io.Writer, query string, ranked []model.RankedCandidate) error {
	return encodeJSON(w, rankedDoc{Query: query, Results: nonNil(ranked)})
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAMLFormatter writes YAML documents.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Apps(w io.Writer, apps []App) error {
	return encodeYAML(w, nonNil(apps))
}

func (f *YAMLFormatter) Ranked(w io.Writer, query string, ranked []model.RankedCandidate) error {
	return encodeYAML(w, rankedDoc{Query: query, Results: nonNil(ranked)})
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// nonNil keeps empty results rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
