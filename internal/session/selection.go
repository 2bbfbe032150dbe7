package session

import (
	"github.com/jmylchreest/wayshell/internal/core"
	"github.com/jmylchreest/wayshell/internal/model"
)

// Selection tracks the launcher query, its ranked results and the highlighted row.
// The zero value is the initial empty state.
type Selection struct {
	query    string
	results  []model.RankedCandidate
	selected int
}

// Input replaces the query and recomputes results against idx.
func (s *Selection) Input(text string, idx model.Index, rank core.RankFunc) {
	s.query = text
	s.SetResults(rank(text, idx))
}

// SetResults replaces the results and clamps the selected row into range.
func (s *Selection) SetResults(results []model.RankedCandidate) {
	s.results = results
	s.selected = clamp(s.selected, 0, len(results)-1)
}

// Move shifts the selected row by dir, staying within the results.
func (s *Selection) Move(dir Direction) {
	if len(s.results) == 0 {
		return
	}
	s.selected = clamp(s.selected+int(dir), 0, len(s.results)-1)
}

// Current returns the selected entry. ok is false when there are no results.
func (s *Selection) Current() (model.ApplicationEntry, bool) {
	if len(s.results) == 0 {
		return model.ApplicationEntry{}, false
	}
	return s.results[s.selected].Entry, true
}

// Reset returns the selection to its initial state.
func (s *Selection) Reset() {
	*s = Selection{}
}

// Query returns the current query text.
func (s *Selection) Query() string { return s.query }

// Results returns the current ranked results.
func (s *Selection) Results() []model.RankedCandidate { return s.results }

// Selected returns the highlighted row index.
func (s *Selection) Selected() int { return s.selected }

// View returns the render state of the selection.
func (s *Selection) View() OverlayView {
	items := make([]ViewItem, len(s.results))
	for i, r := range s.results {
		items[i] = ViewItem{
			Name:    r.Entry.Name,
			Comment: r.Entry.Comment,
			Icon:    r.Entry.Icon,
			Score:   r.Score,
		}
	}
	return OverlayView{Query: s.query, Items: items, Selected: s.selected}
}

// clamp bounds v to [lo, hi]. When hi < lo the result is lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
