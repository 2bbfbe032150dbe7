package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigrams(t *testing.T) {
	grams := trigrams("ab")
	assert.Equal(t, []trigram{
		{' ', ' ', 'a'},
		{' ', 'a', 'b'},
		{'a', 'b', ' '},
	}, grams)

	assert.Len(t, trigrams(""), 1)
	assert.Len(t, trigrams("héllo"), 6)
}

func TestTrigramScorer(t *testing.T) {
	s := TrigramScorer{}

	tests := []struct {
		name  string
		query string
		entry string
		want  float64
	}{
		{"identical", "firefox", "firefox", 1.0},
		{"prefix", "fire", "firefox", 4.0 / 8.0},
		{"shared start", "fire", "files", 2.0 / 6.0},
		{"disjoint", "fire", "terminal", 0},
		{"mixed case", "FIRE", "Firefox", 4.0 / 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.query, tt.entry), 1e-9)
		})
	}
}

func TestSubsequenceScorer(t *testing.T) {
	s := SubsequenceScorer{}

	assert.Zero(t, s.Score("", "Firefox"))
	assert.Zero(t, s.Score("xyz", "Firefox"))
	assert.Zero(t, s.Score("xof", "Firefox"))

	score := s.Score("ffx", "Firefox")
	assert.Greater(t, score, 0.0)
	assert.Less(t, score, 1.0)

	assert.Greater(t, s.Score("firefox", "Firefox"), s.Score("ff", "Firefox"))
}

func TestScorerByName(t *testing.T) {
	sc, err := ScorerByName("")
	require.NoError(t, err)
	assert.IsType(t, TrigramScorer{}, sc)

	sc, err = ScorerByName("Subsequence")
	require.NoError(t, err)
	assert.IsType(t, SubsequenceScorer{}, sc)

	_, err = ScorerByName("levenshtein")
	assert.Error(t, err)
}

func TestScorerFunc(t *testing.T) {
	f := ScorerFunc(func(q, n string) float64 { return 0.25 })
	assert.Equal(t, 0.25, f.Score("a", "b"))
}
