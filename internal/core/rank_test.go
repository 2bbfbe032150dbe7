package core

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/wayshell/internal/model"
)

func entries(names ...string) model.Index {
	idx := make(model.Index, len(names))
	for i, n := range names {
		idx[i] = model.ApplicationEntry{Name: n, Exec: n, Path: fmt.Sprintf("/apps/%d.desktop", i)}
	}
	return idx
}

func TestRank_EmptyQuery(t *testing.T) {
	assert.Empty(t, Rank("", entries("Firefox", "Files"), TrigramScorer{}))
	assert.Empty(t, Rank("", nil, TrigramScorer{}))
}

func TestRank_FirefoxFirst(t *testing.T) {
	idx := entries("Files", "Terminal", "Firefox")

	results := Rank("fire", idx, TrigramScorer{})

	require.NotEmpty(t, results)
	assert.Equal(t, "Firefox", results[0].Entry.Name)
	for _, r := range results {
		assert.NotEqual(t, "Terminal", r.Entry.Name)
	}
}

func TestRank_CaseInsensitive(t *testing.T) {
	idx := entries("FIREFOX")
	lower := Rank("firefox", idx, TrigramScorer{})
	upper := Rank("FireFox", idx, TrigramScorer{})

	require.Len(t, lower, 1)
	require.Len(t, upper, 1)
	assert.Equal(t, lower[0].Score, upper[0].Score)
	assert.InDelta(t, 1.0, lower[0].Score, 1e-9)
}

func TestRank_TiesKeepIndexOrder(t *testing.T) {
	idx := entries("Firefox", "Firefox", "Firefox")
	for i := range idx {
		idx[i].Exec = fmt.Sprintf("firefox-%d", i)
	}

	results := Rank("firefox", idx, TrigramScorer{})

	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("firefox-%d", i), r.Entry.Exec)
	}
}

func TestRank_CapsResults(t *testing.T) {
	idx := entries("Term", "Terminal", "Terminator", "Termite", "Terminology", "Terminus", "Term Two")

	results := Rank("term", idx, TrigramScorer{})

	assert.Len(t, results, MaxResults)
}

func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefgh ")
	randString := func(maxLen int) string {
		n := rng.Intn(maxLen) + 1
		r := make([]rune, n)
		for i := range r {
			r[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return string(r)
	}

	for _, scorer := range []Scorer{TrigramScorer{}, SubsequenceScorer{}} {
		for iter := 0; iter < 200; iter++ {
			names := make([]string, rng.Intn(20))
			for i := range names {
				names[i] = randString(10)
			}
			query := randString(5)

			results := Rank(query, entries(names...), scorer)

			assert.LessOrEqual(t, len(results), MaxResults)
			for i, r := range results {
				assert.Greater(t, r.Score, 0.0)
				assert.LessOrEqual(t, r.Score, 1.0)
				if i > 0 {
					assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
				}
			}
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	idx := entries("Firefox", "Files", "Fire Alarm", "Terminal")
	assert.Equal(t, Rank("fi", idx, TrigramScorer{}), Rank("fi", idx, TrigramScorer{}))
}

func TestRanker(t *testing.T) {
	rank := Ranker(nil)
	results := rank("fire", entries("Firefox"))
	require.Len(t, results, 1)
	assert.Equal(t, "Firefox", results[0].Entry.Name)
}
