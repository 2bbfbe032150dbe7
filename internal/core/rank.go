package core

import (
	"sort"

	"github.com/jmylchreest/wayshell/internal/model"
)

// MaxResults is the number of candidates shown by the launcher.
const MaxResults = 5

// RankFunc ranks an index against a query.
type RankFunc func(query string, idx model.Index) []model.RankedCandidate

// Rank scores every entry name against query, drops non-matches, and returns at
// most MaxResults candidates in descending score order. Equal scores keep index
// order. An empty query yields no candidates.
func Rank(query string, idx model.Index, scorer Scorer) []model.RankedCandidate {
	results := []model.RankedCandidate{}
	if query == "" {
		return results
	}
	if scorer == nil {
		scorer = TrigramScorer{}
	}

	for _, entry := range idx {
		score := scorer.Score(query, entry.Name)
		if score <= 0 {
			continue
		}
		results = append(results, model.RankedCandidate{Entry: entry, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

// Ranker binds a scorer into a RankFunc.
func Ranker(scorer Scorer) RankFunc {
	return func(query string, idx model.Index) []model.RankedCandidate {
		return Rank(query, idx, scorer)
	}
}
