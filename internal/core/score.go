// Package core provides application ranking.
package core

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Scorer computes the similarity between a query and an application name.
// Implementations must return a value in [0, 1] and be deterministic.
type Scorer interface {
	Score(query, name string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(query, name string) float64

// Score calls f(query, name).
func (f ScorerFunc) Score(query, name string) float64 {
	return f(query, name)
}

// Matcher names accepted by ScorerByName.
const (
	MatcherTrigram     = "trigram"
	MatcherSubsequence = "subsequence"
)

// ValidMatchers returns all valid matcher names.
func ValidMatchers() []string {
	return []string{MatcherTrigram, MatcherSubsequence}
}

// ScorerByName returns the scorer registered under name.
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", MatcherTrigram:
		return TrigramScorer{}, nil
	case MatcherSubsequence:
		return SubsequenceScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown matcher %q (valid: %s)", name, strings.Join(ValidMatchers(), ", "))
	}
}

// TrigramScorer scores by shared padded character trigrams.
// The score is the fraction of the name's trigrams that also occur in the query.
type TrigramScorer struct{}

type trigram [3]rune

// Score implements Scorer.
func (TrigramScorer) Score(query, name string) float64 {
	name = strings.ToLower(name)
	query = strings.ToLower(query)

	queryGrams := make(map[trigram]struct{})
	for _, g := range trigrams(query) {
		queryGrams[g] = struct{}{}
	}

	var hits float64
	for _, g := range trigrams(name) {
		if _, ok := queryGrams[g]; ok {
			hits++
		}
	}

	score := hits / float64(utf8.RuneCountInString(name)+1)
	if score <= 0 || score > 1 {
		return 0
	}
	return score
}

// trigrams returns the n+1 trigrams of s, with s padded by two leading
// spaces and one trailing space.
func trigrams(s string) []trigram {
	runes := []rune(s)
	n := len(runes)
	out := make([]trigram, 0, n+1)

	at := func(i int) rune {
		if i < 0 || i >= n {
			return ' '
		}
		return runes[i]
	}
	for i := 0; i <= n; i++ {
		out = append(out, trigram{at(i - 2), at(i - 1), at(i)})
	}
	return out
}

// SubsequenceScorer matches when every query character appears in the name in order.
type SubsequenceScorer struct{}

// Score implements Scorer. The result blends query coverage of the name with
// the fuzzy match quality and always lies in (0, 1) for a match.
func (SubsequenceScorer) Score(query, name string) float64 {
	if query == "" || name == "" {
		return 0
	}

	matches := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(name)})
	if len(matches) == 0 {
		return 0
	}

	coverage := float64(utf8.RuneCountInString(query)) / float64(utf8.RuneCountInString(name))
	if coverage > 1 {
		coverage = 1
	}
	quality := 1 / (1 + math.Exp(-float64(matches[0].Score)/8))
	return 0.5*coverage + 0.5*quality
}
