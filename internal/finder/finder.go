// Package finder ranks branch names against a fuzzy query.
//
// Matching is a case-insensitive subsequence match: every rune of the query
// must appear in the candidate in order, not necessarily adjacent. Scores
// come from github.com/sahilm/fuzzy, which rewards adjacent runs and matches
// at word boundaries ("/", "-", "_", camelCase) and penalises unmatched
// leading characters.
package finder

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

// Match is a candidate that survived filtering.
type Match struct {
	Str            string // the candidate
	Index          int    // position in the haystack
	MatchedIndexes []int  // byte offsets in Str of the matched runes
	Score          int
}

// Find returns the candidates of haystack that match needle, best first.
//
// An empty needle is a trivial subsequence of every candidate: all of them
// match with score 0 and come back in haystack order.
func Find(needle string, haystack []string) []Match {
	if needle == "" {
		all := make([]Match, len(haystack))
		for i, s := range haystack {
			all[i] = Match{Str: s, Index: i}
		}
		return all
	}

	found := fuzzy.Find(needle, haystack)
	matches := make([]Match, len(found))
	for i, m := range found {
		matches[i] = Match{
			Str:            m.Str,
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	// Ties keep haystack order.
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})
	return matches
}

// Filter returns the matching candidate strings, best first.
func Filter(needle string, haystack []string) []string {
	matches := Find(needle, haystack)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
