// Package fuzzy scores and ranks candidates against a query using a
// case-sensitive subsequence match.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
)

const (
	startBonus    = 8
	boundaryBonus = 2

	// exactBonus outweighs every other bonus a query can collect, so a
	// candidate equal to the query always ranks first.
	exactBonus = 1 << 30
)

// Score is the result of matching one candidate. The zero value is "no match".
type Score struct {
	matched bool
	points  int
	length  int // candidate length in runes; zero for the empty query
}

// Matched reports whether the query was found in the candidate.
func (s Score) Matched() bool { return s.matched }

// Points returns the relevance of a match. Meaningless when !Matched().
func (s Score) Points() int { return s.points }

// Compare orders scores best-first: it returns a negative number when a
// ranks above b. Any match ranks above no match; more points rank higher;
// on equal points the shorter candidate wins.
func Compare(a, b Score) int {
	if a.matched != b.matched {
		if a.matched {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.points, a.points); c != 0 {
		return c
	}
	return cmp.Compare(a.length, b.length)
}

// Match checks whether every rune of query appears in candidate in order.
//
// Scoring rewards:
//   - consecutive runs of matched runes
//   - a match starting at the first rune
//   - matches at word boundaries (after space, /, -, _, .)
//   - an exact full-string match, above everything else
func Match(candidate, query string) Score {
	if query == "" {
		return Score{matched: true}
	}

	c := []rune(candidate)
	q := []rune(query)
	if len(q) > len(c) {
		return Score{}
	}

	best := -1
	for start := range c {
		if c[start] != q[0] {
			continue
		}
		if pts, ok := align(c, q, start); ok && pts > best {
			best = pts
		}
	}
	if best < 0 {
		return Score{}
	}
	if candidate == query {
		best += exactBonus
	}
	return Score{matched: true, points: best, length: len(c)}
}

// align greedily matches q against c beginning at c[start] and scores the
// resulting alignment.
func align(c, q []rune, start int) (int, bool) {
	qi := 0
	score := 0
	consecutive := 0

	for ci := start; ci < len(c) && qi < len(q); ci++ {
		if c[ci] != q[qi] {
			consecutive = 0
			continue
		}
		qi++
		consecutive++
		score += consecutive

		if ci == 0 {
			score += startBonus
		} else if isBoundary(c[ci-1]) {
			score += boundaryBonus
		}
	}
	return score, qi == len(q)
}

func isBoundary(r rune) bool {
	return strings.ContainsRune(" /-_.", r)
}

// Result is one matched candidate.
type Result struct {
	Index int // position in the input slice
	Value string
	Score Score
}

// Less reports whether a ranks strictly above b. Ties on score are broken
// by candidate value, then by input position, which keeps the order stable
// across repeated identical queries.
func Less(a, b Result) bool {
	return compareResults(a, b) < 0
}

func compareResults(a, b Result) int {
	if c := Compare(a.Score, b.Score); c != 0 {
		return c
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Index, b.Index)
}

// Rank matches query against every candidate, drops the ones that do not
// match and returns the rest best-first.
func Rank(candidates []string, query string) []Result {
	out := make([]Result, 0, len(candidates))
	for i, c := range candidates {
		if s := Match(c, query); s.Matched() {
			out = append(out, Result{Index: i, Value: c, Score: s})
		}
	}
	slices.SortFunc(out, compareResults)
	return out
}
