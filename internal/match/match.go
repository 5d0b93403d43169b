// Package match scores how well a candidate name matches a query.
//
// Scoring is tiered rather than cumulative: the first tier that applies wins.
// All comparisons are case-insensitive.
package match

import "strings"

// Score tiers, from most to least specific.
const (
	TierNone        = 0
	TierSubsequence = 40
	TierSubstring   = 60
	TierPrefix      = 80
	TierExact       = 100
)

// Score returns one of TierExact, TierPrefix, TierSubstring, TierSubsequence
// or TierNone for candidate against query. An empty query scores TierNone.
func Score(candidate, query string) int {
	if query == "" {
		return TierNone
	}

	c := strings.ToLower(candidate)
	q := strings.ToLower(query)

	switch {
	case c == q:
		return TierExact
	case strings.HasPrefix(c, q):
		return TierPrefix
	case strings.Contains(c, q):
		return TierSubstring
	case isSubsequence(c, q):
		return TierSubsequence
	default:
		return TierNone
	}
}

// Matches reports whether candidate is a hit for query at any tier.
func Matches(candidate, query string) bool {
	return Score(candidate, query) > TierNone
}

// isSubsequence reports whether every rune of q appears in s in order.
// Both arguments are expected to be lower-cased already.
func isSubsequence(s, q string) bool {
	qr := []rune(q)
	i := 0
	for _, r := range s {
		if i == len(qr) {
			break
		}
		if r == qr[i] {
			i++
		}
	}
	return i == len(qr)
}
