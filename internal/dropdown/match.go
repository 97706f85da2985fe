// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dropdown

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// MATCHING
// =============================================================================

// MatchMode selects the built-in matcher used when the filter hook leaves
// matching to the dropdown.
type MatchMode int

const (
	// MatchSubstring is a case-insensitive substring match.
	MatchSubstring MatchMode = iota
	// MatchFuzzy matches when the query's characters appear in order.
	MatchFuzzy
)

// String returns the config spelling of the mode.
func (m MatchMode) String() string {
	if m == MatchFuzzy {
		return "fuzzy"
	}
	return "substring"
}

// ParseMatchMode parses "substring" or "fuzzy". Unknown values fall back to
// substring.
func ParseMatchMode(raw string) MatchMode {
	if strings.EqualFold(strings.TrimSpace(raw), "fuzzy") {
		return MatchFuzzy
	}
	return MatchSubstring
}

// fold normalizes s for caseless comparison.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Matches reports whether label matches query under mode. An empty query
// matches everything.
func (m MatchMode) Matches(query, label string) bool {
	if query == "" {
		return true
	}
	if m == MatchFuzzy {
		_, ok := FuzzyMatch(query, label)
		return ok
	}
	return strings.Contains(fold(label), fold(query))
}

// FuzzyMatch performs fuzzy matching between a query and a label.
// Returns a score (higher is better) and whether the match succeeded.
//
// Each query character must appear in order in the label. Consecutive
// matches, matches at the start and matches at word boundaries score higher.
func FuzzyMatch(query, label string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	queryRunes := []rune(fold(query))
	labelRunes := []rune(fold(label))
	if len(queryRunes) > len(labelRunes) {
		return 0, false
	}

	queryPos := 0
	lastMatchPos := -1
	for pos := 0; pos < len(labelRunes) && queryPos < len(queryRunes); pos++ {
		if labelRunes[pos] != queryRunes[queryPos] {
			continue
		}
		matchScore := 1
		if lastMatchPos == pos-1 {
			matchScore += 5
		}
		if pos == 0 {
			matchScore += 10
		}
		if isWordBoundary(labelRunes, pos) {
			matchScore += 7
		}
		score += matchScore
		lastMatchPos = pos
		queryPos++
	}

	matched = queryPos == len(queryRunes)
	if matched {
		// Shorter labels are better matches
		score -= len(labelRunes) / 4
	}
	return score, matched
}

// MatchPositions returns the rune offsets in label that a query matches, for
// highlighting. Substring mode marks the first occurrence.
func (m MatchMode) MatchPositions(query, label string) []int {
	if query == "" {
		return nil
	}
	labelRunes := []rune(fold(label))
	queryRunes := []rune(fold(query))

	if m == MatchSubstring {
		idx := strings.Index(string(labelRunes), string(queryRunes))
		if idx < 0 {
			return nil
		}
		start := len([]rune(string(labelRunes)[:idx]))
		positions := make([]int, len(queryRunes))
		for i := range positions {
			positions[i] = start + i
		}
		return positions
	}

	var positions []int
	queryPos := 0
	for pos := 0; pos < len(labelRunes) && queryPos < len(queryRunes); pos++ {
		if labelRunes[pos] == queryRunes[queryPos] {
			positions = append(positions, pos)
			queryPos++
		}
	}
	if queryPos < len(queryRunes) {
		return nil
	}
	return positions
}

// isWordBoundary reports whether pos starts a word: the first rune, a rune
// after a separator, or a lower-to-upper case change.
func isWordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}
	if pos >= len(runes) {
		return false
	}
	prev := runes[pos-1]
	if prev == ' ' || prev == '/' || prev == '-' || prev == '_' {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(runes[pos])
}
