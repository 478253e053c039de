package usecase

import (
	"regexp"
	"sort"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// extractionSentinels are the "not available" placeholders vision models emit
// for fields they cannot read. They must be treated identically to absence:
// left as-is they get fuzzy-matched against real catalog text and produce
// spurious low scores instead of a clean zero.
var extractionSentinels = map[string]bool{
	"n/a":           true,
	"n.a.":          true,
	"na":            true,
	"none":          true,
	"null":          true,
	"nil":           true,
	"unknown":       true,
	"unavailable":   true,
	"not available": true,
	"not visible":   true,
	"-":             true,
	"--":            true,
}

// sanitizeExtractedField normalizes one untrusted extraction field: trims,
// collapses whitespace, and maps sentinel placeholders to the empty string.
// Runs before the scorer's length guard.
func sanitizeExtractedField(s string) string {
	s = strings.TrimSpace(s)
	s = multipleSpacesRegex.ReplaceAllString(s, " ")
	if extractionSentinels[strings.ToLower(s)] {
		return ""
	}
	return s
}

// tokenSet splits a string into the sorted set of its normalized tokens:
// lowercased, punctuation stripped, whitespace-delimited, deduplicated.
func tokenSet(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	words := strings.Fields(cleaned)

	seen := make(map[string]bool, len(words))
	var tokens []string
	for _, word := range words {
		if !seen[word] {
			seen[word] = true
			tokens = append(tokens, word)
		}
	}

	sort.Strings(tokens)
	return tokens
}

// compactForm normalizes a string and strips all whitespace, so spacing and
// formatting differences ("Dolo650" vs "Dolo 650") compare as equal text.
func compactForm(s string) string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	return strings.Join(strings.Fields(cleaned), "")
}
