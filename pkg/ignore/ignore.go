// Package ignore implements the small set of pass-through classifiers the
// compound corrector and segmenter consult: integers, acronyms, and a
// caller-supplied ignore-token regex. spec.md §1 lists these as external
// collaborators the core never implements directly.
package ignore

import (
	"regexp"
	"unicode"
)

// IsInteger reports whether s is a non-empty run of decimal digits.
func IsInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsAcronym reports whether s is at least two characters long and is either
// entirely upper-case letters or contains at least one digit, per spec.md
// §4.3's "acronym (length >= 2, all-uppercase or containing a digit)" rule.
func IsAcronym(s string) bool {
	runes := []rune(s)
	if len(runes) < 2 {
		return false
	}
	hasDigit, hasLower := false, false
	for _, r := range runes {
		if unicode.IsDigit(r) {
			hasDigit = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	return hasDigit || !hasLower
}

// CompileTokenRegex compiles the caller-supplied ignore-token pattern. An
// empty pattern compiles to nil, meaning "no ignore regex configured".
func CompileTokenRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}

// MatchesFully reports whether re matches the entirety of s (not just a
// substring), the semantics spec.md §4.2 step 1 requires.
func MatchesFully(re *regexp.Regexp, s string) bool {
	if re == nil {
		return false
	}
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

// CorpusTokenPattern is the tokenizer regex create_dictionary uses to split a
// plain-text corpus into unigram candidates: Unicode letters only, per
// spec.md §6.
const CorpusTokenPattern = `[^\W\d_]+`

var corpusTokenRegex = regexp.MustCompile(CorpusTokenPattern)

// Tokenize splits s into the letters-only tokens create_dictionary counts.
func Tokenize(s string) []string {
	return corpusTokenRegex.FindAllString(s, -1)
}
