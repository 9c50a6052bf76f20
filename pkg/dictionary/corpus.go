package dictionary

import (
	"bufio"
	"io"
	"strings"

	"github.com/symserve/symserve/pkg/ignore"
)

// BuildFromCorpus implements create_dictionary (spec.md §6): it reads lines
// from r, lowercases and tokenizes with the Unicode-letters-only pattern
// (matching the original's parse_words(preserve_case=False) default), and
// increments each token's count by 1. It returns the number of tokens
// ingested. Acronym detection and an ignore-token regex are not applied
// here, per spec.md.
func BuildFromCorpus(r io.Reader, u *Unigram) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		for _, token := range ignore.Tokenize(strings.ToLower(scanner.Text())) {
			u.Add(token, 1)
			n++
		}
	}
	return n, scanner.Err()
}
