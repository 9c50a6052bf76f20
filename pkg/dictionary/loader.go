package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadOptions controls how a dictionary line stream is parsed, per spec.md
// §6's "Unigram dictionary file" / "Bigram dictionary file" external
// interfaces.
type LoadOptions struct {
	// TermIndex is the zero-based column holding the term (unigram) or the
	// first bigram token (bigram, when Separator is the default whitespace
	// run).
	TermIndex int
	// CountIndex is the zero-based column holding the frequency count.
	CountIndex int
	// Separator splits each line into columns. An empty Separator means
	// "any whitespace run".
	Separator string
}

// LoadStats reports how a bulk load went, per spec.md §4.1's "bulk build
// from a line stream" operation.
type LoadStats struct {
	Accepted int
	Rejected int
}

// Any reports spec.md's "any entry accepted" indicator.
func (s LoadStats) Any() bool { return s.Accepted > 0 }

var whitespaceRun = regexp.MustCompile(`\s+`)

func splitFields(line, sep string) []string {
	if sep == "" {
		return whitespaceRun.Split(strings.TrimSpace(line), -1)
	}
	return strings.Split(line, sep)
}

// LoadUnigrams streams unigram entries from r into u, returning load stats.
// A line is accepted iff the term is non-empty, the count column exists and
// parses as a non-negative 64-bit integer, and the required columns exist;
// unparseable lines are skipped, counted as rejected, and logged at warning
// level, matching spec.md §6.
func LoadUnigrams(r io.Reader, u *Unigram, opts LoadOptions) (LoadStats, error) {
	if opts.TermIndex == opts.CountIndex {
		return LoadStats{}, fmt.Errorf("dictionary: term_index must differ from count_index")
	}

	var stats LoadStats
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, opts.Separator)
		term, count, ok := parseTermCount(fields, opts.TermIndex, opts.CountIndex)
		if !ok {
			stats.Rejected++
			log.Warnf("dictionary: skipping unparseable unigram line %d: %q", lineNo, line)
			continue
		}
		u.Add(term, count)
		stats.Accepted++
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// LoadBigrams streams bigram entries from r into b. When Separator is the
// default whitespace run, TermIndex identifies the first of two adjacent
// whitespace-separated tokens that together form the bigram key; with a
// custom Separator, the single TermIndex-th field is the entire bigram key,
// per spec.md §6.
func LoadBigrams(r io.Reader, b *Bigram, opts LoadOptions) (LoadStats, error) {
	if opts.TermIndex == opts.CountIndex {
		return LoadStats{}, fmt.Errorf("dictionary: term_index must differ from count_index")
	}

	var stats LoadStats
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, opts.Separator)

		w1, w2, count, ok := parseBigramFields(fields, opts)
		if !ok {
			stats.Rejected++
			log.Warnf("dictionary: skipping unparseable bigram line %d: %q", lineNo, line)
			continue
		}
		b.Add(w1, w2, count)
		stats.Accepted++
	}
	if err := scanner.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

func parseBigramFields(fields []string, opts LoadOptions) (w1, w2 string, count int64, ok bool) {
	if opts.Separator == "" {
		if opts.TermIndex < 0 || opts.TermIndex+1 >= len(fields) || opts.CountIndex < 0 || opts.CountIndex >= len(fields) {
			return "", "", 0, false
		}
		w1, w2 = fields[opts.TermIndex], fields[opts.TermIndex+1]
		if w1 == "" || w2 == "" {
			return "", "", 0, false
		}
		count, ok = parseNonNegativeInt(fields[opts.CountIndex])
		return w1, w2, count, ok
	}

	key, c, ok := parseTermCount(fields, opts.TermIndex, opts.CountIndex)
	if !ok {
		return "", "", 0, false
	}
	parts := strings.SplitN(key, " ", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", 0, false
	}
	return parts[0], parts[1], c, true
}

func parseTermCount(fields []string, termIdx, countIdx int) (string, int64, bool) {
	if termIdx < 0 || countIdx < 0 || termIdx >= len(fields) || countIdx >= len(fields) {
		return "", 0, false
	}
	term := fields[termIdx]
	if term == "" {
		return "", 0, false
	}
	count, ok := parseNonNegativeInt(fields[countIdx])
	if !ok {
		return "", 0, false
	}
	return term, count, true
}

func parseNonNegativeInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
