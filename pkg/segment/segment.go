// Package segment implements word segmentation (spec.md §4.4): given a run
// of text with missing or wrong word boundaries, it finds the split into
// dictionary words that minimizes total edit distance, breaking ties by
// total log-probability. The search is a single left-to-right DP over
// candidate split lengths, kept in a ring buffer of max_segmentation_word_length
// entries rather than one slot per input character, bounding memory to the
// window size instead of the whole phrase length.
package segment

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

// corpusSize is the same empirical unigram corpus constant pkg/compound
// uses for its bigram scoring (spec.md §4.4: N = 1024908267229).
const corpusSize = 1024908267229.0

// Composition is the segmenter's result (spec.md §3): the raw split,
// the corrected split, the summed edit distance, and the summed
// log-probability used to rank competing splits.
type Composition struct {
	SegmentedString string
	CorrectedString string
	DistanceSum     int
	LogProbSum      float64
}

// Engine segments text using an underlying single-term lookup.Engine.
type Engine struct {
	lookup               *lookup.Engine
	defaultMaxWordLength int
}

// New builds a segmentation Engine. defaultMaxWordLength is used whenever a
// caller passes max_segmentation_word_length <= 0, per spec.md §4.4's
// "defaults to prefix_length when omitted".
func New(l *lookup.Engine, defaultMaxWordLength int) *Engine {
	return &Engine{lookup: l, defaultMaxWordLength: defaultMaxWordLength}
}

var ligatures = map[rune]string{
	'ﬁ': "fi", 'ﬂ': "fl", 'ﬀ': "ff", 'ﬃ': "ffi", 'ﬄ': "ffl", 'ﬆ': "st",
	'Æ': "AE", 'æ': "ae", 'Œ': "OE", 'œ': "oe",
}

func normalizeLigatures(s string) string {
	var b strings.Builder
	for _, r := range s {
		if rep, ok := ligatures[r]; ok {
			b.WriteString(rep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func appendSeg(prev, next string) string {
	if next == "" {
		return prev
	}
	if prev == "" {
		return next
	}
	return prev + " " + next
}

// Segment implements spec.md §4.4's DP in full, returning the empty
// Composition for an empty phrase.
func (e *Engine) Segment(phrase string, maxEditDistance, maxSegmentationWordLength int, ignoreTokenRegex *regexp.Regexp) Composition {
	runes := []rune(phrase)
	n := len(runes)
	if n == 0 {
		return Composition{}
	}

	k := maxSegmentationWordLength
	if k <= 0 {
		k = e.defaultMaxWordLength
	}
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	buf := make([]Composition, k)
	filled := make([]bool, k)

	get := func(pos int) Composition {
		if pos < 0 {
			return Composition{}
		}
		return buf[pos%k]
	}
	set := func(pos int, c Composition) {
		buf[pos%k] = c
		filled[pos%k] = true
	}
	better := func(cand, cur Composition) bool {
		if cand.DistanceSum != cur.DistanceSum {
			return cand.DistanceSum < cur.DistanceSum
		}
		return cand.LogProbSum > cur.LogProbSum
	}

	for start := 0; start < n; start++ {
		maxLen := k
		if n-start < maxLen {
			maxLen = n - start
		}
		for length := 1; length <= maxLen; length++ {
			end := start + length - 1

			// A split point that already falls on whitespace in the input
			// is free; a split point introduced where the input had no
			// separator at all costs one inferred insertion, per spec.md
			// §4.4's worked example (run-on text costs one edit per
			// introduced word boundary).
			separatorLength := 0
			part := string(runes[start : start+length])
			if start > 0 {
				if unicode.IsSpace(runes[start]) {
					part = string(runes[start+1 : start+length])
				} else {
					separatorLength = 1
				}
			}
			part = normalizeLigatures(part)

			term, dist, score := e.scoreSegment(part, maxEditDistance, ignoreTokenRegex)

			prev := get(start - 1)
			cand := Composition{
				SegmentedString: appendSeg(prev.SegmentedString, part),
				CorrectedString: appendSeg(prev.CorrectedString, term),
				DistanceSum:     prev.DistanceSum + dist + separatorLength,
				LogProbSum:      prev.LogProbSum + score,
			}

			// At length == k the end slot is the one holding the composition
			// that ends at start-1, a different position, so it is replaced
			// rather than compared against.
			if !filled[end%k] || length == k || better(cand, get(end)) {
				set(end, cand)
			}
		}
	}

	return get(n - 1)
}

// scoreSegment implements spec.md §4.4 step 3's three-way scoring rule:
// an exact match scores by its real frequency, a near match within one
// extra edit scores by the smoothing floor, and anything else is an
// unknown segment scored at effectively zero probability.
func (e *Engine) scoreSegment(part string, maxEditDistance int, ignoreTokenRegex *regexp.Regexp) (term string, dist int, score float64) {
	if part == "" {
		return "", 0, 0
	}
	if ignoreTokenRegex != nil {
		if loc := ignoreTokenRegex.FindStringIndex(part); loc != nil && loc[0] == 0 && loc[1] == len(part) {
			return part, 0, 0
		}
	}

	partLen := len([]rune(part))
	results, err := e.lookup.Lookup(part, suggestion.Top, maxEditDistance, lookup.Options{})
	if err != nil || len(results) == 0 {
		return part, partLen, math.Inf(-1)
	}

	top := results[0]
	switch {
	case top.Distance == 0:
		return top.Term, 0, math.Log(float64(top.Count) / corpusSize)
	case partLen == 1 || partLen-1 == top.Distance:
		return top.Term, top.Distance, math.Log(1 / (corpusSize * math.Pow(10, float64(partLen))))
	default:
		return part, partLen, math.Inf(-1)
	}
}
