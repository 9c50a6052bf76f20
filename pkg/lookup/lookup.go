// Package lookup implements the single-term candidate search (spec.md §4.2):
// given a misspelled token, it walks the delete index outward from the
// token's own delete variants, gathering dictionary terms that could have
// produced one of those variants, and verifies every candidate with an
// exact distance computation before it is accepted.
package lookup

import (
	"errors"
	"regexp"

	"github.com/symserve/symserve/pkg/casing"
	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/distance"
	"github.com/symserve/symserve/pkg/index"
	"github.com/symserve/symserve/pkg/suggestion"
)

// ErrInvalidMaxEditDistance is returned when the caller asks for a bound
// above the index's max_dictionary_edit_distance, per spec.md §4.2 and §7.
var ErrInvalidMaxEditDistance = errors.New("lookup: max_edit_distance exceeds max_dictionary_edit_distance")

// Options carries the per-call knobs spec.md §4.2 names beyond
// verbosity/max_edit_distance.
type Options struct {
	IncludeUnknown   bool
	IgnoreTokenRegex *regexp.Regexp
	TransferCasing   bool
}

// Engine performs single-term lookups against a unigram dictionary and its
// delete index using a supplied distance metric.
type Engine struct {
	dict   *dictionary.Unigram
	index  *index.DeleteIndex
	metric distance.Func
}

// New builds a lookup Engine over dict/idx using metric as the distance
// capability (spec.md §1's "(ii) a distance(a, b, max) -> int capability").
func New(dict *dictionary.Unigram, idx *index.DeleteIndex, metric distance.Func) *Engine {
	return &Engine{dict: dict, index: idx, metric: metric}
}

// Metric returns the distance capability this Engine was constructed with,
// so callers that rebuild the index in place can carry it over to a fresh
// Engine instead of re-threading it through every layer above.
func (e *Engine) Metric() distance.Func { return e.metric }

func runeLen(s string) int { return len([]rune(s)) }

func deleteAt(r []rune, i int) []rune {
	out := make([]rune, 0, len(r)-1)
	out = append(out, r[:i]...)
	out = append(out, r[i+1:]...)
	return out
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Lookup implements spec.md §4.2's algorithm in full.
func (e *Engine) Lookup(input string, verbosity suggestion.Verbosity, maxEditDistance int, opts Options) ([]suggestion.Suggestion, error) {
	if maxEditDistance > e.index.MaxDictionaryEditDistance() {
		return nil, ErrInvalidMaxEditDistance
	}

	if opts.IgnoreTokenRegex != nil {
		if loc := opts.IgnoreTokenRegex.FindStringIndex(input); loc != nil && loc[0] == 0 && loc[1] == len(input) {
			return []suggestion.Suggestion{{Term: input, Distance: 0, Count: 0}}, nil
		}
	}

	inputLen := runeLen(input)
	if inputLen-e.dict.MaxLength() > maxEditDistance {
		return e.unknown(input, maxEditDistance, opts)
	}

	var results []suggestion.Suggestion
	considered := make(map[dictionary.TermID]bool)
	maxEditDistanceBest := maxEditDistance

	if id, count, ok := e.dict.Lookup(input); ok {
		results = append(results, suggestion.Suggestion{Term: input, Distance: 0, Count: count})
		considered[id] = true
		if verbosity != suggestion.All {
			maxEditDistanceBest = 0
		}
		if verbosity == suggestion.Top {
			return e.finish(results, verbosity, input, maxEditDistance, opts), nil
		}
	}

	if maxEditDistance == 0 {
		return e.unknown(input, maxEditDistance, opts, results...)
	}

	inputPrefix := e.index.Prefix(input)
	inputPrefixLen := runeLen(inputPrefix)

	type queued struct {
		variant []rune
		depth   int
	}
	queue := []queued{{variant: []rune(inputPrefix), depth: 0}}
	seen := map[string]bool{inputPrefix: true}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		v, d := cur.variant, cur.depth

		if inputPrefixLen-len(v) > maxEditDistanceBest {
			continue
		}

		for _, id := range e.index.Bucket(string(v)) {
			if considered[id] {
				continue
			}
			surface := e.dict.Surface(id)
			surfaceLen := runeLen(surface)

			if abs(inputLen-surfaceLen) > maxEditDistanceBest {
				continue
			}
			if surfaceLen < len(v) {
				continue
			}
			wPrefix := e.index.Prefix(surface)
			if runeLen(wPrefix)-d > inputPrefixLen {
				continue
			}

			dist := e.metric(input, surface, maxEditDistanceBest)
			if dist < 0 {
				continue
			}
			considered[id] = true

			if verbosity != suggestion.All && dist < maxEditDistanceBest {
				results = nil
				maxEditDistanceBest = dist
			}

			count := e.dict.Count(id)
			results = append(results, suggestion.Suggestion{Term: surface, Distance: dist, Count: count})
		}

		if d < maxEditDistanceBest {
			for i := range v {
				next := deleteAt(v, i)
				ns := string(next)
				if seen[ns] {
					continue
				}
				seen[ns] = true
				queue = append(queue, queued{variant: next, depth: d + 1})
			}
		}
	}

	return e.finish(results, verbosity, input, maxEditDistance, opts), nil
}

// finish applies verbosity pruning and transfer-casing, and falls back to
// the "unknown" sentinel (spec.md §4.2's "Unknown handling") whenever no
// candidate survives pruning and include_unknown is set. This applies
// regardless of why results ended up empty: a too-long input, a
// max_edit_distance of 0 with no exact hit, or a completed search that
// never matched anything.
func (e *Engine) finish(results []suggestion.Suggestion, verbosity suggestion.Verbosity, input string, maxEditDistance int, opts Options) []suggestion.Suggestion {
	suggestion.Sort(results)

	switch verbosity {
	case suggestion.Top:
		if len(results) > 1 {
			results = results[:1]
		}
	case suggestion.Closest:
		if len(results) > 0 {
			min := results[0].Distance
			i := 0
			for i < len(results) && results[i].Distance == min {
				i++
			}
			results = results[:i]
		}
	case suggestion.All:
		// already bounded by max_edit_distance during the search
	}

	if len(results) == 0 {
		if opts.IncludeUnknown {
			return []suggestion.Suggestion{{Term: input, Distance: maxEditDistance + 1, Count: 0}}
		}
		return nil
	}

	if opts.TransferCasing {
		out := make([]suggestion.Suggestion, len(results))
		for i, s := range results {
			s.Term = casing.Transfer(input, s.Term)
			out[i] = s
		}
		return out
	}
	return results
}

// unknown routes the too-long-input and max_edit_distance==0 early exits
// through the same finish() pruning and sentinel logic every other path
// uses, so include_unknown is honored uniformly.
func (e *Engine) unknown(input string, maxEditDistance int, opts Options, results ...suggestion.Suggestion) ([]suggestion.Suggestion, error) {
	return e.finish(results, suggestion.Closest, input, maxEditDistance, opts), nil
}
