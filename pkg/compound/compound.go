// Package compound implements phrase-level correction (spec.md §4.3): each
// whitespace-separated token is corrected independently with a TOP lookup,
// then adjacent tokens are tested for a better joint correction using the
// bigram table as a tie-breaker, mirroring how SymSpell's LookupCompound
// extends single-term lookup across a whole phrase.
package compound

import (
	"math"
	"strings"

	"github.com/symserve/symserve/pkg/casing"
	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/ignore"
	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

// corpusSize is the empirical unigram corpus size constant spec.md §4.3
// names (N = 1024908267229), used to scale bigram_count(prev, cur) into a
// probability before taking its log for scoring.
const corpusSize = 1024908267229.0

// Options carries lookup_compound's per-call knobs (spec.md §4.3's
// signature) plus the smoothing divisor spec.md §9's Open Question settled
// on (SPEC_FULL.md §6): BigramCountMinDivisor, default 10.
type Options struct {
	TransferCasing        bool
	IgnoreNonWords        bool
	BigramCountMinDivisor float64
}

func (o Options) divisor() float64 {
	if o.BigramCountMinDivisor <= 0 {
		return 10
	}
	return o.BigramCountMinDivisor
}

// Engine corrects whole phrases using a single-term lookup.Engine plus a
// bigram frequency table for merge scoring.
type Engine struct {
	lookup  *lookup.Engine
	bigrams *dictionary.Bigram
}

// New builds a compound Engine over an existing single-term lookup engine
// and bigram table.
func New(l *lookup.Engine, bigrams *dictionary.Bigram) *Engine {
	return &Engine{lookup: l, bigrams: bigrams}
}

type slot struct {
	term     string
	distance int
	count    int64
	passthru bool
}

// Correct implements lookup_compound: split phrase by whitespace, correct
// each token, test the previous/current pair for a better merge, and join
// the result back into a single Suggestion.
func (e *Engine) Correct(phrase string, maxEditDistance int, opts Options) (suggestion.Suggestion, error) {
	tokens := strings.Fields(phrase)
	if len(tokens) == 0 {
		return suggestion.Suggestion{Term: phrase, Distance: 0, Count: 0}, nil
	}

	out := make([]slot, 0, len(tokens))
	for i, tok := range tokens {
		cur, err := e.correctToken(tok, maxEditDistance, opts)
		if err != nil {
			return suggestion.Suggestion{}, err
		}

		if i > 0 {
			prev := out[len(out)-1]
			if !prev.passthru && !cur.passthru && len(tok) > 1 && prev.distance > 0 {
				merged, ok, err := e.tryMerge(prev, cur, tokens[i-1], tok, maxEditDistance, opts)
				if err != nil {
					return suggestion.Suggestion{}, err
				}
				if ok {
					out[len(out)-1] = merged
					continue
				}
			}
		}
		out = append(out, cur)
	}

	terms := make([]string, len(out))
	totalDistance := 0
	minCount := int64(-1)
	for i, s := range out {
		terms[i] = s.term
		totalDistance += s.distance
		if minCount < 0 || s.count < minCount {
			minCount = s.count
		}
	}
	if minCount < 0 {
		minCount = 0
	}

	joined := strings.Join(terms, " ")
	if opts.TransferCasing {
		joined = casing.Transfer(phrase, joined)
	}

	return suggestion.Suggestion{Term: joined, Distance: totalDistance, Count: minCount}, nil
}

// correctToken implements spec.md §4.3 step 1, plus the ignore_non_words
// pass-through.
func (e *Engine) correctToken(tok string, maxEditDistance int, opts Options) (slot, error) {
	if opts.IgnoreNonWords && (ignore.IsInteger(tok) || ignore.IsAcronym(tok)) {
		return slot{term: tok, distance: 0, count: 0, passthru: true}, nil
	}

	results, err := e.lookup.Lookup(tok, suggestion.Top, maxEditDistance, lookup.Options{})
	if err != nil {
		return slot{}, err
	}
	if len(results) == 0 {
		return slot{term: tok, distance: maxEditDistance + 1, count: 0}, nil
	}
	return slot{term: results[0].Term, distance: results[0].Distance, count: results[0].Count}, nil
}

// tryMerge implements spec.md §4.3 step 2: form the merge of the raw
// previous and current tokens, look it up, and accept it either on a strict
// distance improvement or on a bigram-weighted tie.
func (e *Engine) tryMerge(prev, cur slot, rawPrev, rawCur string, maxEditDistance int, opts Options) (slot, bool, error) {
	merged := rawPrev + rawCur
	results, err := e.lookup.Lookup(merged, suggestion.Top, maxEditDistance, lookup.Options{})
	if err != nil {
		return slot{}, false, err
	}

	sumSeparate := prev.distance + cur.distance
	if len(results) == 0 {
		return slot{}, false, nil
	}
	if results[0].Distance+1 < sumSeparate {
		return slot{term: results[0].Term, distance: results[0].Distance, count: results[0].Count}, true, nil
	}
	if results[0].Distance+1 == sumSeparate {
		// Tie: prefer whichever reading has more evidence behind it, the
		// two tokens as a bigram or the merge as a single unigram.
		bigramScore := e.score(prev.term, cur.term, opts)
		mergedScore := math.Log(float64(results[0].Count) / corpusSize)
		if mergedScore > bigramScore {
			return slot{term: results[0].Term, distance: results[0].Distance, count: results[0].Count}, true, nil
		}
	}
	return slot{}, false, nil
}

// score computes log(bigram_count(prev, cur) / N), falling back to the
// smoothing floor bigram_count_min / (N * divisor^|cur|) when the pair is
// unseen, per spec.md §4.3's scoring rule.
func (e *Engine) score(prev, cur string, opts Options) float64 {
	if c, ok := e.bigrams.Count(prev, cur); ok {
		return math.Log(float64(c) / corpusSize)
	}
	floor := float64(e.bigrams.CountMin()) / (corpusSize * math.Pow(opts.divisor(), float64(len([]rune(cur)))))
	return math.Log(floor)
}
