// Package engine wires the dictionary, delete index, lookup, compound
// corrector, and segmenter into the single façade pkg/server and cmd/symserve
// drive. It owns the construction-time validation spec.md §6/§7 require and
// the AddEntry/RemoveEntry operations that keep the unigram table and the
// delete index in lockstep.
package engine

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/symserve/symserve/pkg/compound"
	"github.com/symserve/symserve/pkg/config"
	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/distance"
	"github.com/symserve/symserve/pkg/ignore"
	"github.com/symserve/symserve/pkg/index"
	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/persist"
	"github.com/symserve/symserve/pkg/segment"
	"github.com/symserve/symserve/pkg/suggestion"
)

// Engine is the top-level façade: one dictionary, one delete index, and the
// three query surfaces built on top of them.
type Engine struct {
	cfg              config.EngineConfig
	unigram          *dictionary.Unigram
	bigram           *dictionary.Bigram
	index            *index.DeleteIndex
	lookup           *lookup.Engine
	compound         *compound.Engine
	segment          *segment.Engine
	ignoreTokenRegex *regexp.Regexp
}

var algorithmByName = map[string]distance.Algorithm{
	"DAMERAU_OSA":      distance.DamerauOSA,
	"LEVENSHTEIN":      distance.Levenshtein,
	"DAMERAU_OSA_FAST": distance.DamerauOSAFast,
	"LEVENSHTEIN_FAST": distance.LevenshteinFast,
	"USER_PROVIDED":    distance.UserProvided,
}

// New constructs an Engine from cfg, rejecting invalid configuration before
// any dictionary state exists (spec.md §7's InvalidArgument policy).
// userMetric is only consulted when cfg.DistanceAlgorithm is USER_PROVIDED.
func New(cfg config.EngineConfig, userMetric distance.Func) (*Engine, error) {
	if err := (&config.Config{Engine: cfg}).Validate(); err != nil {
		return nil, err
	}

	algo, ok := algorithmByName[cfg.DistanceAlgorithm]
	if !ok {
		return nil, fmt.Errorf("engine: unrecognized distance_algorithm %q", cfg.DistanceAlgorithm)
	}
	if algo == distance.UserProvided && userMetric == nil {
		return nil, fmt.Errorf("engine: distance_algorithm USER_PROVIDED requires a non-nil metric function")
	}
	metric := distance.New(algo, userMetric)

	ignoreRe, err := ignore.CompileTokenRegex(cfg.IgnoreTokenRegex)
	if err != nil {
		return nil, fmt.Errorf("engine: invalid ignore_token_regex: %w", err)
	}

	u := dictionary.NewUnigram(cfg.CountThreshold)
	b := dictionary.NewBigram()
	idx := index.New(cfg.PrefixLength, cfg.MaxDictionaryEditDistance)
	lk := lookup.New(u, idx, metric.Compute)

	return &Engine{
		cfg:              cfg,
		unigram:          u,
		bigram:           b,
		index:            idx,
		lookup:           lk,
		compound:         compound.New(lk, b),
		segment:          segment.New(lk, cfg.PrefixLength),
		ignoreTokenRegex: ignoreRe,
	}, nil
}

// AddEntry ingests a unigram occurrence, promoting it into the delete index
// the moment it crosses count_threshold, per spec.md §4.1.
func (e *Engine) AddEntry(term string, count int64) dictionary.AddResult {
	result, id := e.unigram.Add(term, count)
	if result == dictionary.ResultNewlyPresent {
		e.index.AddTerm(id, e.unigram.Surface(id))
	}
	return result
}

// AddBigram ingests a bigram occurrence.
func (e *Engine) AddBigram(w1, w2 string, count int64) {
	e.bigram.Add(w1, w2, count)
}

// RemoveEntry deletes term from the present table and its delete-index
// variants. It reports false when term was never present, matching spec.md
// §7's NotFound-as-boolean policy.
func (e *Engine) RemoveEntry(term string) bool {
	id, ok := e.unigram.Remove(term)
	if !ok {
		return false
	}
	e.index.RemoveTerm(id, term)
	return true
}

// LoadUnigramCorpus streams unigram entries from r into the unigram table,
// then rebuilds the delete index once if the load made any term present.
func (e *Engine) LoadUnigramCorpus(r io.Reader, opts dictionary.LoadOptions) (dictionary.LoadStats, error) {
	var stats dictionary.LoadStats
	before := e.unigram.Len()
	loaded, err := dictionary.LoadUnigrams(r, e.unigram, opts)
	stats = loaded
	if err != nil {
		return stats, err
	}
	if e.unigram.Len() != before {
		e.rebuildIndex()
	}
	return stats, nil
}

// rebuildIndex regenerates the delete index from scratch, used after a bulk
// load where tracking each individual promotion would cost more than one
// full rebuild.
func (e *Engine) rebuildIndex() {
	idx := index.New(e.cfg.PrefixLength, e.cfg.MaxDictionaryEditDistance)
	for _, id := range e.unigram.Terms() {
		idx.AddTerm(id, e.unigram.Surface(id))
	}
	e.index = idx
	e.lookup = lookup.New(e.unigram, e.index, e.lookup.Metric())
	e.compound = compound.New(e.lookup, e.bigram)
	e.segment = segment.New(e.lookup, e.cfg.PrefixLength)
}

// LoadBigramCorpus streams bigram entries from r into the bigram table.
func (e *Engine) LoadBigramCorpus(r io.Reader, opts dictionary.LoadOptions) (dictionary.LoadStats, error) {
	return dictionary.LoadBigrams(r, e.bigram, opts)
}

// BuildFromCorpus tokenizes plain text and ingests every token as a unigram
// occurrence, the create_dictionary operation spec.md §6 describes. It
// lowercases before tokenizing, matching the original's parse_words default
// of preserve_case=False, and delegates to dictionary.BuildFromCorpus so the
// corpus-ingestion rule lives in one place.
func (e *Engine) BuildFromCorpus(text string) (int, error) {
	before := e.unigram.Len()
	n, err := dictionary.BuildFromCorpus(strings.NewReader(text), e.unigram)
	if e.unigram.Len() != before {
		e.rebuildIndex()
	}
	return n, err
}

// Lookup runs single-term lookup using the engine's configured ignore regex
// unless opts overrides it.
func (e *Engine) Lookup(input string, verbosity suggestion.Verbosity, maxEditDistance int, opts lookup.Options) ([]suggestion.Suggestion, error) {
	if opts.IgnoreTokenRegex == nil {
		opts.IgnoreTokenRegex = e.ignoreTokenRegex
	}
	return e.lookup.Lookup(input, verbosity, maxEditDistance, opts)
}

// Correct runs phrase-level compound correction, falling back to the
// engine's configured bigram_count_min_divisor when opts leaves it unset.
func (e *Engine) Correct(phrase string, maxEditDistance int, opts compound.Options) (suggestion.Suggestion, error) {
	if opts.BigramCountMinDivisor <= 0 {
		opts.BigramCountMinDivisor = e.cfg.BigramCountMinDivisor
	}
	return e.compound.Correct(phrase, maxEditDistance, opts)
}

// Segment runs word segmentation using the engine's configured prefix_length
// as the default max_segmentation_word_length.
func (e *Engine) Segment(phrase string, maxEditDistance, maxSegmentationWordLength int) segment.Composition {
	re := e.ignoreTokenRegex
	return e.segment.Segment(phrase, maxEditDistance, maxSegmentationWordLength, re)
}

// Stats reports the handful of scalar counters SPEC_FULL.md's supplemented
// "stats" operation names: term count, bigram count, max_length, and the
// delete index's distinct bucket count.
func (e *Engine) Stats() map[string]int64 {
	return map[string]int64{
		"term_count":   int64(e.unigram.Len()),
		"bigram_count": int64(e.bigram.Len()),
		"max_length":   int64(e.unigram.MaxLength()),
		"bucket_count": int64(e.index.BucketCount()),
	}
}

// SaveState persists the engine's dictionary state, per spec.md §6.
func (e *Engine) SaveState(w io.Writer) error {
	state := persist.BuildState(e.unigram, e.bigram, e.cfg.MaxDictionaryEditDistance, e.cfg.PrefixLength)
	return persist.SaveState(w, state)
}

// LoadState restores dictionary state from r, rebuilding the delete index
// from the restored present terms, per spec.md §9's "rebuilt on load"
// choice.
func (e *Engine) LoadState(r io.Reader) error {
	state, err := persist.LoadState(r)
	if err != nil {
		return err
	}
	u, b := state.Rebuild()
	e.unigram = u
	e.bigram = b
	e.cfg.MaxDictionaryEditDistance = state.MaxDictionaryEditDistance
	e.cfg.PrefixLength = state.PrefixLength
	e.cfg.CountThreshold = state.CountThreshold
	e.rebuildIndex()
	return nil
}
