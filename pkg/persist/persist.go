// Package persist implements save_state/load_state (spec.md §6 "Persisted
// state layout") over msgpack, the same wire codec the engine's IPC server
// uses in pkg/server — a single encoding for both at-rest and on-the-wire
// representations of engine state.
package persist

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/symserve/symserve/pkg/dictionary"
)

// DataVersion is the only layout value load_state accepts, per spec.md §6's
// "version mismatch fails load".
const DataVersion = 3

// ErrVersionMismatch is returned by LoadState when the persisted
// data_version differs from DataVersion.
var ErrVersionMismatch = errors.New("persist: data_version mismatch")

// State is the full persisted layout: every field spec.md §6 names.
type State struct {
	DataVersion               int              `msgpack:"data_version"`
	PresentTerms              map[string]int64 `msgpack:"present_terms"`
	BelowThresholdTerms       map[string]int64 `msgpack:"below_threshold_terms"`
	Bigrams                   map[string]int64 `msgpack:"bigrams"`
	BigramCountMin            int64            `msgpack:"bigram_count_min"`
	MaxLength                 int              `msgpack:"max_length"`
	MaxDictionaryEditDistance int              `msgpack:"max_dictionary_edit_distance"`
	PrefixLength              int              `msgpack:"prefix_length"`
	CountThreshold            int64            `msgpack:"count_threshold"`
}

// BuildState snapshots a unigram/bigram pair plus the construction
// parameters that must round-trip alongside them into a State ready for
// msgpack encoding.
func BuildState(u *dictionary.Unigram, b *dictionary.Bigram, maxDictionaryEditDistance, prefixLength int) State {
	present, below := u.Snapshot()
	return State{
		DataVersion:               DataVersion,
		PresentTerms:              present,
		BelowThresholdTerms:       below,
		Bigrams:                   b.Snapshot(),
		BigramCountMin:            b.CountMin(),
		MaxLength:                 u.MaxLength(),
		MaxDictionaryEditDistance: maxDictionaryEditDistance,
		PrefixLength:              prefixLength,
		CountThreshold:            u.CountThreshold(),
	}
}

// Rebuild restores the unigram and bigram tables a State describes. The
// delete index itself is not part of State; callers rebuild it by replaying
// AddTerm over the restored unigram's present terms, per spec.md §9's note
// that the delete index "may be either persisted verbatim or rebuilt on
// load" — rebuilding avoids persisting derived hash-bucket data that a
// future index implementation could change shape entirely.
func (s State) Rebuild() (*dictionary.Unigram, *dictionary.Bigram) {
	u := dictionary.RestoreUnigram(s.CountThreshold, s.PresentTerms, s.BelowThresholdTerms)
	b := dictionary.RestoreBigram(s.Bigrams, s.BigramCountMin)
	return u, b
}

// SaveState encodes a State as msgpack onto w, per spec.md §6.
func SaveState(w io.Writer, s State) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("msgpack")
	return enc.Encode(s)
}

// LoadState decodes a State from r, failing with ErrVersionMismatch when
// the persisted data_version isn't DataVersion.
func LoadState(r io.Reader) (State, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("msgpack")
	var s State
	if err := dec.Decode(&s); err != nil {
		return State{}, fmt.Errorf("persist: decode: %w", err)
	}
	if s.DataVersion != DataVersion {
		return State{}, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.DataVersion, DataVersion)
	}
	return s, nil
}
