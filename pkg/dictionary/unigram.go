// Package dictionary implements the unigram and bigram frequency tables
// (spec.md §3/§4.1) that back the engine's delete index. The present-term
// store is a patricia trie (github.com/tchap/go-patricia/v2), repurposed
// from prefix-completion storage into interning surface strings and handing
// out stable term ids (spec.md §5's "implementations should intern term
// strings" requirement).
package dictionary

import (
	"math"

	"github.com/tchap/go-patricia/v2/patricia"
)

// TermID is a stable handle into the unigram dictionary, used as the payload
// stored in delete-index buckets so buckets reference ids rather than copies
// of the surface string.
type TermID uint32

// AddResult describes what add_entry did, per spec.md §4.1.
type AddResult int

const (
	// ResultBelowThreshold means the accumulated count is still short of
	// count_threshold; the term was not promoted to present.
	ResultBelowThreshold AddResult = iota
	// ResultCountUpdated means the term was already present and only its
	// count changed; the delete index was not touched.
	ResultCountUpdated
	// ResultNewlyPresent means the term was newly promoted into present and
	// needs delete-index variants generated for it.
	ResultNewlyPresent
)

// Unigram holds the present and below-threshold term tables described in
// spec.md §3.
type Unigram struct {
	trie           *patricia.Trie // term surface -> TermID, interning storage
	counts         map[TermID]int64
	surfaces       map[TermID]string
	belowThreshold map[string]int64
	nextID         TermID
	countThreshold int64
	maxLength      int
}

// NewUnigram constructs an empty unigram dictionary with the given
// count_threshold (spec.md §3: "count_threshold >= 0; if count_threshold ==
// 0, below-threshold map is never used").
func NewUnigram(countThreshold int64) *Unigram {
	return &Unigram{
		trie:           patricia.NewTrie(),
		counts:         make(map[TermID]int64),
		surfaces:       make(map[TermID]string),
		belowThreshold: make(map[string]int64),
		countThreshold: countThreshold,
	}
}

// MaxLength returns the longest indexed original term length, an upper
// bound per spec.md §4.1 ("do not recompute max_length eagerly").
func (u *Unigram) MaxLength() int { return u.maxLength }

// CountThreshold returns the configured promotion threshold.
func (u *Unigram) CountThreshold() int64 { return u.countThreshold }

// Lookup returns the TermID and count for a present surface string.
func (u *Unigram) Lookup(term string) (TermID, int64, bool) {
	item := u.trie.Get(patricia.Prefix(term))
	if item == nil {
		return 0, 0, false
	}
	id := item.(TermID)
	return id, u.counts[id], true
}

// Count returns the count for an already-known TermID.
func (u *Unigram) Count(id TermID) int64 { return u.counts[id] }

// Surface returns the interned surface string for a TermID.
func (u *Unigram) Surface(id TermID) string { return u.surfaces[id] }

// Len returns the number of present terms.
func (u *Unigram) Len() int { return len(u.counts) }

// Terms returns every present TermID; order is unspecified.
func (u *Unigram) Terms() []TermID {
	ids := make([]TermID, 0, len(u.counts))
	for id := range u.counts {
		ids = append(ids, id)
	}
	return ids
}

// saturateAdd clamps a+b at math.MaxInt64, per spec.md §4.1's
// "present[w] = min(MAX_INT, present[w] + c)".
func saturateAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Add ingests count c for term w, clamping negative counts to zero first.
// It returns the AddResult and, when ResultNewlyPresent, the new TermID so
// the caller (the delete index) can generate variants for it.
func (u *Unigram) Add(w string, c int64) (AddResult, TermID) {
	if c < 0 {
		c = 0
	}

	if id, _, ok := u.Lookup(w); ok {
		u.counts[id] = saturateAdd(u.counts[id], c)
		return ResultCountUpdated, id
	}

	accumulated := saturateAdd(u.belowThreshold[w], c)
	belowThreshold := accumulated <= 0 || (u.countThreshold > 0 && accumulated < u.countThreshold)
	if belowThreshold {
		// A term is never stored with count == 0 in the present map, and
		// count_threshold == 0 means the below-threshold map itself is
		// never populated.
		if u.countThreshold > 0 {
			u.belowThreshold[w] = accumulated
		}
		return ResultBelowThreshold, 0
	}

	id := u.intern(w)
	u.counts[id] = accumulated
	delete(u.belowThreshold, w)
	if n := runeLen(w); n > u.maxLength {
		u.maxLength = n
	}
	return ResultNewlyPresent, id
}

// Remove deletes w from the present table. It reports false if w was not
// present, matching spec.md §7's NotFound-as-boolean policy.
func (u *Unigram) Remove(w string) (TermID, bool) {
	id, _, ok := u.Lookup(w)
	if !ok {
		return 0, false
	}
	u.trie.Delete(patricia.Prefix(w))
	delete(u.counts, id)
	delete(u.surfaces, id)
	return id, true
}

// Snapshot returns the present-term and below-threshold tables keyed by
// surface string, for pkg/persist's save_state operation.
func (u *Unigram) Snapshot() (present map[string]int64, belowThreshold map[string]int64) {
	present = make(map[string]int64, len(u.counts))
	for id, c := range u.counts {
		present[u.surfaces[id]] = c
	}
	belowThreshold = make(map[string]int64, len(u.belowThreshold))
	for w, c := range u.belowThreshold {
		belowThreshold[w] = c
	}
	return present, belowThreshold
}

// RestoreUnigram rebuilds a Unigram from a persisted snapshot (spec.md §6's
// load_state), interning every present term in map iteration order; callers
// that need deterministic term ids should sort first.
func RestoreUnigram(countThreshold int64, present, belowThreshold map[string]int64) *Unigram {
	u := NewUnigram(countThreshold)
	for w, c := range belowThreshold {
		u.belowThreshold[w] = c
	}
	for w, c := range present {
		id := u.intern(w)
		u.counts[id] = c
		if n := runeLen(w); n > u.maxLength {
			u.maxLength = n
		}
	}
	return u
}

// runeLen returns the character length of w, per spec.md §3's max_length
// definition; a byte count would overestimate the too-long short-circuit
// threshold in pkg/lookup for multi-byte UTF-8 terms.
func runeLen(s string) int { return len([]rune(s)) }

func (u *Unigram) intern(w string) TermID {
	id := u.nextID
	u.nextID++
	u.trie.Insert(patricia.Prefix(w), id)
	u.surfaces[id] = w
	return id
}
