// Package index implements the delete-index store (spec.md §3/§4.1): for
// every present dictionary term it precomputes every string reachable by
// deleting up to max_dictionary_edit_distance characters from the term's
// prefix, and maps each such delete variant back to the term ids that share
// it. Bucket collisions (two distinct variants hashing the same) are
// tolerated by design — pkg/lookup re-verifies every candidate with the
// exact distance function before accepting it.
package index

import (
	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/hash"
)

// DeleteIndex maps hash(variant) -> the term ids that share that variant.
type DeleteIndex struct {
	buckets                   map[uint64][]dictionary.TermID
	prefixLength              int
	maxDictionaryEditDistance int
}

// New constructs an empty delete index for the given prefix_length and
// max_dictionary_edit_distance (spec.md §3 invariants: prefix_length >= 1
// and prefix_length >= max_dictionary_edit_distance).
func New(prefixLength, maxDictionaryEditDistance int) *DeleteIndex {
	return &DeleteIndex{
		buckets:                   make(map[uint64][]dictionary.TermID),
		prefixLength:              prefixLength,
		maxDictionaryEditDistance: maxDictionaryEditDistance,
	}
}

// PrefixLength returns the configured prefix_length.
func (d *DeleteIndex) PrefixLength() int { return d.prefixLength }

// MaxDictionaryEditDistance returns the configured max_dictionary_edit_distance.
func (d *DeleteIndex) MaxDictionaryEditDistance() int { return d.maxDictionaryEditDistance }

// Prefix returns the first prefix_length characters of w, or w itself when
// shorter, per spec.md §3's "Delete variant" definition.
func (d *DeleteIndex) Prefix(w string) string {
	r := []rune(w)
	if len(r) <= d.prefixLength {
		return w
	}
	return string(r[:d.prefixLength])
}

// Variants enumerates every string reachable from s by deleting up to max
// characters, including s itself. This is the "breadth-first peel" spec.md
// §4.1 describes: each step removes one character at each position from
// every string discovered at the previous depth, deduplicating within the
// whole enumeration so a recursion never re-walks the same variant twice.
func Variants(s string, max int) []string {
	runes := []rune(s)
	seen := map[string]struct{}{s: {}}
	order := []string{s}

	frontier := []([]rune){runes}
	for depth := 0; depth < max; depth++ {
		var next [][]rune
		for _, v := range frontier {
			if len(v) == 0 {
				continue
			}
			for i := range v {
				cut := make([]rune, 0, len(v)-1)
				cut = append(cut, v[:i]...)
				cut = append(cut, v[i+1:]...)
				cs := string(cut)
				if _, ok := seen[cs]; ok {
					continue
				}
				seen[cs] = struct{}{}
				order = append(order, cs)
				next = append(next, cut)
			}
		}
		frontier = next
	}
	return order
}

// AddTerm generates every delete variant of surface's prefix and appends id
// to each corresponding bucket, skipping duplicates within a bucket, per
// spec.md §4.1's "add term" operation.
func (d *DeleteIndex) AddTerm(id dictionary.TermID, surface string) {
	prefix := d.Prefix(surface)
	for _, v := range Variants(prefix, d.maxDictionaryEditDistance) {
		key := hash.Variant(v)
		bucket := d.buckets[key]
		if containsID(bucket, id) {
			continue
		}
		d.buckets[key] = append(bucket, id)
	}
}

// RemoveTerm removes id from every bucket its delete variants occupy,
// dropping buckets that become empty, per spec.md §4.1's "remove term"
// operation.
func (d *DeleteIndex) RemoveTerm(id dictionary.TermID, surface string) {
	prefix := d.Prefix(surface)
	for _, v := range Variants(prefix, d.maxDictionaryEditDistance) {
		key := hash.Variant(v)
		bucket := d.buckets[key]
		idx := indexOfID(bucket, id)
		if idx < 0 {
			continue
		}
		bucket = append(bucket[:idx], bucket[idx+1:]...)
		if len(bucket) == 0 {
			delete(d.buckets, key)
		} else {
			d.buckets[key] = bucket
		}
	}
}

// Bucket returns the term ids stored under hash(variant).
func (d *DeleteIndex) Bucket(variant string) []dictionary.TermID {
	return d.buckets[hash.Variant(variant)]
}

// BucketCount reports how many distinct non-empty buckets exist, used by
// Engine.Stats().
func (d *DeleteIndex) BucketCount() int { return len(d.buckets) }

func containsID(ids []dictionary.TermID, id dictionary.TermID) bool {
	return indexOfID(ids, id) >= 0
}

func indexOfID(ids []dictionary.TermID, id dictionary.TermID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
