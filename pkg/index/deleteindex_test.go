package index

import (
	"sort"
	"testing"

	"github.com/symserve/symserve/pkg/dictionary"
)

func TestVariantsIncludesSelfAndEmpty(t *testing.T) {
	vs := Variants("ab", 2)
	set := map[string]bool{}
	for _, v := range vs {
		set[v] = true
	}
	for _, want := range []string{"ab", "a", "b", ""} {
		if !set[want] {
			t.Errorf("expected variant %q among %v", want, vs)
		}
	}
}

func TestVariantsNoDuplicates(t *testing.T) {
	vs := Variants("aaa", 2)
	seen := map[string]bool{}
	for _, v := range vs {
		if seen[v] {
			t.Fatalf("duplicate variant %q in %v", v, vs)
		}
		seen[v] = true
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	d := New(7, 2)
	before := snapshot(d)

	d.AddTerm(dictionary.TermID(1), "members")
	if len(d.Bucket("members")) != 1 {
		t.Fatalf("expected bucket for exact prefix to contain the term")
	}

	d.RemoveTerm(dictionary.TermID(1), "members")
	after := snapshot(d)

	if len(before) != len(after) {
		t.Fatalf("add then remove should restore empty index, got %d buckets", len(after))
	}
}

func TestBucketDeduplicatesWithinTerm(t *testing.T) {
	d := New(7, 2)
	d.AddTerm(dictionary.TermID(1), "aa")
	// "aa" with one char removed is "a" regardless of which position is
	// removed, so the "a" bucket must contain the term exactly once.
	bucket := d.Bucket("a")
	if len(bucket) != 1 {
		t.Fatalf("expected exactly one entry in bucket for 'a', got %d", len(bucket))
	}
}

func snapshot(d *DeleteIndex) []uint64 {
	keys := make([]uint64, 0, len(d.buckets))
	for k := range d.buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
