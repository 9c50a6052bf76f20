package lookup

import (
	"regexp"
	"testing"

	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/distance"
	"github.com/symserve/symserve/pkg/index"
	"github.com/symserve/symserve/pkg/suggestion"
)

func build(t *testing.T, prefixLength, maxDist int, terms map[string]int64) (*dictionary.Unigram, *index.DeleteIndex) {
	t.Helper()
	u := dictionary.NewUnigram(0)
	idx := index.New(prefixLength, maxDist)
	for w, c := range terms {
		res, id := u.Add(w, c)
		if res == dictionary.ResultNewlyPresent {
			idx.AddTerm(id, w)
		}
	}
	return u, idx
}

func TestLookupExactMatchTop(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 226656153})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("members", suggestion.Top, 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Term != "members" || got[0].Distance != 0 || got[0].Count != 226656153 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLookupClosestFindsOneEdit(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 226656153})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("memebers", suggestion.Closest, 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one closest suggestion, got %+v", got)
	}
	if got[0] != (suggestion.Suggestion{Term: "members", Distance: 1, Count: 226656153}) {
		t.Fatalf("unexpected suggestion: %+v", got[0])
	}
}

func TestLookupIgnoreTokenShortCircuits(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 226656153})
	e := New(u, idx, distance.DamerauOSADistance)

	opts := Options{IgnoreTokenRegex: regexp.MustCompile(`^\d+$|^[a-z]+\d+$`)}
	got, err := e.Lookup("members1", suggestion.Closest, 2, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != (suggestion.Suggestion{Term: "members1", Distance: 0, Count: 0}) {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLookupInvalidMaxEditDistance(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 1})
	e := New(u, idx, distance.DamerauOSADistance)

	if _, err := e.Lookup("members", suggestion.Top, 3, Options{}); err != ErrInvalidMaxEditDistance {
		t.Fatalf("expected ErrInvalidMaxEditDistance, got %v", err)
	}
}

func TestLookupUnknownWithoutIncludeUnknown(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 1})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("zzzzzzzzzz", suggestion.Closest, 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no suggestions, got %+v", got)
	}
}

func TestLookupUnknownWithIncludeUnknown(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 1})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("zzzzzzzzzz", suggestion.Closest, 2, Options{IncludeUnknown: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Term != "zzzzzzzzzz" || got[0].Distance != 3 || got[0].Count != 0 {
		t.Fatalf("unexpected sentinel: %+v", got)
	}
}

func TestLookupUnknownAfterCompletedSearchWithIncludeUnknown(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 1})
	e := New(u, idx, distance.DamerauOSADistance)

	// "zzz" is short enough to skip the too-long early exit (unlike
	// "zzzzzzzzzz" above) and reaches the end of a completed BFS with
	// no candidates within max_edit_distance.
	got, err := e.Lookup("zzz", suggestion.Closest, 2, Options{IncludeUnknown: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Term != "zzz" || got[0].Distance != 3 || got[0].Count != 0 {
		t.Fatalf("unexpected sentinel: %+v", got)
	}
}

func TestLookupAllOrdersByDistanceThenCount(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{
		"cat":  10,
		"cart": 5,
		"cot":  50,
	})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("cat", suggestion.All, 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatalf("expected at least one suggestion")
	}
	if got[0].Term != "cat" || got[0].Distance != 0 {
		t.Fatalf("expected exact match first, got %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		if suggestion.Less(got[i], got[i-1]) {
			t.Fatalf("results not sorted: %+v", got)
		}
	}
}

func TestLookupTransferCasing(t *testing.T) {
	u, idx := build(t, 7, 2, map[string]int64{"members": 10})
	e := New(u, idx, distance.DamerauOSADistance)

	got, err := e.Lookup("Memebers", suggestion.Top, 2, Options{TransferCasing: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Term != "Members" {
		t.Fatalf("expected casing transferred to 'Members', got %+v", got)
	}
}
