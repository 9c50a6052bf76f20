package compound

import (
	"testing"

	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/distance"
	"github.com/symserve/symserve/pkg/index"
	"github.com/symserve/symserve/pkg/lookup"
)

func buildEngine(t *testing.T, terms map[string]int64, bigrams map[[2]string]int64) *Engine {
	t.Helper()
	u := dictionary.NewUnigram(0)
	idx := index.New(7, 2)
	for w, c := range terms {
		res, id := u.Add(w, c)
		if res == dictionary.ResultNewlyPresent {
			idx.AddTerm(id, w)
		}
	}
	b := dictionary.NewBigram()
	for pair, c := range bigrams {
		b.Add(pair[0], pair[1], c)
	}
	l := lookup.New(u, idx, distance.DamerauOSADistance)
	return New(l, b)
}

func TestCorrectMergesSplitWord(t *testing.T) {
	e := buildEngine(t, map[string]int64{"where": 100}, nil)

	got, err := e.Correct("wh ere", 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Term != "where" || got.Distance != 0 || got.Count != 100 {
		t.Fatalf("expected the two fragments merged into 'where' at distance 0, got %+v", got)
	}
}

func TestCorrectIgnoreNonWordsPassesThroughAcronymAndInteger(t *testing.T) {
	e := buildEngine(t, map[string]int64{"flight": 10}, nil)

	got, err := e.Correct("NASA 42 fligt", 2, Options{IgnoreNonWords: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Term != "NASA 42 flight" {
		t.Fatalf("expected pass-through tokens preserved, got %q", got.Term)
	}
}

func TestCorrectMinCountAcrossTokens(t *testing.T) {
	e := buildEngine(t, map[string]int64{"the": 1000, "cat": 3}, nil)

	got, err := e.Correct("the cat", 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Count != 3 {
		t.Fatalf("expected min count 3, got %d", got.Count)
	}
}

func TestCorrectEmptyPhrase(t *testing.T) {
	e := buildEngine(t, map[string]int64{"x": 1}, nil)
	got, err := e.Correct("   ", 2, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Distance != 0 || got.Count != 0 {
		t.Fatalf("expected zero-value result for empty phrase, got %+v", got)
	}
}
