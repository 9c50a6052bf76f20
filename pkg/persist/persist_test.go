package persist

import (
	"bytes"
	"testing"

	"github.com/symserve/symserve/pkg/dictionary"
)

func TestSaveLoadStateRoundTrip(t *testing.T) {
	u := dictionary.NewUnigram(1)
	u.Add("members", 226656153)
	u.Add("member", 100)
	b := dictionary.NewBigram()
	b.Add("the", "cat", 50)

	want := BuildState(u, b, 2, 7)

	var buf bytes.Buffer
	if err := SaveState(&buf, want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	got, err := LoadState(&buf)
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if got.DataVersion != DataVersion {
		t.Fatalf("DataVersion = %d, want %d", got.DataVersion, DataVersion)
	}
	if got.PresentTerms["members"] != 226656153 {
		t.Fatalf("PresentTerms[members] = %d, want 226656153", got.PresentTerms["members"])
	}
	if got.MaxDictionaryEditDistance != 2 || got.PrefixLength != 7 {
		t.Fatalf("construction params not round-tripped: %+v", got)
	}
	if got.BigramCountMin != 50 {
		t.Fatalf("BigramCountMin = %d, want 50", got.BigramCountMin)
	}

	ru, rb := got.Rebuild()
	if _, count, ok := ru.Lookup("members"); !ok || count != 226656153 {
		t.Fatalf("restored unigram Lookup(members) = (%d, %v), want (226656153, true)", count, ok)
	}
	if c, ok := rb.Count("the", "cat"); !ok || c != 50 {
		t.Fatalf("restored bigram Count(the, cat) = (%d, %v), want (50, true)", c, ok)
	}
}

func TestLoadStateVersionMismatch(t *testing.T) {
	u := dictionary.NewUnigram(1)
	u.Add("x", 1)
	b := dictionary.NewBigram()
	s := BuildState(u, b, 2, 7)
	s.DataVersion = 2

	var buf bytes.Buffer
	if err := SaveState(&buf, s); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	if _, err := LoadState(&buf); err == nil {
		t.Fatal("LoadState: expected version mismatch error, got nil")
	}
}
