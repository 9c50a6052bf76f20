package dictionary

import (
	"strings"
	"testing"
)

func TestUnigramAddPromotion(t *testing.T) {
	u := NewUnigram(3)

	res, _ := u.Add("cat", 1)
	if res != ResultBelowThreshold {
		t.Fatalf("expected below threshold, got %v", res)
	}
	if _, _, ok := u.Lookup("cat"); ok {
		t.Fatalf("cat should not be present yet")
	}

	res, id := u.Add("cat", 2)
	if res != ResultNewlyPresent {
		t.Fatalf("expected newly present, got %v", res)
	}
	if got := u.Count(id); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}

	res, _ = u.Add("cat", 5)
	if res != ResultCountUpdated {
		t.Fatalf("expected count updated, got %v", res)
	}
	if _, count, _ := u.Lookup("cat"); count != 8 {
		t.Fatalf("expected count 8, got %d", count)
	}
}

func TestUnigramZeroThresholdNeverStoresZeroCount(t *testing.T) {
	u := NewUnigram(0)
	res, _ := u.Add("zero", 0)
	if res != ResultBelowThreshold {
		t.Fatalf("expected below threshold for zero count, got %v", res)
	}
	if _, _, ok := u.Lookup("zero"); ok {
		t.Fatalf("a term must never be stored with count == 0")
	}
	res, _ = u.Add("zero", 1)
	if res != ResultNewlyPresent {
		t.Fatalf("expected newly present once count is positive, got %v", res)
	}
}

func TestUnigramMaxLengthCountsRunesNotBytes(t *testing.T) {
	u := NewUnigram(0)
	// "café" is 4 runes but 5 bytes; a byte-length maxLength would
	// overestimate pkg/lookup's too-long short-circuit threshold.
	u.Add("café", 1)
	if got := u.MaxLength(); got != 4 {
		t.Fatalf("expected maxLength 4 (rune count), got %d", got)
	}

	restored := RestoreUnigram(0, map[string]int64{"café": 1}, nil)
	if got := restored.MaxLength(); got != 4 {
		t.Fatalf("expected restored maxLength 4 (rune count), got %d", got)
	}
}

func TestUnigramRemove(t *testing.T) {
	u := NewUnigram(1)
	u.Add("dog", 5)
	if _, ok := u.Remove("dog"); !ok {
		t.Fatalf("expected dog to be removed")
	}
	if _, ok := u.Remove("dog"); ok {
		t.Fatalf("expected second remove to report not found")
	}
}

func TestBigramCountMin(t *testing.T) {
	b := NewBigram()
	if b.CountMin() != 1 {
		t.Fatalf("empty bigram table should floor at 1, got %d", b.CountMin())
	}
	b.Add("the", "cat", 5)
	b.Add("a", "dog", 2)
	if b.CountMin() != 2 {
		t.Fatalf("expected min 2, got %d", b.CountMin())
	}
	b.Add("a", "dog", 10)
	if b.CountMin() != 5 {
		t.Fatalf("expected rescanned min 5, got %d", b.CountMin())
	}
}

func TestLoadUnigramsRejectsSameIndex(t *testing.T) {
	u := NewUnigram(1)
	_, err := LoadUnigrams(strings.NewReader("members 1\n"), u, LoadOptions{TermIndex: 0, CountIndex: 0})
	if err == nil {
		t.Fatalf("expected error when term_index == count_index")
	}
}

func TestLoadUnigramsSkipsBadLines(t *testing.T) {
	u := NewUnigram(1)
	data := "members 226656153\nbroken\nthe -5\nword 12\n"
	stats, err := LoadUnigrams(strings.NewReader(data), u, LoadOptions{TermIndex: 0, CountIndex: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Accepted != 2 || stats.Rejected != 2 {
		t.Fatalf("expected 2 accepted/2 rejected, got %+v", stats)
	}
	if _, count, ok := u.Lookup("members"); !ok || count != 226656153 {
		t.Fatalf("expected members loaded with count 226656153, got ok=%v count=%d", ok, count)
	}
}

func TestLoadBigramsDefaultSeparator(t *testing.T) {
	b := NewBigram()
	stats, err := LoadBigrams(strings.NewReader("the cat 10\na dog 5\n"), b, LoadOptions{TermIndex: 0, CountIndex: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Accepted != 2 {
		t.Fatalf("expected 2 accepted, got %+v", stats)
	}
	if c, ok := b.Count("the", "cat"); !ok || c != 10 {
		t.Fatalf("expected bigram count 10, got ok=%v c=%d", ok, c)
	}
}

func TestBuildFromCorpus(t *testing.T) {
	u := NewUnigram(1)
	n, err := BuildFromCorpus(strings.NewReader("The cat sat. The cat ran!"), u)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 tokens, got %d", n)
	}
	if _, count, ok := u.Lookup("the"); !ok || count != 2 {
		t.Fatalf("expected 'the' count 2, got ok=%v count=%d", ok, count)
	}
	if _, count, ok := u.Lookup("cat"); !ok || count != 2 {
		t.Fatalf("expected 'cat' count 2, got ok=%v count=%d", ok, count)
	}
}

func TestBuildFromCorpusLowercases(t *testing.T) {
	u := NewUnigram(1)
	if _, err := BuildFromCorpus(strings.NewReader("Cat CAT cat"), u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, count, ok := u.Lookup("cat"); !ok || count != 3 {
		t.Fatalf("expected all case variants folded into lowercase 'cat' with count 3, got ok=%v count=%d", ok, count)
	}
	if _, _, ok := u.Lookup("Cat"); ok {
		t.Fatalf("expected no separate entry for original casing")
	}
}
