package casing

import "testing"

func TestTransferMatching(t *testing.T) {
	got := Transfer("Hello", "world")
	if got != "World" {
		t.Errorf("Transfer(Hello, world) = %q, want World", got)
	}
}

func TestTransferSimilarStopsAtDivergence(t *testing.T) {
	// Regression for the documented edge case: the second 'E' in the
	// misspelling must not propagate onto 'b' once the common run breaks.
	got := Transfer("mEmEbers", "members")
	if got != "mEmbers" {
		t.Errorf("Transfer(mEmEbers, members) = %q, want mEmbers", got)
	}
}

func TestTransferSimilarShorterSource(t *testing.T) {
	got := Transfer("TH", "the")
	if got != "THE" {
		t.Errorf("Transfer(TH, the) = %q, want THE", got)
	}
}

func TestTransferPreservesNonLetters(t *testing.T) {
	got := Transfer("COULDNT", "couldn't")
	if got != "COULDN'T" {
		t.Errorf("Transfer(COULDNT, couldn't) = %q, want COULDN'T", got)
	}
}
