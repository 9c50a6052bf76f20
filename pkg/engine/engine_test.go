package engine

import (
	"bytes"
	"testing"

	"github.com/symserve/symserve/pkg/config"
	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

func testConfig() config.EngineConfig {
	cfg := config.DefaultConfig().Engine
	cfg.CountThreshold = 1
	return cfg
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PrefixLength = 0
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("New: expected error for prefix_length < 1, got nil")
	}
}

func TestEngineAddLookupRemove(t *testing.T) {
	eng, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.AddEntry("members", 226656153)

	results, err := eng.Lookup("memebers", suggestion.Closest, 2, lookup.Options{})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(results) != 1 || results[0].Term != "members" || results[0].Distance != 1 {
		t.Fatalf("Lookup results = %+v, want one result (members, distance 1)", results)
	}

	if !eng.RemoveEntry("members") {
		t.Fatal("RemoveEntry: expected true for present term")
	}
	if eng.RemoveEntry("members") {
		t.Fatal("RemoveEntry: expected false on second removal")
	}
}

func TestEngineSaveLoadStateRoundTrip(t *testing.T) {
	eng, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.AddEntry("members", 226656153)
	eng.AddBigram("the", "members", 5)

	var buf bytes.Buffer
	if err := eng.SaveState(&buf); err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	restored, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := restored.LoadState(&buf); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	results, err := restored.Lookup("members", suggestion.Top, 0, lookup.Options{})
	if err != nil {
		t.Fatalf("Lookup after restore: %v", err)
	}
	if len(results) != 1 || results[0].Count != 226656153 {
		t.Fatalf("Lookup after restore = %+v, want count 226656153", results)
	}
}

func TestEngineBuildFromCorpusLowercasesAndSkipsBigrams(t *testing.T) {
	eng, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n, err := eng.BuildFromCorpus("The Cat sat. The cat ran!")
	if err != nil {
		t.Fatalf("BuildFromCorpus: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 tokens, got %d", n)
	}

	if _, count, ok := eng.unigram.Lookup("the"); !ok || count != 2 {
		t.Fatalf("expected lowercased 'the' count 2, got ok=%v count=%d", ok, count)
	}
	if eng.bigram.Len() != 0 {
		t.Fatalf("create_dictionary must not generate bigrams, got bigram_count=%d", eng.bigram.Len())
	}

	results, err := eng.Lookup("the", suggestion.Top, 0, lookup.Options{})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if len(results) != 1 || results[0].Count != 2 {
		t.Fatalf("Lookup after BuildFromCorpus = %+v, want count 2", results)
	}
}

func TestEngineStats(t *testing.T) {
	eng, err := New(testConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eng.AddEntry("members", 226656153)
	eng.AddBigram("the", "members", 1)

	stats := eng.Stats()
	if stats["term_count"] != 1 {
		t.Fatalf("term_count = %d, want 1", stats["term_count"])
	}
	if stats["bigram_count"] != 1 {
		t.Fatalf("bigram_count = %d, want 1", stats["bigram_count"])
	}
	if stats["bucket_count"] == 0 {
		t.Fatal("bucket_count = 0, want > 0 after adding a term")
	}
}
