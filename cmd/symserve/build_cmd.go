package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/symserve/symserve/pkg/dictionary"
	"github.com/symserve/symserve/pkg/engine"
)

func newBuildCmd() *cobra.Command {
	var unigramPath, bigramPath, corpusPath, outPath string
	var termIndex, countIndex int

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a dictionary from frequency files or a plain-text corpus and persist it",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := loadConfig()
			eng, err := engine.New(cfg.Engine, nil)
			if err != nil {
				log.Fatalf("build: %v", err)
			}

			opts := dictionary.LoadOptions{TermIndex: termIndex, CountIndex: countIndex}

			if unigramPath != "" {
				f, err := os.Open(unigramPath)
				if err != nil {
					log.Fatalf("build: open unigrams: %v", err)
				}
				stats, err := eng.LoadUnigramCorpus(f, opts)
				f.Close()
				if err != nil {
					log.Fatalf("build: load unigrams: %v", err)
				}
				log.Infof("unigrams: accepted=%d rejected=%d", stats.Accepted, stats.Rejected)
			}

			if bigramPath != "" {
				f, err := os.Open(bigramPath)
				if err != nil {
					log.Fatalf("build: open bigrams: %v", err)
				}
				stats, err := eng.LoadBigramCorpus(f, opts)
				f.Close()
				if err != nil {
					log.Fatalf("build: load bigrams: %v", err)
				}
				log.Infof("bigrams: accepted=%d rejected=%d", stats.Accepted, stats.Rejected)
			}

			if corpusPath != "" {
				text, err := os.ReadFile(corpusPath)
				if err != nil {
					log.Fatalf("build: read corpus: %v", err)
				}
				n, err := eng.BuildFromCorpus(string(text))
				if err != nil {
					log.Fatalf("build: read corpus: %v", err)
				}
				log.Infof("corpus: tokenized %d words", n)
			}

			if outPath == "" {
				log.Fatal("build: --out is required")
			}
			out, err := os.Create(outPath)
			if err != nil {
				log.Fatalf("build: create output: %v", err)
			}
			defer out.Close()
			if err := eng.SaveState(out); err != nil {
				log.Fatalf("build: save state: %v", err)
			}

			stats := eng.Stats()
			log.Infof("wrote %s: terms=%d bigrams=%d buckets=%d", outPath, stats["term_count"], stats["bigram_count"], stats["bucket_count"])
		},
	}

	cmd.Flags().StringVar(&unigramPath, "unigrams", "", "Unigram frequency file (term count per line)")
	cmd.Flags().StringVar(&bigramPath, "bigrams", "", "Bigram frequency file (word1 word2 count per line)")
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Plain-text corpus to tokenize and count")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path for the persisted state file (msgpack)")
	cmd.Flags().IntVar(&termIndex, "term-index", 0, "Zero-based column holding the term")
	cmd.Flags().IntVar(&countIndex, "count-index", 1, "Zero-based column holding the count")

	return cmd
}
