// Package cli provides an interactive debugging loop for the correction
// engine: read a line from stdin, run it through lookup, compound
// correction, or segmentation depending on the active mode, and print the
// result, mirroring the wordserve/typer input handlers' prompt-loop shape.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/symserve/symserve/internal/logger"
	"github.com/symserve/symserve/pkg/compound"
	"github.com/symserve/symserve/pkg/engine"
	"github.com/symserve/symserve/pkg/lookup"
	"github.com/symserve/symserve/pkg/suggestion"
)

// Mode selects which engine operation the REPL runs each line through.
type Mode int

const (
	ModeLookup Mode = iota
	ModeCompound
	ModeSegment
)

// REPL is the interactive debugging loop.
type REPL struct {
	engine                    *engine.Engine
	mode                      Mode
	maxEditDistance           int
	maxSegmentationWordLength int
	requestCount              int
	log                       *log.Logger
}

// NewREPL builds a REPL running mode against eng.
func NewREPL(eng *engine.Engine, mode Mode, maxEditDistance, maxSegmentationWordLength int) *REPL {
	return &REPL{engine: eng, mode: mode, maxEditDistance: maxEditDistance, maxSegmentationWordLength: maxSegmentationWordLength, log: logger.New("repl")}
}

// Start begins the read-eval-print loop; it returns when stdin closes.
func (r *REPL) Start() error {
	r.log.Print("symserve REPL [BETA]")
	reader := bufio.NewReader(os.Stdin)
	r.log.Print("type a word or phrase and press Enter (Ctrl+C to exit):")

	for {
		r.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.handleLine(line)
	}
}

func (r *REPL) handleLine(line string) {
	r.requestCount++
	start := time.Now()

	switch r.mode {
	case ModeLookup:
		r.handleLookup(line)
	case ModeCompound:
		r.handleCompound(line)
	case ModeSegment:
		r.handleSegment(line)
	}

	r.log.Debugf("took %v for input %q", time.Since(start), line)
}

func (r *REPL) handleLookup(term string) {
	results, err := r.engine.Lookup(term, suggestion.Closest, r.maxEditDistance, lookup.Options{})
	if err != nil {
		r.log.Errorf("lookup %q: %v", term, err)
		return
	}
	if len(results) == 0 {
		r.log.Warnf("no suggestions for %q", term)
		return
	}
	r.log.Printf("found %d suggestions for %q:", len(results), term)
	for i, s := range results {
		colored := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Term)
		r.log.Printf("%2d. %-40s (distance: %d, count: %s)", i+1, colored, s.Distance, formatWithCommas(s.Count))
	}
}

func (r *REPL) handleCompound(phrase string) {
	result, err := r.engine.Correct(phrase, r.maxEditDistance, compound.Options{})
	if err != nil {
		r.log.Errorf("compound %q: %v", phrase, err)
		return
	}
	r.log.Printf("%s (distance: %d, count: %s)", result.Term, result.Distance, formatWithCommas(result.Count))
}

func (r *REPL) handleSegment(phrase string) {
	composition := r.engine.Segment(phrase, r.maxEditDistance, r.maxSegmentationWordLength)
	r.log.Printf("%s (distance_sum: %d)", composition.CorrectedString, composition.DistanceSum)
}

// formatWithCommas formats an integer with comma separators, mirroring the
// wordserve/typer input handlers' frequency display.
func formatWithCommas(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		s = s[1:]
	}
	var b strings.Builder
	if n < 0 {
		b.WriteByte('-')
	}
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
