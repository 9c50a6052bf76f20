package dictionary

// Bigram holds ordered word-pair counts plus the derived bigram_count_min
// smoothing floor, per spec.md §3.
type Bigram struct {
	counts   map[string]int64
	countMin int64
}

// NewBigram constructs an empty bigram table.
func NewBigram() *Bigram {
	return &Bigram{counts: make(map[string]int64)}
}

// Key builds the "w1 w2" storage key for an ordered pair.
func Key(w1, w2 string) string { return w1 + " " + w2 }

// Add ingests an occurrence count for the ordered pair (w1, w2), recomputing
// bigram_count_min if necessary.
func (b *Bigram) Add(w1, w2 string, c int64) {
	if c < 1 {
		c = 1
	}
	key := Key(w1, w2)
	prev, existed := b.counts[key]
	total := prev + c
	b.counts[key] = total

	switch {
	case len(b.counts) == 1:
		b.countMin = total
	case existed && prev == b.countMin:
		// The bigram that used to hold the minimum just grew; the minimum
		// can only have moved up, so it needs a full rescan.
		b.rescanMin()
	case total < b.countMin:
		b.countMin = total
	}
}

func (b *Bigram) rescanMin() {
	min := int64(0)
	first := true
	for _, c := range b.counts {
		if first || c < min {
			min = c
			first = false
		}
	}
	b.countMin = min
}

// Count returns the count for (w1, w2) and whether it is present.
func (b *Bigram) Count(w1, w2 string) (int64, bool) {
	c, ok := b.counts[Key(w1, w2)]
	return c, ok
}

// CountMin returns bigram_count_min, defaulting to 1 when the table is
// empty per spec.md §3.
func (b *Bigram) CountMin() int64 {
	if len(b.counts) == 0 {
		return 1
	}
	return b.countMin
}

// Len returns the number of distinct bigrams held.
func (b *Bigram) Len() int { return len(b.counts) }

// Snapshot returns the "w1 w2" -> count table, for pkg/persist's
// save_state operation.
func (b *Bigram) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(b.counts))
	for k, c := range b.counts {
		out[k] = c
	}
	return out
}

// RestoreBigram rebuilds a Bigram from a persisted counts table, trusting the
// caller-supplied countMin rather than rescanning (spec.md §6's load_state
// restores bigram_count_min verbatim).
func RestoreBigram(counts map[string]int64, countMin int64) *Bigram {
	b := NewBigram()
	for k, c := range counts {
		b.counts[k] = c
	}
	b.countMin = countMin
	return b
}
