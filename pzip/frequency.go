package pzip

import (
	"fmt"
	"strings"
	"sync"
)

// AlphabetSize is the number of letters tracked by a Frequency.
const AlphabetSize = 26

// Frequency holds per-letter occurrence counts, indexed by c - 'a'.
type Frequency [AlphabetSize]int

// Count returns the number of occurrences of c, or 0 if c is not a-z.
func (f *Frequency) Count(c byte) int {
	if !isLetter(c) {
		return 0
	}
	return f[c-'a']
}

// Total returns the sum of all slots.
func (f *Frequency) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// String renders the non-zero slots as "a=3 b=1".
func (f *Frequency) String() string {
	var sb strings.Builder
	for i, n := range f {
		if n == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%c=%d", 'a'+i, n)
	}
	return sb.String()
}

// FrequencyTable guards a caller-owned Frequency with a single lock
// shared by every worker of one Zip call.
type FrequencyTable struct {
	mu     sync.Mutex
	counts *Frequency
}

// NewFrequencyTable wraps counts. The table does not zero it.
func NewFrequencyTable(counts *Frequency) *FrequencyTable {
	return &FrequencyTable{counts: counts}
}

// Add increments the slot for c. c must be a-z.
func (t *FrequencyTable) Add(c byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[c-'a']++
}

// Merge adds every slot of tally into the table under one lock acquisition.
func (t *FrequencyTable) Merge(tally *Frequency) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range tally {
		t.counts[i] += n
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
