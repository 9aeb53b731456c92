package pzip

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Run is one run-length entry: Count consecutive copies of Char.
type Run struct {
	Char  byte `json:"char"`
	Count int  `json:"count"`
}

// String renders the run as "a3".
func (r Run) String() string {
	return string(r.Char) + strconv.Itoa(r.Count)
}

// Valid reports whether the run has a lowercase character and a positive count.
func (r Run) Valid() bool {
	return isLetter(r.Char) && r.Count >= 1
}

// Format renders runs as a single "a3b1c2" string.
func Format(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteByte(r.Char)
		sb.WriteString(strconv.Itoa(r.Count))
	}
	return sb.String()
}

// ParseRuns reads the format produced by Format.
func ParseRuns(s string) ([]Run, error) {
	var runs []Run
	for i := 0; i < len(s); {
		c := s[i]
		if !isLetter(c) {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, c, i)
		}
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		if j == i+1 {
			return nil, fmt.Errorf("%w: missing count for %q at offset %d", ErrInvalidRun, c, i)
		}
		n, err := strconv.Atoi(s[i+1 : j])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRun, err)
		}
		r := Run{Char: c, Count: n}
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %s at offset %d", ErrInvalidRun, r, i)
		}
		runs = append(runs, r)
		i = j
	}
	return runs, nil
}

// Length returns the number of characters runs describe. It fails if a run
// is invalid or the total does not fit in an int.
func Length(runs []Run) (int, error) {
	size := 0
	for i, r := range runs {
		if !r.Valid() {
			return 0, fmt.Errorf("%w: entry %d (%q, %d)", ErrInvalidRun, i, r.Char, r.Count)
		}
		if r.Count > math.MaxInt-size {
			return 0, fmt.Errorf("%w: entry %d overflows the total length", ErrInvalidRun, i)
		}
		size += r.Count
	}
	return size, nil
}

// Expand decodes runs back into the characters they describe.
func Expand(runs []Run) ([]byte, error) {
	size, err := Length(runs)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(size)
	if _, err := ExpandTo(&buf, runs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// expandBlock bounds the memory ExpandTo uses for a single long run.
const expandBlock = 32 * 1024

// ExpandTo writes the characters described by runs to w without holding the
// whole expansion in memory. It returns the number of bytes written.
func ExpandTo(w io.Writer, runs []Run) (int64, error) {
	if _, err := Length(runs); err != nil {
		return 0, err
	}
	bw := bufio.NewWriterSize(w, expandBlock)
	var written int64
	for _, r := range runs {
		for n := r.Count; n > 0; {
			k := min(n, expandBlock)
			m, err := bw.Write(bytes.Repeat([]byte{r.Char}, k))
			written += int64(m)
			if err != nil {
				return written, err
			}
			n -= k
		}
	}
	return written, bw.Flush()
}

// FrequencyOf tallies the characters described by runs. Invalid runs are
// skipped.
func FrequencyOf(runs []Run) Frequency {
	var f Frequency
	for _, r := range runs {
		if r.Valid() {
			f[r.Char-'a'] += r.Count
		}
	}
	return f
}
