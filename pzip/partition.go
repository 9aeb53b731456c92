package pzip

import "fmt"

// RemainderPolicy decides what happens to the trailing length%workers
// characters that do not fit into equal chunks.
type RemainderPolicy int

const (
	// Truncate leaves the remainder unscanned. No run or frequency count
	// is produced for it.
	Truncate RemainderPolicy = iota
	// ExtendLast appends the remainder to the last worker's range.
	ExtendLast
)

func (p RemainderPolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case ExtendLast:
		return "extend"
	default:
		return fmt.Sprintf("RemainderPolicy(%d)", int(p))
	}
}

// ParseRemainderPolicy accepts the names returned by String.
func ParseRemainderPolicy(s string) (RemainderPolicy, error) {
	switch s {
	case "", "truncate":
		return Truncate, nil
	case "extend", "extend-last":
		return ExtendLast, nil
	default:
		return Truncate, fmt.Errorf("unknown remainder policy %q", s)
	}
}

// Range is the half-open index range [Start, Start+Len) of one chunk.
type Range struct {
	Start int
	Len   int
}

// End returns the exclusive end index.
func (r Range) End() int {
	return r.Start + r.Len
}

// Partition splits [0, length) into workers contiguous chunks of
// length/workers characters each, in worker order.
func Partition(length, workers int, policy RemainderPolicy) []Range {
	if workers < 1 || length < 0 {
		return nil
	}
	chunk := length / workers
	ranges := make([]Range, workers)
	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, Len: chunk}
	}
	if policy == ExtendLast {
		ranges[workers-1].Len += length % workers
	}
	return ranges
}

// Scanned returns how many input characters Partition assigns to workers.
func Scanned(length, workers int, policy RemainderPolicy) int {
	if workers < 1 || length < 0 {
		return 0
	}
	if policy == ExtendLast {
		return length
	}
	return workers * (length / workers)
}
