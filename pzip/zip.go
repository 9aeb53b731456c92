package pzip

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// TallyMode selects how workers update the shared frequency table.
type TallyMode int

const (
	// TallyShared takes the table lock once per character.
	TallyShared TallyMode = iota
	// TallyLocal counts into a private table and merges it into the shared
	// one after the barrier, taking the lock once per worker.
	TallyLocal
)

func (m TallyMode) String() string {
	switch m {
	case TallyShared:
		return "shared"
	case TallyLocal:
		return "local"
	default:
		return fmt.Sprintf("TallyMode(%d)", int(m))
	}
}

// ParseTallyMode accepts the names returned by String.
func ParseTallyMode(s string) (TallyMode, error) {
	switch s {
	case "", "shared":
		return TallyShared, nil
	case "local":
		return TallyLocal, nil
	default:
		return TallyShared, fmt.Errorf("unknown tally mode %q", s)
	}
}

// Options configures a Zip call.
type Options struct {
	Workers   int
	Remainder RemainderPolicy
	Tally     TallyMode
}

// Zip run-length encodes input with workers parallel workers, using the
// default Truncate and TallyShared options. See ZipWithOptions.
func Zip(workers int, input []byte, out []Run, freq *Frequency) (int, error) {
	return ZipWithOptions(Options{Workers: workers}, input, out, freq)
}

// ZipWithOptions writes the runs of input into out and adds the scanned
// characters to freq. It returns the number of runs written.
//
// out must hold at least Scanned(len(input), opts.Workers, opts.Remainder)
// entries; it is never resized. freq is added to, not reset. On error the
// contents of out and freq are undefined.
func ZipWithOptions(opts Options, input []byte, out []Run, freq *Frequency) (int, error) {
	if opts.Workers < 1 {
		return 0, ErrInvalidWorkerCount
	}
	if freq == nil {
		return 0, ErrNilFrequency
	}
	if need := Scanned(len(input), opts.Workers, opts.Remainder); len(out) < need {
		return 0, fmt.Errorf("%w: have %d, need %d", ErrOutputTooSmall, len(out), need)
	}

	barrier, err := NewBarrier(opts.Workers)
	if err != nil {
		return 0, err
	}
	table := NewFrequencyTable(freq)
	counts := make([]int, opts.Workers)

	var g errgroup.Group
	for i, rng := range Partition(len(input), opts.Workers, opts.Remainder) {
		w := &worker{
			idx:     i,
			rng:     rng,
			input:   input,
			tally:   opts.Tally,
			freq:    table,
			barrier: barrier,
			counts:  counts,
			out:     out,
		}
		g.Go(w.run)
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// Result is the outcome of Compress.
type Result struct {
	Runs      []Run
	Frequency Frequency
	Workers   int
	InputSize int
	Scanned   int
	Remainder RemainderPolicy
}

// Compress allocates the outputs for input and runs ZipWithOptions.
func Compress(input []byte, opts Options) (Result, error) {
	out := make([]Run, Scanned(len(input), opts.Workers, opts.Remainder))
	res := Result{
		Workers:   opts.Workers,
		InputSize: len(input),
		Scanned:   len(out),
		Remainder: opts.Remainder,
	}
	n, err := ZipWithOptions(opts, input, out, &res.Frequency)
	if err != nil {
		return Result{}, err
	}
	res.Runs = out[:n]
	return res, nil
}
