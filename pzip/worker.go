package pzip

import "fmt"

// worker compresses one chunk of the input. Everything except counts,
// out and freq is private to the worker.
type worker struct {
	idx     int
	rng     Range
	input   []byte
	tally   TallyMode
	freq    *FrequencyTable
	barrier *Barrier

	// counts[idx] is written once before the barrier and every slot is
	// read after it.
	counts []int
	out    []Run
}

func (w *worker) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, w.idx, r)
			w.barrier.Abort(err)
		}
	}()

	runs, local, err := w.scan()
	if err != nil {
		w.barrier.Abort(err)
		return err
	}
	w.counts[w.idx] = len(runs)

	if err := w.barrier.Wait(); err != nil {
		return fmt.Errorf("worker %d: %w", w.idx, err)
	}

	if local != nil {
		w.freq.Merge(local)
	}
	w.merge(runs)
	return nil
}

// scan walks the worker's range once, building its private runs. With
// TallyShared every character goes through the shared table lock; with
// TallyLocal the counts are kept in the returned private tally.
func (w *worker) scan() ([]Run, *Frequency, error) {
	if w.rng.Len == 0 {
		return nil, nil, nil
	}

	var local *Frequency
	if w.tally == TallyLocal {
		local = new(Frequency)
	}

	runs := make([]Run, 0, w.rng.Len)
	cur := Run{Char: w.input[w.rng.Start]}
	for i := w.rng.Start; i < w.rng.End(); i++ {
		c := w.input[i]
		if !isLetter(c) {
			return nil, nil, fmt.Errorf("%w: %q at index %d", ErrInvalidCharacter, c, i)
		}
		if local != nil {
			local[c-'a']++
		} else {
			w.freq.Add(c)
		}

		if c == cur.Char {
			cur.Count++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Char: c, Count: 1}
	}
	runs = append(runs, cur)
	return runs, local, nil
}

// merge copies runs into the worker's region of the shared output. The
// offset is the prefix sum of the counts published by lower workers.
func (w *worker) merge(runs []Run) {
	offset := 0
	for _, n := range w.counts[:w.idx] {
		offset += n
	}
	copy(w.out[offset:offset+len(runs)], runs)
}
