package pzip

import (
	"fmt"
	"sync"
)

type generation struct {
	done chan struct{}
	err  error
}

// Barrier blocks each of a fixed number of parties in Wait until all of
// them have arrived. It is reusable: once a generation is released the next
// Wait starts a new one.
//
// A Barrier can be broken with Abort, which releases every blocked party
// with an error. A broken barrier stays broken.
type Barrier struct {
	mu      sync.Mutex
	parties int
	arrived int
	gen     *generation
	err     error
}

// NewBarrier returns a barrier for parties participants.
func NewBarrier(parties int) (*Barrier, error) {
	if parties < 1 {
		return nil, ErrInvalidWorkerCount
	}
	return &Barrier{
		parties: parties,
		gen:     &generation{done: make(chan struct{})},
	}, nil
}

// Parties returns the number of participants the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until every party has called Wait for the current generation,
// or until the barrier is aborted.
func (b *Barrier) Wait() error {
	b.mu.Lock()
	if b.err != nil {
		err := b.err
		b.mu.Unlock()
		return err
	}
	gen := b.gen
	b.arrived++
	if b.arrived == b.parties {
		b.arrived = 0
		b.gen = &generation{done: make(chan struct{})}
		close(gen.done)
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	<-gen.done
	return gen.err
}

// Abort breaks the barrier. Parties blocked in Wait, and any that call Wait
// later, return an error wrapping ErrBarrierBroken and cause.
func (b *Barrier) Abort(cause error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return
	}
	b.err = ErrBarrierBroken
	if cause != nil {
		b.err = fmt.Errorf("%w: %w", ErrBarrierBroken, cause)
	}
	b.gen.err = b.err
	close(b.gen.done)
}
