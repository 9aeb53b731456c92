// Package pzip implements parallel run-length encoding of lowercase text.
//
// The input is split into N equal, contiguous chunks, one per worker. Each
// worker compresses its own chunk into (character, count) runs while tallying
// a shared 26-slot frequency table, then waits at a barrier. Once every worker
// has arrived, each one computes its output offset as the prefix sum of the
// run counts of the workers before it and copies its runs into that disjoint
// region of the caller's output slice.
//
// Runs are maximal only within a chunk. A run that straddles a chunk boundary
// is emitted as two adjacent entries and is never merged:
//
//	input "aaabccccd", 3 workers -> a3 b1 c2 c2 d1
//
// This is part of the output format. Changing the worker count changes the
// output.
//
// When the input length is not a multiple of the worker count, the default
// RemainderPolicy (Truncate) leaves the trailing length%workers characters
// unscanned. ExtendLast hands them to the last worker instead.
//
// The caller owns every output: the run slice must be pre-sized (len(input)
// entries is always enough) and Zip never reallocates it. Synchronization
// objects are created per call, so concurrent calls are independent.
package pzip
