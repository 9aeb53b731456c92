// Package main provides the pzip command-line interface.
//
// pzip run-length encodes lowercase text with a fixed number of parallel
// workers. Each worker encodes one equal-size chunk of the input, the results
// are reassembled in chunk order, and a per-letter frequency table is kept
// across all workers.
//
// The main binary supports multiple subcommands:
//   - zip: Encode a text file and print or archive the runs
//   - unzip: Expand a .pzf archive back into text
//   - validate: Validate .pzf archives for corruption and consistency
//   - count: Print per-letter frequencies
//   - seed: Generate random test input
//   - version: Print build information
package main
