// Package cmd provides the command-line interface implementation for pzip.
//
// It uses the Cobra library for command structure and Fang for styling.
// Each subcommand lives in its own file with a NewXxxCmd constructor:
//   - zip: compress a text file in parallel and print or archive the runs
//   - unzip: expand a .pzf archive back into text
//   - validate: check .pzf archives for corruption and consistency
//   - count: print per-letter frequencies of a text file
//   - seed: generate random lowercase input files
//   - version: print build information
//
// The commands are thin wrappers over the pzip and archive packages.
package cmd
