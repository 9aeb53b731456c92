package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/spf13/cobra"
)

// zipFlags are the pzip.Options flags shared by zip and count.
type zipFlags struct {
	workers   int
	remainder string
	tally     string
}

func (f *zipFlags) register(cmd *cobra.Command, defaultRemainder, defaultTally string) {
	cmd.Flags().IntVarP(&f.workers, "workers", "n", runtime.NumCPU(), "Number of parallel workers")
	cmd.Flags().StringVar(&f.remainder, "remainder", defaultRemainder, "What to do with length%workers trailing characters: truncate or extend")
	cmd.Flags().StringVar(&f.tally, "tally", defaultTally, "Frequency tally strategy: shared (lock per character) or local (merge per worker)")
}

func (f zipFlags) options() (pzip.Options, error) {
	remainder, err := pzip.ParseRemainderPolicy(f.remainder)
	if err != nil {
		return pzip.Options{}, err
	}
	tally, err := pzip.ParseTallyMode(f.tally)
	if err != nil {
		return pzip.Options{}, err
	}
	if f.workers < 1 {
		return pzip.Options{}, fmt.Errorf("--workers %d: %w", f.workers, pzip.ErrInvalidWorkerCount)
	}
	return pzip.Options{Workers: f.workers, Remainder: remainder, Tally: tally}, nil
}

// readInput reads path, or stdin for "-", and strips one trailing line
// ending so files written by editors and seed are accepted.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	return data, nil
}
