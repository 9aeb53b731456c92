package cmd

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the pzip CLI.
// It generates random lowercase input for exercising zip.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		length     int
		alphabet   int
		maxRun     int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a random lowercase input file",
		Long: `Generate a file of random lowercase letters for testing pzip.

Characters are drawn from the first --alphabet letters in runs of 1 to
--max-run repeats, so the output compresses. The file ends with a newline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, outputPath, length, alphabet, maxRun, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output file (required)")
	cmd.Flags().IntVarP(&length, "count", "c", 1<<20, "Number of characters to generate")
	cmd.Flags().IntVarP(&alphabet, "alphabet", "a", 26, "Number of distinct letters to use (1-26)")
	cmd.Flags().IntVar(&maxRun, "max-run", 8, "Maximum length of a generated run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(cmd *cobra.Command, outputPath string, length, alphabet, maxRun int, verbose bool) error {
	if alphabet < 1 || alphabet > 26 {
		return fmt.Errorf("--alphabet must be between 1 and 26, got %d", alphabet)
	}
	if maxRun < 1 {
		return fmt.Errorf("--max-run must be at least 1, got %d", maxRun)
	}
	if length < 0 {
		return fmt.Errorf("--count must not be negative, got %d", length)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	written, runs := 0, 0
	for written < length {
		c, err := randInt(alphabet)
		if err != nil {
			return err
		}
		n, err := randInt(maxRun)
		if err != nil {
			return err
		}
		n = min(n+1, length-written)
		for range n {
			w.WriteByte(byte('a' + c))
		}
		written += n
		runs++

		if verbose && runs%100000 == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d/%d characters...\n", written, length)
		}
	}
	w.WriteByte('\n')
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully wrote %d characters in %d generated runs to %s\n", written, runs, outputPath)
	}
	return f.Close()
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
