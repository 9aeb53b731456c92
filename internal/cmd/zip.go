package cmd

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dendrascience/parallel-zip/archive"
	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/spf13/cobra"
)

// NewZipCmd creates and returns the zip subcommand for the pzip CLI.
// It compresses a text file and prints the runs, optionally writing an archive.
func NewZipCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		storePath  string
		metaPath   string
		flags      zipFlags
		quiet      bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Run-length encode a text file in parallel",
		Long: `Run-length encode a file of lowercase letters using parallel workers.

The runs are printed as "a3b1c2", followed by the total run count and the
per-letter frequencies. With --output the result is also written as a .pzf
archive; with --store it is written into a content-addressed archive store.
--metadata writes the archive metadata as a standalone JSON sidecar.

With the default --remainder truncate, the last length%workers characters are
not encoded. Use --remainder extend to give them to the last worker.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runZip(cmd, zipTargets{outputPath, storePath, metaPath}, inputPath, opts, quiet, verbose)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to input text file, or - for stdin (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write a .pzf archive to this path")
	cmd.Flags().StringVar(&storePath, "store", "", "Write a .pzf archive into this content-addressed store directory")
	cmd.Flags().StringVar(&metaPath, "metadata", "", "Write the archive metadata as JSON to this file or directory")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the runs")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.register(cmd, "truncate", "shared")

	cmd.MarkFlagRequired("input")

	return cmd
}

// zipTargets are the optional places a zip result is persisted to.
type zipTargets struct {
	archive  string
	store    string
	metadata string
}

func (t zipTargets) empty() bool {
	return t.archive == "" && t.store == "" && t.metadata == ""
}

func runZip(cmd *cobra.Command, to zipTargets, inputPath string, opts pzip.Options, quiet, verbose bool) error {
	var pzf archive.PZF
	if to.archive != "" {
		var err error
		if pzf, err = archive.NewPZF(to.archive); err != nil {
			return fmt.Errorf("%s: %w", to.archive, err)
		}
	}

	input, err := readInput(cmd, inputPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Zipping %d characters with %d workers (remainder=%s, tally=%s)\n",
			len(input), opts.Workers, opts.Remainder, opts.Tally)
	}

	start := time.Now()
	res, err := pzip.Compress(input, opts)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(out, "Zipped in %s\n", time.Since(start))
	}
	if skipped := res.InputSize - res.Scanned; skipped > 0 {
		log.Printf("Warning: %d trailing characters not encoded (input %d, workers %d)", skipped, res.InputSize, res.Workers)
	}

	if !quiet {
		fmt.Fprintln(out, pzip.Format(res.Runs))
	}
	printSummary(out, res)

	if to.empty() {
		return nil
	}

	a := archive.Archive{Runs: res.Runs, Metadata: archive.NewMetadata(res)}
	if to.archive != "" {
		if err := pzf.Write(a); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		if verbose {
			fmt.Fprintf(out, "Wrote archive %s (id %s)\n", pzf.Path, a.Metadata.ID)
		}
	}
	if to.store != "" {
		path, created, err := archive.WriteToStore(to.store, a)
		if err != nil {
			return fmt.Errorf("failed to write to store: %w", err)
		}
		if created {
			fmt.Fprintf(out, "Stored %s\n", path)
		} else {
			fmt.Fprintf(out, "Already stored %s\n", path)
		}
	}
	if to.metadata != "" {
		if err := a.Metadata.Save(to.metadata); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
		if verbose {
			fmt.Fprintf(out, "Wrote metadata %s\n", to.metadata)
		}
	}
	return nil
}

func printSummary(w io.Writer, res pzip.Result) {
	fmt.Fprintf(w, "Total runs: %d\n", len(res.Runs))
	fmt.Fprintf(w, "Characters encoded: %d of %d\n", res.Scanned, res.InputSize)
	printFrequency(w, &res.Frequency)
}

func printFrequency(w io.Writer, f *pzip.Frequency) {
	for i, n := range f {
		if n > 0 {
			fmt.Fprintf(w, "  %c: %d\n", 'a'+i, n)
		}
	}
}
