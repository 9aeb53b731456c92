package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/parallel-zip/archive"
	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/spf13/cobra"
)

// NewUnzipCmd creates and returns the unzip subcommand for the pzip CLI.
// It expands a .pzf archive back into text.
func NewUnzipCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "unzip",
		Short: "Expand a .pzf archive back into text",
		Long: `Expand the runs stored in a .pzf archive back into text.

The expanded text covers only the characters that were encoded. If the archive
was written with --remainder truncate and the input length was not a multiple
of the worker count, the trailing characters are not recoverable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnzip(cmd, inputPath, outputPath, verbose)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to .pzf archive (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the text to this path instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("input")

	return cmd
}

func runUnzip(cmd *cobra.Command, inputPath, outputPath string, verbose bool) error {
	pzf, err := archive.NewPZF(inputPath)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	a, err := pzf.Read()
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	out := cmd.OutOrStdout()
	if verbose {
		m := a.Metadata
		fmt.Fprintf(out, "Archive %s: %d runs, %d workers, %d of %d characters encoded (pzip %s)\n",
			m.ID, m.RunCount, m.Workers, m.Scanned, m.InputSize, m.Version)
	}
	if m := a.Metadata; m.Scanned < m.InputSize {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d trailing characters were not encoded\n", m.InputSize-m.Scanned)
	}

	if outputPath == "" {
		return writeText(out, a.Runs)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()
	if err := writeText(f, a.Runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return f.Close()
}

// writeText expands runs into w followed by a newline.
func writeText(w io.Writer, runs []pzip.Run) error {
	if _, err := pzip.ExpandTo(w, runs); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
