package cmd

import (
	"fmt"

	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the pzip CLI.
// It prints per-letter frequencies of a text file.
func NewCountCmd() *cobra.Command {
	var (
		inputPath string
		flags     zipFlags
	)

	cmd := &cobra.Command{
		Use:   "count [PATH]",
		Short: "Count letter frequencies in a text file",
		Long: `Count how often each letter occurs in a file of lowercase letters.

This runs the same parallel scan as zip but only reports the frequency table.
By default the whole file is counted (--remainder extend).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				inputPath = args[0]
			}
			if inputPath == "" {
				return fmt.Errorf("an input path is required")
			}
			opts, err := flags.options()
			if err != nil {
				return err
			}
			return runCount(cmd, inputPath, opts)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to input text file, or - for stdin")
	flags.register(cmd, "extend", "local")

	return cmd
}

func runCount(cmd *cobra.Command, inputPath string, opts pzip.Options) error {
	input, err := readInput(cmd, inputPath)
	if err != nil {
		return err
	}
	res, err := pzip.Compress(input, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total characters: %d\n", res.Frequency.Total())
	printFrequency(out, &res.Frequency)
	return nil
}
