package cmd

import (
	"github.com/dendrascience/parallel-zip/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the pzip CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pzip",
		Short: "pzip - parallel run-length encoding of lowercase text",
		Long: `pzip run-length encodes lowercase text using a fixed number of parallel workers.

The input is split into equal chunks, one per worker. Runs are maximal within a
chunk only: a run crossing a chunk boundary is reported as two entries, so the
output depends on the worker count.

Use subcommands to perform different operations:
  - zip: Compress a text file and print or archive the runs
  - unzip: Expand a .pzf archive back into text
  - validate: Validate .pzf archives for corruption and consistency
  - count: Print per-letter frequencies
  - seed: Generate random test input`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupCompression := "compression"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupCompression,
		Title: "Compression",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	zipCmd := NewZipCmd()
	unzipCmd := NewUnzipCmd()
	validateCmd := NewValidateCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	zipCmd.GroupID = groupCompression
	unzipCmd.GroupID = groupCompression
	validateCmd.GroupID = groupUtilities
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(unzipCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
