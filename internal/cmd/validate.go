package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dendrascience/parallel-zip/archive"
	"github.com/spf13/cobra"
)

var errValidationFailed = errors.New("validation failed")

// NewValidateCmd creates and returns the validate subcommand for the pzip CLI.
// It provides archive validation and consistency checking functionality.
func NewValidateCmd() *cobra.Command {
	var (
		path    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "validate [PATH]",
		Short: "Validate .pzf archives for corruption and consistency",
		Long: `Validate .pzf archives for corruption and consistency issues.

PATH may be a single archive or a directory, which is searched recursively.
For each archive this checks that both members are present and decodable, that
every run is well formed, and that the run count and frequency table recorded
in the metadata match the runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				path = args[0]
			}
			return runValidate(cmd, path, verbose)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", ".", "Archive or directory to validate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runValidate(cmd *cobra.Command, path string, verbose bool) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("path does not exist: %s", path)
	}

	out := cmd.OutOrStdout()
	if verbose {
		fmt.Fprintf(out, "Validating archives under %s\n", path)
	}

	var totalErrors, totalArchives int
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(p) != archive.Extension {
			return nil
		}

		totalArchives++
		if verbose {
			fmt.Fprintf(out, "Validating archive: %s\n", p)
		}

		problems := archive.Validate(p)
		if len(problems) > 0 {
			fmt.Fprintf(out, "Archive %s has %d errors:\n", p, len(problems))
			for _, problem := range problems {
				fmt.Fprintf(out, "  - %s\n", problem)
			}
			totalErrors += len(problems)
		} else if verbose {
			runs, err := archive.PZF{Path: p}.CountRuns()
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", p, err)
			}
			fmt.Fprintf(out, "Archive %s is valid (%d runs)\n", p, runs)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error walking %s: %w", path, err)
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Archives checked: %d\n", totalArchives)
	fmt.Fprintf(out, "  Total errors: %d\n", totalErrors)

	if totalErrors > 0 {
		return fmt.Errorf("%w: %d errors in %d archives", errValidationFailed, totalErrors, totalArchives)
	}
	return nil
}
