package archive

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dendrascience/parallel-zip/pzip"
)

const (
	Extension      = ".pzf"
	RunsMember     = "runs.pzr"
	MetadataMember = "metadata.pzm"
)

// PZF is a handle to a .pzf archive on disk.
type PZF struct {
	Path string
}

// NewPZF checks the extension of path.
func NewPZF(path string) (PZF, error) {
	if filepath.Ext(path) != Extension {
		return PZF{}, ErrNotPZFExtension
	}
	return PZF{Path: path}, nil
}

// Archive is the decoded content of a .pzf file.
type Archive struct {
	Runs     []pzip.Run
	Metadata Metadata
}

// Write creates the archive at p.Path, replacing any existing file.
func (p PZF) Write(a Archive) (err error) {
	file, err := os.Create(p.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()

	w := zip.NewWriter(file)
	mw, err := w.Create(MetadataMember)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(mw).Encode(a.Metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	rw, err := w.Create(RunsMember)
	if err != nil {
		return err
	}
	if err := EncodeRuns(rw, a.Runs); err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}
	return w.Close()
}

// Read opens and decodes the archive at p.Path.
func (p PZF) Read() (Archive, error) {
	info, err := os.Stat(p.Path)
	if err != nil {
		return Archive{}, err
	}
	if info.IsDir() {
		return Archive{}, ErrExpectedFile
	}
	zrc, err := zip.OpenReader(p.Path)
	if err != nil {
		return Archive{}, err
	}
	defer zrc.Close()

	var a Archive
	if err := decodeMember(&zrc.Reader, MetadataMember, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&a.Metadata)
	}); err != nil {
		return Archive{}, err
	}
	if err := decodeMember(&zrc.Reader, RunsMember, func(r io.Reader) (err error) {
		a.Runs, err = DecodeRuns(r)
		return err
	}); err != nil {
		return Archive{}, err
	}
	if err := checkRuns(a); err != nil {
		return Archive{}, err
	}
	return a, nil
}

// checkRuns rejects archives whose runs disagree with the run count and
// scanned size recorded in their metadata.
func checkRuns(a Archive) error {
	total, err := pzip.Length(a.Runs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptRuns, err)
	}
	if total != a.Metadata.Scanned {
		return fmt.Errorf("%w: runs describe %d characters, metadata scanned %d", ErrCorruptRuns, total, a.Metadata.Scanned)
	}
	if len(a.Runs) != a.Metadata.RunCount {
		return fmt.Errorf("%w: %d runs, metadata run count %d", ErrCorruptRuns, len(a.Runs), a.Metadata.RunCount)
	}
	return nil
}

// CountRuns returns the run count recorded in the archive metadata without
// decoding the runs.
func (p PZF) CountRuns() (int, error) {
	zrc, err := zip.OpenReader(p.Path)
	if err != nil {
		return 0, err
	}
	defer zrc.Close()
	var m Metadata
	err = decodeMember(&zrc.Reader, MetadataMember, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&m)
	})
	return m.RunCount, err
}

func decodeMember(zr *zip.Reader, name string, decode func(io.Reader) error) error {
	f, err := zr.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingMember, name)
	}
	if err != nil {
		return err
	}
	defer f.Close()
	if err := decode(f); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Validate checks an archive for structural and consistency errors. It
// returns one message per problem found; an empty slice means the archive
// is valid.
func Validate(path string) []string {
	var problems []string

	zrc, err := zip.OpenReader(path)
	if err != nil {
		return []string{fmt.Sprintf("Failed to open archive: %v", err)}
	}
	defer zrc.Close()

	var (
		meta                Metadata
		runs                []pzip.Run
		foundMeta, foundRun bool
		hasMeta, hasRuns    bool
	)
	for _, f := range zrc.File {
		switch f.Name {
		case MetadataMember:
			foundMeta = true
			err := decodeMember(&zrc.Reader, f.Name, func(r io.Reader) error {
				return json.NewDecoder(r).Decode(&meta)
			})
			if err != nil {
				problems = append(problems, fmt.Sprintf("Failed to parse metadata: %v", err))
				continue
			}
			hasMeta = true
		case RunsMember:
			foundRun = true
			err := decodeMember(&zrc.Reader, f.Name, func(r io.Reader) (err error) {
				runs, err = DecodeRuns(r)
				return err
			})
			if err != nil {
				problems = append(problems, fmt.Sprintf("Failed to parse runs: %v", err))
				continue
			}
			hasRuns = true
		}
	}

	if !foundMeta {
		problems = append(problems, fmt.Sprintf("Missing metadata (%s)", MetadataMember))
	}
	if !foundRun {
		problems = append(problems, fmt.Sprintf("Missing runs (%s)", RunsMember))
	}

	if hasMeta {
		if meta.Workers < 1 {
			problems = append(problems, fmt.Sprintf("Invalid worker count: %d", meta.Workers))
		}
		if meta.Scanned > meta.InputSize {
			problems = append(problems, fmt.Sprintf("Scanned size %d exceeds input size %d", meta.Scanned, meta.InputSize))
		}
		if total := meta.Frequency.Total(); total != meta.Scanned {
			problems = append(problems, fmt.Sprintf("Frequency total mismatch: expected %d, got %d", meta.Scanned, total))
		}
	}

	if hasMeta && hasRuns {
		total, err := pzip.Length(runs)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Invalid run lengths: %v", err))
		} else if total != meta.Scanned {
			problems = append(problems, fmt.Sprintf("Run total mismatch: metadata scanned %d, runs describe %d",
				meta.Scanned, total))
		}
		if len(runs) != meta.RunCount {
			problems = append(problems, fmt.Sprintf("Metadata run count mismatch: expected %d, got %d",
				meta.RunCount, len(runs)))
		}
		if got := pzip.FrequencyOf(runs); got != meta.Frequency {
			problems = append(problems, fmt.Sprintf("Frequency mismatch: metadata has %q, runs give %q",
				meta.Frequency.String(), got.String()))
		}
	}

	return problems
}
