package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/dendrascience/parallel-zip/version"
	"github.com/google/uuid"
)

type Metadata struct {
	ID        uuid.UUID      `json:"id"`
	Version   string         `json:"pzip_version"`
	CreatedAt time.Time      `json:"created_at"`
	Workers   int            `json:"workers"`
	Remainder string         `json:"remainder"`
	InputSize int            `json:"input_size"`
	Scanned   int            `json:"scanned"`
	RunCount  int            `json:"run_count"`
	Frequency pzip.Frequency `json:"frequency"`
}

// GetVersion returns the current pzip version string.
// It delegates to the version package to get the version information.
func GetVersion() string {
	return version.GetVersion()
}

// NewMetadata describes a compression result. Each call gets a fresh ID.
func NewMetadata(res pzip.Result) Metadata {
	return Metadata{
		ID:        uuid.New(),
		Version:   GetVersion(),
		CreatedAt: time.Now().UTC(),
		Workers:   res.Workers,
		Remainder: res.Remainder.String(),
		InputSize: res.InputSize,
		Scanned:   res.Scanned,
		RunCount:  len(res.Runs),
		Frequency: res.Frequency,
	}
}

// Save writes m as a standalone metadata.pzm sidecar. A path that is an
// existing directory gets MetadataMember appended.
func (m Metadata) Save(path string) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, MetadataMember)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
