package archive

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/taigrr/colorhash"
)

// Buckets is the number of store subdirectories archives are spread over.
const Buckets = 1000

// GetHash calculates the SHA-256 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// RunsHash returns the SHA-256 of the encoded runs. Equal run sequences
// always hash the same, regardless of metadata.
func RunsHash(runs []pzip.Run) (string, error) {
	encoded, err := encodeRunsBytes(runs)
	if err != nil {
		return "", err
	}
	return GetHash(bytes.NewReader(encoded))
}

// bucketForHash maps a digest to its store subdirectory, a color hash of
// the digest mod Buckets.
func bucketForHash(hash string) int {
	bucket := int(colorhash.HashString(hash) % Buckets)
	if bucket < 0 {
		bucket = -bucket
	}
	return bucket
}

// StoreNameFromHash builds the "<bucket>-<hash>.pzf" file name for hash.
func StoreNameFromHash(hash string) string {
	return fmt.Sprintf("%d-%s%s", bucketForHash(hash), hash, Extension)
}

// HashFromStoreName extracts the bucket and hash from a store file name.
func HashFromStoreName(name string) (bucket int, hash string, err error) {
	name = strings.TrimSuffix(filepath.Base(name), Extension)
	prefix, hash, ok := strings.Cut(name, "-")
	if !ok || hash == "" {
		return 0, "", ErrInvalidStoreName
	}
	bucket, err = strconv.Atoi(prefix)
	if err != nil || bucket < 0 || bucket >= Buckets {
		return 0, "", ErrInvalidStoreName
	}
	return bucket, hash, nil
}

// StorePath returns where an archive with the given runs lives under dir.
func StorePath(dir string, runs []pzip.Run) (string, error) {
	hash, err := RunsHash(runs)
	if err != nil {
		return "", err
	}
	bucket := strconv.Itoa(bucketForHash(hash))
	return filepath.Join(dir, bucket, StoreNameFromHash(hash)), nil
}

// WriteToStore writes a into the content-addressed store rooted at dir and
// returns its path. If an archive with the same runs already exists it is
// kept and created reports false.
func WriteToStore(dir string, a Archive) (path string, created bool, err error) {
	path, err = StorePath(dir, a.Runs)
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create store bucket: %w", err)
	}
	// Write to a temp name first so a partial archive never has a store name.
	tmp := path + ".tmp"
	if err := (PZF{Path: tmp}).Write(a); err != nil {
		os.Remove(tmp)
		return "", false, err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", false, err
	}
	return path, true, nil
}
