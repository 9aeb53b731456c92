package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/dendrascience/parallel-zip/pzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, input string, workers int) Archive {
	t.Helper()
	res, err := pzip.Compress([]byte(input), pzip.Options{Workers: workers})
	require.NoError(t, err)
	return Archive{Runs: res.Runs, Metadata: NewMetadata(res)}
}

func TestNewPZF_ExtensionCheck(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "valid .pzf extension", path: "out.pzf"},
		{name: "valid .pzf with path", path: "/some/path/out.pzf"},
		{name: "missing dot in extension", path: "outpzf", wantErr: true},
		{name: "wrong extension", path: "out.zip", wantErr: true},
		{name: "no extension", path: "out", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPZF(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPZF(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if tt.wantErr && err != ErrNotPZFExtension {
				t.Errorf("NewPZF(%q) error = %v, want ErrNotPZFExtension", tt.path, err)
			}
		})
	}
}

func TestRunsCodec(t *testing.T) {
	tests := []struct {
		name string
		runs []pzip.Run
	}{
		{name: "empty", runs: []pzip.Run{}},
		{name: "chunked", runs: []pzip.Run{{Char: 'a', Count: 3}, {Char: 'c', Count: 2}, {Char: 'c', Count: 2}}},
		{name: "long run", runs: []pzip.Run{{Char: 'z', Count: 1 << 20}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, EncodeRuns(&buf, tt.runs))
			got, err := DecodeRuns(&buf)
			require.NoError(t, err)
			assert.Equal(t, tt.runs, got)
		})
	}
}

func TestDecodeRuns_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty stream", data: nil},
		{name: "truncated run", data: []byte{2, 'a', 3}},
		{name: "zero count", data: []byte{1, 'a', 0}},
		{name: "bad character", data: []byte{1, 'A', 1}},
		{name: "trailing data", data: []byte{1, 'a', 1, 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRuns(bytes.NewReader(tt.data))
			assert.ErrorIs(t, err, ErrCorruptRuns)
		})
	}
}

func TestPZF_WriteRead(t *testing.T) {
	dir := t.TempDir()
	a := compress(t, "aaabccccd", 3)

	p, err := NewPZF(filepath.Join(dir, "out.pzf"))
	require.NoError(t, err)
	require.NoError(t, p.Write(a))

	got, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, a.Runs, got.Runs)
	assert.Equal(t, a.Metadata.ID, got.Metadata.ID)
	assert.Equal(t, 5, got.Metadata.RunCount)
	assert.Equal(t, 3, got.Metadata.Workers)
	assert.Equal(t, "truncate", got.Metadata.Remainder)
	assert.Equal(t, a.Metadata.Frequency, got.Metadata.Frequency)
	assert.True(t, a.Metadata.CreatedAt.Equal(got.Metadata.CreatedAt))

	n, err := p.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Empty(t, Validate(p.Path))
}

func TestPZF_ReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := PZF{Path: dir}.Read()
	assert.ErrorIs(t, err, ErrExpectedFile)

	_, err = PZF{Path: filepath.Join(dir, "missing.pzf")}.Read()
	assert.True(t, os.IsNotExist(err))

	// An archive without the runs member.
	path := filepath.Join(dir, "partial.pzf")
	writeZip(t, path, map[string]string{MetadataMember: "{}"})
	_, err = PZF{Path: path}.Read()
	assert.ErrorIs(t, err, ErrMissingMember)
}

func writeZip(t *testing.T, path string, members map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range members {
		mw, err := w.Create(name)
		require.NoError(t, err)
		_, err = mw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	good := compress(t, "zzzz", 2)

	badCount := compress(t, "zzzz", 2)
	badCount.Metadata.RunCount = 7

	badFreq := compress(t, "aabb", 2)
	badFreq.Metadata.Frequency[0] = 9

	badWorkers := compress(t, "ab", 1)
	badWorkers.Metadata.Workers = 0

	tests := []struct {
		name      string
		archive   *Archive
		members   map[string]string
		wantCount int
		wantText  string
	}{
		{name: "valid", archive: &good},
		{name: "run count mismatch", archive: &badCount, wantCount: 1, wantText: "run count mismatch"},
		{name: "frequency mismatch", archive: &badFreq, wantCount: 2, wantText: "Frequency"},
		{name: "invalid workers", archive: &badWorkers, wantCount: 1, wantText: "worker count"},
		{name: "empty zip", members: map[string]string{}, wantCount: 2, wantText: "Missing"},
		{name: "corrupt runs", members: map[string]string{MetadataMember: "{}", RunsMember: "\x01A\x01"}, wantCount: 2, wantText: "Failed to parse runs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+Extension)
			if tt.archive != nil {
				require.NoError(t, PZF{Path: path}.Write(*tt.archive))
			} else {
				writeZip(t, path, tt.members)
			}

			problems := Validate(path)
			assert.Len(t, problems, tt.wantCount, "problems: %v", problems)
			if tt.wantText != "" {
				assert.Contains(t, strings.Join(problems, "\n"), tt.wantText)
			}
		})
	}

	problems := Validate(filepath.Join(dir, "nope.pzf"))
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "Failed to open archive")
}

func TestStoreName(t *testing.T) {
	hash, err := RunsHash([]pzip.Run{{Char: 'a', Count: 1}})
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	name := StoreNameFromHash(hash)
	assert.True(t, strings.HasSuffix(name, "-"+hash+Extension), name)

	bucket, got, err := HashFromStoreName(name)
	require.NoError(t, err)
	assert.Equal(t, hash, got)
	assert.GreaterOrEqual(t, bucket, 0)
	assert.Less(t, bucket, Buckets)

	// Stable across calls.
	assert.Equal(t, name, StoreNameFromHash(hash))

	for _, bad := range []string{"abc.pzf", "x-abc.pzf", "1000-abc.pzf", "12-.pzf"} {
		_, _, err := HashFromStoreName(bad)
		assert.ErrorIs(t, err, ErrInvalidStoreName, bad)
	}
}

func TestWriteToStore_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	first := compress(t, "aaabccccd", 3)
	second := compress(t, "aaabccccd", 3)
	require.NotEqual(t, first.Metadata.ID, second.Metadata.ID)

	path1, created, err := WriteToStore(dir, first)
	require.NoError(t, err)
	assert.True(t, created)

	path2, created, err := WriteToStore(dir, second)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, path1, path2)

	got, err := PZF{Path: path1}.Read()
	require.NoError(t, err)
	assert.Equal(t, first.Metadata.ID, got.Metadata.ID)

	other, _, err := WriteToStore(dir, compress(t, "aaabccccd", 1))
	require.NoError(t, err)
	assert.NotEqual(t, path1, other)
}

func TestStorePath_UsesNameBucket(t *testing.T) {
	dir := t.TempDir()
	runs := []pzip.Run{{Char: 'a', Count: 3}, {Char: 'b', Count: 1}}

	path, err := StorePath(dir, runs)
	require.NoError(t, err)

	bucket, hash, err := HashFromStoreName(path)
	require.NoError(t, err)
	want, err := RunsHash(runs)
	require.NoError(t, err)
	assert.Equal(t, want, hash)
	assert.Equal(t, filepath.Join(dir, strconv.Itoa(bucket)), filepath.Dir(path))
}

func TestMetadata_Save(t *testing.T) {
	dir := t.TempDir()
	m := compress(t, "ab", 1).Metadata

	// A directory gets the member name appended.
	require.NoError(t, m.Save(dir))
	data, err := os.ReadFile(filepath.Join(dir, MetadataMember))
	require.NoError(t, err)
	var got Metadata
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, m.Frequency, got.Frequency)

	// Any other path is written as given.
	path := filepath.Join(dir, "sidecar.json")
	require.NoError(t, m.Save(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// rewriteArchive writes an archive with the given runs and metadata,
// bypassing the consistency checks in Read.
func rewriteArchive(t *testing.T, path string, runs []pzip.Run, m Metadata) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeRuns(&buf, runs))
	meta, err := json.Marshal(m)
	require.NoError(t, err)
	writeZip(t, path, map[string]string{RunsMember: buf.String(), MetadataMember: string(meta)})
}

func TestPZF_ReadRejectsInconsistentRuns(t *testing.T) {
	dir := t.TempDir()
	base := compress(t, "aaabccccd", 3)
	huge := []pzip.Run{{Char: 'a', Count: 1 << 62}, {Char: 'a', Count: 1 << 62}}

	overflow := base.Metadata
	overflow.RunCount = 2

	scanned := base.Metadata
	scanned.Scanned = 1 << 40

	count := base.Metadata
	count.RunCount = 4

	tests := []struct {
		name     string
		runs     []pzip.Run
		meta     Metadata
		wantText string
	}{
		{name: "overflowing total", runs: huge, meta: overflow, wantText: "Invalid run lengths"},
		{name: "scanned mismatch", runs: base.Runs, meta: scanned, wantText: "Run total mismatch"},
		{name: "run count mismatch", runs: base.Runs, meta: count, wantText: "run count mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+Extension)
			rewriteArchive(t, path, tt.runs, tt.meta)

			_, err := PZF{Path: path}.Read()
			assert.ErrorIs(t, err, ErrCorruptRuns)

			problems := Validate(path)
			assert.Contains(t, strings.Join(problems, "\n"), tt.wantText)
		})
	}
}
