package archive

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/dendrascience/parallel-zip/pzip"
)

// EncodeRuns writes runs in the runs.pzr binary form.
func EncodeRuns(w io.Writer, runs []pzip.Run) error {
	bw := bufio.NewWriter(w)
	var buf [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(buf[:], uint64(len(runs)))
	if _, err := bw.Write(buf[:n]); err != nil {
		return err
	}
	for _, r := range runs {
		if err := bw.WriteByte(r.Char); err != nil {
			return err
		}
		n = binary.PutUvarint(buf[:], uint64(r.Count))
		if _, err := bw.Write(buf[:n]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeRuns reads the runs.pzr binary form. Every decoded run must be valid.
func DecodeRuns(r io.Reader) ([]pzip.Run, error) {
	br := bufio.NewReader(r)
	count, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("%w: reading run count: %w", ErrCorruptRuns, err)
	}

	runs := make([]pzip.Run, 0, min(count, 1<<16))
	for i := range count {
		c, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: run %d: %w", ErrCorruptRuns, i, err)
		}
		n, err := binary.ReadUvarint(br)
		if err != nil {
			return nil, fmt.Errorf("%w: run %d: %w", ErrCorruptRuns, i, err)
		}
		run := pzip.Run{Char: c, Count: int(n)}
		if !run.Valid() {
			return nil, fmt.Errorf("%w: run %d (%q, %d)", ErrCorruptRuns, i, c, n)
		}
		runs = append(runs, run)
	}
	if _, err := br.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after %d runs", ErrCorruptRuns, count)
	}
	return runs, nil
}

func encodeRunsBytes(runs []pzip.Run) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeRuns(&buf, runs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
