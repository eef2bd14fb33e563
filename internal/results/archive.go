package results

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/talgya/barterlands/internal/engine"
)

// ArchiveWriter streams records to a zstd-compressed JSONL file, one record
// per line.
type ArchiveWriter struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewArchiveWriter creates (or truncates) the archive file at path.
func NewArchiveWriter(path string) (*ArchiveWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &ArchiveWriter{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

// Write appends one value as a JSON line.
func (a *ArchiveWriter) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := a.w.Write(b); err != nil {
		return err
	}
	return a.w.WriteByte('\n')
}

// Close flushes and closes the archive.
func (a *ArchiveWriter) Close() error {
	if err := a.w.Flush(); err != nil {
		return err
	}
	if err := a.enc.Close(); err != nil {
		return err
	}
	return a.f.Close()
}

// ReadArchive decodes all generation records from an archive file.
func ReadArchive(path string) ([]engine.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var records []engine.Record
	scanner := bufio.NewScanner(dec)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var r engine.Record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, scanner.Err()
}
