package remote

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// CompressionType selects how a cloned file's bytes are encoded on the
// wire.
type CompressionType int

const (
	// CompressionNone means the remote served raw, uncompressed bytes.
	CompressionNone CompressionType = iota
	// CompressionZstd means the remote served a zstd-compressed stream.
	CompressionZstd
	// CompressionGzip means the remote served a gzip-compressed stream.
	CompressionGzip
)

// decompressFile rewrites f in place, replacing its compressed
// contents with the decompressed form. f is left positioned and sized
// correctly either way.
func decompressFile(f *os.File, t CompressionType) error {
	if t == CompressionNone {
		return nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	reader, err := newDecompressReader(f, t)
	if err != nil {
		return err
	}

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := f.Write(decompressed); err != nil {
		return err
	}

	return f.Sync()
}

func newDecompressReader(f *os.File, t CompressionType) (io.ReadCloser, error) {
	switch t {
	case CompressionZstd:
		decoder, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil
	case CompressionGzip:
		return gzip.NewReader(f)
	default:
		return nil, fmt.Errorf("unsupported compression type %d", t)
	}
}
