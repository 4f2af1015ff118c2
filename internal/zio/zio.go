// Package zio opens local files with transparent decompression. Compression
// is detected by filename suffix (.gz, .zst, .lz4) with a gzip magic-number
// fallback for suffix-less streams.
package zio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type decoderCloser struct{ *zstd.Decoder }

func (d decoderCloser) Close() error {
	d.Decoder.Close()
	return nil
}

// Open opens path for reading, decompressing gzip, zstd, and lz4 streams
// transparently. "-" reads from stdin (uncompressed).
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &readCloser{Reader: zr, closers: []io.Closer{decoderCloser{zr}, f}}, nil
	case strings.HasSuffix(path, ".lz4"):
		return &readCloser{Reader: lz4.NewReader(f), closers: []io.Closer{f}}, nil
	}

	// Sniff the gzip magic so .gz-less gzip streams still work.
	var sig [2]byte
	n, _ := io.ReadFull(f, sig[:])
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") || (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) {
		gr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &readCloser{Reader: gr, closers: []io.Closer{gr, f}}, nil
	}
	return f, nil
}
