// Package fasta reads FASTA-formatted sequence files, with transparent
// gzip, zstd, and lz4 decompression when opening by path.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/palign/palign/internal/zio"
)

// Record is one FASTA entry. ID is the first whitespace-delimited token of
// the header, Desc the remainder, Seq the concatenated sequence lines.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// ErrFormat wraps a malformed-input failure with its line number.
type ErrFormat struct {
	Line int
	Msg  string
}

func (e *ErrFormat) Error() string {
	return fmt.Sprintf("fasta: line %d: %s", e.Line, e.Msg)
}

// Reader parses FASTA records from a stream.
type Reader struct {
	s    *bufio.Scanner
	line int

	// header of the record currently being assembled; hasPending is false
	// until the first '>' is seen.
	pending    string
	hasPending bool
	done       bool
}

// maxLineBytes bounds one input line; sequence lines in the wild are
// usually wrapped at 60-80 columns but single-line genomes exist.
const maxLineBytes = 64 * 1024 * 1024

// NewReader returns a Reader parsing r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 1024*1024), maxLineBytes)
	return &Reader{s: s}
}

// Read returns the next record, or io.EOF after the last one.
func (r *Reader) Read() (*Record, error) {
	if r.done {
		return nil, io.EOF
	}
	var seq []byte
	for r.s.Scan() {
		r.line++
		line := bytes.TrimRight(r.s.Bytes(), "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			header := strings.TrimSpace(string(line[1:]))
			if r.hasPending {
				rec := r.finish(seq)
				r.pending, r.hasPending = header, true
				return rec, nil
			}
			r.pending, r.hasPending = header, true
			continue
		}
		if !r.hasPending {
			return nil, &ErrFormat{Line: r.line, Msg: "sequence data before first header"}
		}
		seq = append(seq, line...)
	}
	if err := r.s.Err(); err != nil {
		return nil, err
	}
	r.done = true
	if r.hasPending {
		return r.finish(seq), nil
	}
	return nil, io.EOF
}

func (r *Reader) finish(seq []byte) *Record {
	id, desc, _ := strings.Cut(r.pending, " ")
	r.pending, r.hasPending = "", false
	return &Record{ID: id, Desc: strings.TrimSpace(desc), Seq: seq}
}

// File is an open FASTA file.
type File struct {
	*Reader
	rc io.ReadCloser
}

// Open opens a FASTA file for reading, decompressing .gz, .zst, and .lz4
// inputs transparently. "-" reads from stdin.
func Open(path string) (*File, error) {
	rc, err := zio.Open(path)
	if err != nil {
		return nil, err
	}
	return &File{Reader: NewReader(rc), rc: rc}, nil
}

// Close closes the underlying file.
func (f *File) Close() error { return f.rc.Close() }

// ReadAll reads every record of a FASTA file.
func ReadAll(path string) ([]*Record, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var recs []*Record
	for {
		rec, err := f.Read()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}
