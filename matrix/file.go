package matrix

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/palign/palign/internal/zio"
)

// FromFile parses a substitution matrix from a file. Gzip, zstd, and lz4
// compressed files are read transparently.
//
// The format follows the common row/column labeled layout:
//
//   - lines starting with '#' are comments,
//   - the first non-comment line is the alphabet row (single-character
//     columns, optionally ending in a non-alphabet wildcard symbol such as
//     '*'),
//   - each following line holds one score row, optionally prefixed with a
//     row label character.
//
// A file whose row labels repeat the alphabet in order is loaded as a square
// matrix; any other labeling (for example a representative query sequence)
// is loaded as a position-specific matrix with one row per line.
func FromFile(path string) (*Matrix, error) {
	rc, err := zio.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var (
		header   []byte
		wildcard bool // header ends in a wildcard column
		labels   []byte
		rows     [][]int
		lineNum  int
	)

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if header == nil {
			for _, f := range fields {
				if len(f) != 1 {
					return nil, &ErrParse{Path: path, Line: lineNum, Msg: fmt.Sprintf("alphabet column %q is not a single symbol", f)}
				}
				header = append(header, f[0])
			}
			if len(header) == 0 {
				return nil, &ErrParse{Path: path, Line: lineNum, Msg: "empty alphabet row"}
			}
			if last := header[len(header)-1]; !isAlnum(last) {
				wildcard = true
			}
			continue
		}

		var label byte
		if len(fields) > 0 && len(fields[0]) == 1 && !isNumeric(fields[0]) {
			label = fields[0][0]
			fields = fields[1:]
		}
		if len(fields) != len(header) {
			return nil, &ErrParse{Path: path, Line: lineNum, Msg: fmt.Sprintf("expected %d values, got %d", len(header), len(fields))}
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, &ErrParse{Path: path, Line: lineNum, Msg: fmt.Sprintf("invalid score %q", f), cause: err}
			}
			row[i] = v
		}
		labels = append(labels, label)
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if header == nil {
		return nil, &ErrParse{Path: path, Line: lineNum, Msg: "missing alphabet row"}
	}
	if len(rows) == 0 {
		return nil, &ErrParse{Path: path, Line: lineNum, Msg: "no score rows"}
	}

	if isSquareLayout(header, labels) {
		return squareFromRows(path, header, wildcard, rows)
	}
	return pssmFromRows(path, header, wildcard, rows)
}

// isSquareLayout reports whether the row labels repeat the alphabet header in
// order (unlabeled rows of matching count also qualify).
func isSquareLayout(header, labels []byte) bool {
	if len(labels) != len(header) {
		return false
	}
	for i, l := range labels {
		if l != 0 && l != header[i] {
			return false
		}
	}
	return true
}

func squareFromRows(path string, header []byte, wildcard bool, rows [][]int) (*Matrix, error) {
	alphabet := header
	if wildcard {
		alphabet = header[:len(header)-1]
	}
	if err := checkAlphabet(alphabet); err != nil {
		return nil, &ErrParse{Path: path, Line: 0, Msg: "invalid alphabet", cause: err}
	}
	m := newSquare("", alphabet, ProvenanceFile)
	min := rows[0][0]
	for _, row := range rows {
		for _, v := range row {
			if v < min {
				min = v
			}
		}
	}
	for i := 0; i < m.cols; i++ {
		for j := 0; j < m.cols; j++ {
			switch {
			case i < len(header) && j < len(header):
				m.values[i*m.cols+j] = rows[i][j]
			default:
				// no wildcard column in file: score out-of-alphabet
				// symbols at the observed minimum
				m.values[i*m.cols+j] = min
			}
		}
	}
	return m, nil
}

func pssmFromRows(path string, header []byte, wildcard bool, rows [][]int) (*Matrix, error) {
	alphabet := header
	if wildcard {
		alphabet = header[:len(header)-1]
	}
	values := make([]int, 0, len(rows)*len(alphabet))
	for _, row := range rows {
		values = append(values, row[:len(alphabet)]...)
	}
	m, err := NewPSSM(alphabet, values, len(rows))
	if err != nil {
		return nil, &ErrParse{Path: path, Line: 0, Msg: "invalid position-specific matrix", cause: err}
	}
	m.provenance = ProvenanceFile
	return m, nil
}

func isAlnum(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
