// Package matrix provides scoring models for pairwise sequence alignment.
//
// A Matrix is either a square substitution matrix over an alphabet (every
// symbol scored against every other symbol) or a position-specific scoring
// matrix (PSSM) keyed by query position and alphabet symbol. Matrices are
// created from builtin tables, from an alphabet plus match/mismatch scores,
// from explicit PSSM values, or by parsing a matrix file.
//
// A published Matrix is intended to be shared read-only across profiles and
// aligners. Mutating a matrix after a profile has been built from it leads to
// stale encodings; treat a matrix as frozen once shared.
package matrix

import (
	"bytes"
	"fmt"
)

// Provenance records how a matrix was created. It distinguishes matrices
// copied out of the builtin registry from user-owned allocations.
type Provenance uint8

const (
	// ProvenanceBuiltin marks a matrix obtained from the builtin registry.
	ProvenanceBuiltin Provenance = iota
	// ProvenanceCustom marks a square matrix built from an alphabet and
	// match/mismatch scores.
	ProvenanceCustom
	// ProvenancePSSM marks a position-specific scoring matrix.
	ProvenancePSSM
	// ProvenanceFile marks a matrix parsed from a file.
	ProvenanceFile
)

// String returns the string representation of a Provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceBuiltin:
		return "builtin"
	case ProvenanceCustom:
		return "custom"
	case ProvenancePSSM:
		return "pssm"
	case ProvenanceFile:
		return "file"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// Matrix is a substitution cost model. The zero value is not usable; use one
// of the constructors.
//
// Square matrices hold (dimension+1)^2 values: one row and column per
// alphabet symbol plus a trailing wildcard row/column that scores any symbol
// outside the alphabet. PSSMs hold rows*(dimension+1) values, one row per
// query position.
type Matrix struct {
	name       string
	alphabet   []byte
	index      [256]int16 // symbol -> column index; unmapped -> wildcard
	dim        int        // alphabet size; valid mutation range is [0, dim)
	cols       int        // dim + 1 (wildcard column)
	rows       int        // == cols for square; query length for PSSM
	values     []int      // rows*cols, row-major
	pssm       bool
	provenance Provenance
}

// New creates a square matrix from an alphabet and match/mismatch scores.
// The alphabet must be non-empty and free of duplicate symbols. Match is
// placed on the diagonal, mismatch everywhere else; the wildcard row and
// column take the mismatch score.
func New(alphabet []byte, match, mismatch int) (*Matrix, error) {
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}
	m := newSquare("", alphabet, ProvenanceCustom)
	for i := 0; i < m.cols; i++ {
		for j := 0; j < m.cols; j++ {
			if i == j && i < m.dim {
				m.values[i*m.cols+j] = match
			} else {
				m.values[i*m.cols+j] = mismatch
			}
		}
	}
	return m, nil
}

// NewPSSM creates a position-specific scoring matrix. Values are row-major
// with one row per query position and one column per alphabet symbol; the
// value count must equal rows*len(alphabet). The wildcard column of each row
// takes the row minimum.
func NewPSSM(alphabet []byte, values []int, rows int) (*Matrix, error) {
	if err := checkAlphabet(alphabet); err != nil {
		return nil, err
	}
	if rows <= 0 || len(values) != rows*len(alphabet) {
		return nil, &ErrDimensionMismatch{Rows: rows, Alphabet: len(alphabet), Values: len(values)}
	}
	m := &Matrix{
		alphabet:   append([]byte(nil), alphabet...),
		dim:        len(alphabet),
		cols:       len(alphabet) + 1,
		rows:       rows,
		pssm:       true,
		provenance: ProvenancePSSM,
	}
	m.buildIndex()
	m.values = make([]int, rows*m.cols)
	for r := 0; r < rows; r++ {
		min := values[r*m.dim]
		for c := 0; c < m.dim; c++ {
			v := values[r*m.dim+c]
			m.values[r*m.cols+c] = v
			if v < min {
				min = v
			}
		}
		m.values[r*m.cols+m.dim] = min
	}
	return m, nil
}

// ToPSSM converts a square matrix into a PSSM against the given query: row i
// of the result is the square matrix row of query symbol i.
func (m *Matrix) ToPSSM(query []byte) (*Matrix, error) {
	if m.pssm {
		return nil, ErrNotSquare
	}
	if len(query) == 0 {
		return nil, ErrEmptyQuery
	}
	values := make([]int, 0, len(query)*m.dim)
	for _, q := range query {
		row := int(m.index[q])
		for c := 0; c < m.dim; c++ {
			values = append(values, m.values[row*m.cols+c])
		}
	}
	return NewPSSM(m.alphabet, values, len(query))
}

// Name returns the registry name for builtin matrices, or "" otherwise.
func (m *Matrix) Name() string { return m.name }

// Alphabet returns the ordered alphabet, excluding the wildcard symbol.
func (m *Matrix) Alphabet() []byte { return append([]byte(nil), m.alphabet...) }

// Dimension returns the alphabet size. SetValue accepts indices in
// [0, Dimension()).
func (m *Matrix) Dimension() int { return m.dim }

// Rows returns the number of value rows: Dimension()+1 for square matrices,
// the query length for PSSMs.
func (m *Matrix) Rows() int { return m.rows }

// IsPSSM reports whether the matrix is position-specific.
func (m *Matrix) IsPSSM() bool { return m.pssm }

// Provenance returns how the matrix was created.
func (m *Matrix) Provenance() Provenance { return m.provenance }

// Index returns the column index of a symbol. Symbols outside the alphabet
// map to the wildcard column.
func (m *Matrix) Index(b byte) int { return int(m.index[b]) }

// Value returns the score at (row, col).
func (m *Matrix) Value(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, &ErrIndexOutOfBounds{Row: row, Col: col, Dimension: m.dim}
	}
	return m.values[row*m.cols+col], nil
}

// SetValue mutates the score at (row, col). Both indices must be within
// [0, Dimension()); out-of-range requests fail without mutating state.
// Builtin matrices are copies of the registry tables, so mutating one never
// alters the registry.
func (m *Matrix) SetValue(row, col, value int) error {
	if row < 0 || row >= m.dim || col < 0 || col >= m.dim {
		return &ErrIndexOutOfBounds{Row: row, Col: col, Dimension: m.dim}
	}
	if m.pssm && row >= m.rows {
		return &ErrIndexOutOfBounds{Row: row, Col: col, Dimension: m.rows}
	}
	m.values[row*m.cols+col] = value
	return nil
}

// Score returns the substitution score for aligning query symbol q at query
// position qi against reference symbol r. Square matrices ignore qi; PSSMs
// ignore q.
func (m *Matrix) Score(qi int, q, r byte) int {
	if m.pssm {
		return m.values[qi*m.cols+int(m.index[r])]
	}
	return m.values[int(m.index[q])*m.cols+int(m.index[r])]
}

// ScoreIndexed is Score with a pre-encoded query row index, as produced by
// profile encoding. For PSSMs the row index is the query position itself.
func (m *Matrix) ScoreIndexed(qrow int, r byte) int {
	return m.values[qrow*m.cols+int(m.index[r])]
}

// String renders the matrix values row by row, mainly for debugging.
func (m *Matrix) String() string {
	var b bytes.Buffer
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(&b, "%d ", m.values[r*m.cols+c])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Copy returns an independent mutable copy of the matrix, preserving the
// provenance tag.
func (m *Matrix) Copy() *Matrix {
	cp := *m
	cp.alphabet = append([]byte(nil), m.alphabet...)
	cp.values = append([]int(nil), m.values...)
	return &cp
}

func newSquare(name string, alphabet []byte, prov Provenance) *Matrix {
	m := &Matrix{
		name:       name,
		alphabet:   append([]byte(nil), alphabet...),
		dim:        len(alphabet),
		cols:       len(alphabet) + 1,
		rows:       len(alphabet) + 1,
		provenance: prov,
	}
	m.buildIndex()
	m.values = make([]int, m.rows*m.cols)
	return m
}

func (m *Matrix) buildIndex() {
	for i := range m.index {
		m.index[i] = int16(m.dim) // wildcard
	}
	for i, b := range m.alphabet {
		m.index[b] = int16(i)
		// case-insensitive lookup for letters
		if b >= 'A' && b <= 'Z' {
			m.index[b+'a'-'A'] = int16(i)
		} else if b >= 'a' && b <= 'z' {
			m.index[b-'a'+'A'] = int16(i)
		}
	}
}

func checkAlphabet(alphabet []byte) error {
	if len(alphabet) == 0 {
		return &ErrInvalidAlphabet{Alphabet: alphabet, Reason: "empty alphabet"}
	}
	// Duplicates are checked case-folded: the symbol index is
	// case-insensitive, so 'A' and 'a' would collide.
	var seen [256]bool
	for _, b := range alphabet {
		f := b
		if f >= 'a' && f <= 'z' {
			f -= 'a' - 'A'
		}
		if seen[f] {
			return &ErrInvalidAlphabet{Alphabet: alphabet, Reason: fmt.Sprintf("duplicate symbol %q", b)}
		}
		seen[f] = true
	}
	return nil
}
