package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSquare(t *testing.T) {
	m, err := New([]byte("ACGT"), 2, -3)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Dimension())
	assert.Equal(t, 5, m.Rows())
	assert.False(t, m.IsPSSM())
	assert.Equal(t, ProvenanceCustom, m.Provenance())
	assert.Equal(t, []byte("ACGT"), m.Alphabet())

	for i, q := range []byte("ACGT") {
		for _, r := range []byte("ACGT") {
			want := -3
			if q == r {
				want = 2
			}
			assert.Equal(t, want, m.Score(i, q, r), "score %c/%c", q, r)
		}
	}

	// Symbols outside the alphabet hit the wildcard column.
	assert.Equal(t, -3, m.Score(0, 'A', 'N'))
	assert.Equal(t, -3, m.Score(0, 'X', 'X'))
}

func TestNewSquareCaseFolding(t *testing.T) {
	m, err := New([]byte("ACGT"), 1, -1)
	require.NoError(t, err)

	assert.Equal(t, m.Index('A'), m.Index('a'))
	assert.Equal(t, 1, m.Score(0, 'a', 'A'))
}

func TestNewInvalidAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
	}{
		{name: "empty", alphabet: ""},
		{name: "duplicate", alphabet: "ACGA"},
		{name: "duplicate case folded", alphabet: "ACGa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]byte(tt.alphabet), 1, -1)
			var target *ErrInvalidAlphabet
			require.ErrorAs(t, err, &target)
		})
	}
}

func TestSetValue(t *testing.T) {
	m, err := New([]byte("ACGT"), 1, -1)
	require.NoError(t, err)

	require.NoError(t, m.SetValue(0, 1, 7))
	v, err := m.Value(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 7, m.Score(0, 'A', 'C'))
}

func TestSetValueOutOfBoundsDoesNotMutate(t *testing.T) {
	m, err := New([]byte("ACGT"), 1, -1)
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
	}{
		{name: "negative row", row: -1, col: 0},
		{name: "negative col", row: 0, col: -1},
		{name: "wildcard row", row: 4, col: 0},
		{name: "wildcard col", row: 0, col: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.SetValue(tt.row, tt.col, 99)
			var target *ErrIndexOutOfBounds
			require.ErrorAs(t, err, &target)
		})
	}

	// The wildcard row/column kept the mismatch score.
	v, err := m.Value(4, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestNewPSSM(t *testing.T) {
	values := []int{
		3, -1, -1,
		-1, 3, -1,
		-1, -1, 3,
		0, 1, 2,
	}
	m, err := NewPSSM([]byte("ACG"), values, 4)
	require.NoError(t, err)

	assert.True(t, m.IsPSSM())
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, ProvenancePSSM, m.Provenance())

	assert.Equal(t, 3, m.Score(0, 0, 'A'))
	assert.Equal(t, -1, m.Score(0, 0, 'C'))
	assert.Equal(t, 1, m.Score(3, 0, 'C'))

	// An unknown reference symbol takes the row minimum.
	assert.Equal(t, -1, m.Score(0, 0, 'T'))
	assert.Equal(t, 0, m.Score(3, 0, 'T'))
}

func TestNewPSSMDimensionMismatch(t *testing.T) {
	_, err := NewPSSM([]byte("ACG"), make([]int, 7), 2)
	var target *ErrDimensionMismatch
	require.ErrorAs(t, err, &target)

	_, err = NewPSSM([]byte("ACG"), nil, 0)
	require.ErrorAs(t, err, &target)
}

func TestToPSSM(t *testing.T) {
	m, err := New([]byte("ACGT"), 2, -1)
	require.NoError(t, err)

	p, err := m.ToPSSM([]byte("GATC"))
	require.NoError(t, err)
	require.True(t, p.IsPSSM())
	require.Equal(t, 4, p.Rows())

	// Row i scores like the square row of query symbol i.
	for i, q := range []byte("GATC") {
		for _, r := range []byte("ACGT") {
			assert.Equal(t, m.Score(0, q, r), p.Score(i, 0, r), "row %d ref %c", i, r)
		}
	}
}

func TestToPSSMErrors(t *testing.T) {
	m, err := New([]byte("ACGT"), 1, -1)
	require.NoError(t, err)

	_, err = m.ToPSSM(nil)
	require.ErrorIs(t, err, ErrEmptyQuery)

	p, err := m.ToPSSM([]byte("ACG"))
	require.NoError(t, err)
	_, err = p.ToPSSM([]byte("ACG"))
	require.ErrorIs(t, err, ErrNotSquare)
}

func TestCopyIsIndependent(t *testing.T) {
	m, err := New([]byte("ACGT"), 1, -1)
	require.NoError(t, err)

	c := m.Copy()
	require.NoError(t, c.SetValue(0, 0, 42))

	assert.Equal(t, 42, c.Score(0, 'A', 'A'))
	assert.Equal(t, 1, m.Score(0, 'A', 'A'))
}
