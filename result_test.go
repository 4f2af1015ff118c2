package palign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultGatedAccessors(t *testing.T) {
	aligner := NewAlignerBuilder().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACGT"), []byte("ACGT"))
	require.NoError(t, err)

	var nc *ErrNotComputed

	_, err = res.Matches()
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "stats", nc.Facet)

	_, err = res.ScoreTable()
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "table", nc.Facet)

	_, err = res.ScoreRow()
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "rowcol", nc.Facet)

	_, err = res.Traceback()
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "trace", nc.Facet)

	_, err = res.Cigar()
	require.ErrorAs(t, err, &nc)
	_, err = res.BeginQuery()
	require.ErrorAs(t, err, &nc)
	_, err = res.BeginRef()
	require.ErrorAs(t, err, &nc)
}

func TestResultStats(t *testing.T) {
	aligner := NewAlignerBuilder().Stats().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACGT"), []byte("AGGT"))
	require.NoError(t, err)

	matches, err := res.Matches()
	require.NoError(t, err)
	assert.Equal(t, 3, matches)

	similar, err := res.Similar()
	require.NoError(t, err)
	assert.Equal(t, 3, similar)

	length, err := res.AlignmentLength()
	require.NoError(t, err)
	assert.Equal(t, 4, length)
}

func TestResultTable(t *testing.T) {
	aligner := NewAlignerBuilder().Table().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACGT"), []byte("ACGT"))
	require.NoError(t, err)

	rows, cols := res.TableDims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 4, cols)

	table, err := res.ScoreTable()
	require.NoError(t, err)
	require.Len(t, table, rows*cols)
	assert.Equal(t, res.Score(), table[rows*cols-1], "corner equals the score")

	// The table block carries the per-cell statistics tables too.
	mt, err := res.MatchesTable()
	require.NoError(t, err)
	assert.Equal(t, 4, mt[rows*cols-1])

	// And the boundary vectors.
	row, err := res.ScoreRow()
	require.NoError(t, err)
	assert.Len(t, row, cols)

	// But not the summary statistics; those are a separate configuration.
	_, err = res.Matches()
	var nc *ErrNotComputed
	require.ErrorAs(t, err, &nc)
}

func TestResultRowCol(t *testing.T) {
	aligner := NewAlignerBuilder().RowCol().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACG"), []byte("ACGT"))
	require.NoError(t, err)

	row, err := res.ScoreRow()
	require.NoError(t, err)
	assert.Equal(t, []int{-2, 0, 3, 1}, row)

	col, err := res.ScoreCol()
	require.NoError(t, err)
	assert.Equal(t, []int{-3, -1, 1}, col)

	_, err = res.ScoreTable()
	var nc *ErrNotComputed
	require.ErrorAs(t, err, &nc)

	// Without stats, the per-cell statistics vectors are absent.
	_, err = res.MatchesRow()
	require.ErrorAs(t, err, &nc)
}

func TestResultRowColStats(t *testing.T) {
	aligner := NewAlignerBuilder().RowCol().Stats().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACG"), []byte("ACGT"))
	require.NoError(t, err)

	mrow, err := res.MatchesRow()
	require.NoError(t, err)
	assert.Equal(t, 3, mrow[3])

	mcol, err := res.MatchesCol()
	require.NoError(t, err)
	assert.Len(t, mcol, 3)
}

func TestResultPredicates(t *testing.T) {
	aligner := NewAlignerBuilder().Local().Scan().GapOpen(2).GapExtend(1).MustBuild()
	res, err := aligner.Align([]byte("ACGT"), []byte("ACGT"))
	require.NoError(t, err)

	assert.True(t, res.IsLocal())
	assert.True(t, res.IsScan())
	assert.False(t, res.IsGlobal())
	assert.False(t, res.IsStriped())
	assert.False(t, res.IsStats())
	assert.False(t, res.IsSaturated())
	assert.Equal(t, "sw_scan_sat", res.Kernel())
}
