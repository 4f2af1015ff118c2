package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanded(t *testing.T) {
	req := newRequest(t, "ACGT", "ACGT", 2, 1)
	req.Bandwidth = 1

	res, err := banded(req, Key{Mode: Banded})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Score)
	assert.Equal(t, 3, res.EndQuery)
	assert.Equal(t, 3, res.EndRef)
}

func TestBandedTooNarrow(t *testing.T) {
	req := newRequest(t, "ACGT", "ACGTACGTACGT", 2, 1)
	req.Bandwidth = 2

	_, err := banded(req, Key{Mode: Banded})
	require.ErrorIs(t, err, ErrBandTooNarrow)
}

func TestBandedEmptyInput(t *testing.T) {
	req := newRequest(t, "", "ACGT", 2, 1)
	req.Bandwidth = 8
	_, err := banded(req, Key{Mode: Banded})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestBandedWideBandMatchesGlobal(t *testing.T) {
	pairs := [][2]string{
		{"ACGTA", "AGTA"},
		{"GATTACA", "GCATGCA"},
		{"ACGTACGT", "ACGT"},
		{"TTTT", "TTTTTT"},
	}
	for _, p := range pairs {
		req := newRequest(t, p[0], p[1], 2, 1)
		req.Bandwidth = len(p[0]) + len(p[1])

		g, err := gotoh(req, Key{Mode: Global, Width: Width32})
		require.NoError(t, err)
		b, err := banded(req, Key{Mode: Banded})
		require.NoError(t, err)
		assert.Equal(t, g.Score, b.Score, "%s vs %s", p[0], p[1])
	}
}

func TestBandedNarrowBandApproximates(t *testing.T) {
	// The optimal path wanders off the diagonal; the in-band score is a
	// lower bound, not an error.
	req := newRequest(t, "AATTTTAA", "AAAATTTT", 2, 1)

	req.Bandwidth = 8
	wide, err := banded(req, Key{Mode: Banded})
	require.NoError(t, err)

	req.Bandwidth = 1
	narrow, err := banded(req, Key{Mode: Banded})
	require.NoError(t, err)

	assert.LessOrEqual(t, narrow.Score, wide.Score)
}
