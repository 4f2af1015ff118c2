package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const squareFile = `# simple DNA matrix
  A  C  G  T  *
A  2 -1 -1 -1 -2
C -1  2 -1 -1 -2
G -1 -1  2 -1 -2
T -1 -1 -1  2 -2
* -2 -2 -2 -2 -2
`

func TestFromFileSquare(t *testing.T) {
	path := writeTemp(t, "dna.txt", squareFile)

	m, err := FromFile(path)
	require.NoError(t, err)

	assert.False(t, m.IsPSSM())
	assert.Equal(t, ProvenanceFile, m.Provenance())
	assert.Equal(t, 4, m.Dimension())
	assert.Equal(t, 2, m.Score(0, 'A', 'A'))
	assert.Equal(t, -1, m.Score(0, 'A', 'C'))
	assert.Equal(t, -2, m.Score(0, 'A', 'N'))
}

func TestFromFileSquareWithoutLabels(t *testing.T) {
	path := writeTemp(t, "dna.txt", `A C
2 -1
-1 2
`)
	m, err := FromFile(path)
	require.NoError(t, err)

	assert.False(t, m.IsPSSM())
	assert.Equal(t, 2, m.Dimension())
	assert.Equal(t, 2, m.Score(0, 'A', 'A'))
	// No wildcard column in the file: unknown symbols score at the
	// observed minimum.
	assert.Equal(t, -1, m.Score(0, 'A', 'N'))
}

func TestFromFilePSSM(t *testing.T) {
	path := writeTemp(t, "pssm.txt", `# position-specific, labeled by a query sequence
  A  C  G
G -1 -1  3
A  3 -1 -1
`)
	m, err := FromFile(path)
	require.NoError(t, err)

	assert.True(t, m.IsPSSM())
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Score(0, 0, 'G'))
	assert.Equal(t, 3, m.Score(1, 0, 'A'))
}

func TestFromFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dna.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(squareFile))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	m, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Score(0, 'G', 'G'))
}

func TestFromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		line    int
	}{
		{
			name:    "multi-character alphabet column",
			content: "AB C\n1 2\n",
			line:    1,
		},
		{
			name:    "wrong value count",
			content: "A C\nA 1\nC 1 2\n",
			line:    2,
		},
		{
			name:    "non-numeric score",
			content: "A C\nA 1 x\nC 1 2\n",
			line:    2,
		},
		{
			name:    "no score rows",
			content: "A C\n",
			line:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "bad.txt", tt.content)
			_, err := FromFile(path)
			var perr *ErrParse
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
