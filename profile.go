package palign

import (
	"github.com/palign/palign/internal/kernel"
	"github.com/palign/palign/matrix"
)

// Profile is a query sequence pre-encoded against a scoring matrix, built
// once and reused across many alignments of the same query. The encoding is
// strategy-agnostic: every kernel consumes the same row-index form, so no
// per-strategy variants are cached.
//
// A Profile is immutable after NewProfile returns and is safe for concurrent
// use by any number of aligners.
type Profile struct {
	query []byte
	rows  []int
	m     *matrix.Matrix
	stats bool
}

// NewProfile encodes query against m. The stats flag is fixed at build time
// and must match the stats flag of every aligner the profile is bound to.
// A nil matrix selects the default DNA identity model.
func NewProfile(query []byte, m *matrix.Matrix, stats bool) (*Profile, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQuery
	}
	if m == nil {
		m = matrix.Default()
	}
	if m.IsPSSM() && len(query) > m.Rows() {
		return nil, ErrQueryLengthMismatch
	}
	q := append([]byte(nil), query...)
	return &Profile{
		query: q,
		rows:  kernel.EncodeQuery(m, q),
		m:     m,
		stats: stats,
	}, nil
}

// Query returns the profile's query sequence. The returned slice is shared;
// callers must not modify it.
func (p *Profile) Query() []byte { return p.query }

// Length returns the query length in residues.
func (p *Profile) Length() int { return len(p.query) }

// Matrix returns the scoring matrix the profile was encoded against.
func (p *Profile) Matrix() *matrix.Matrix { return p.m }

// Stats reports whether the profile was built for statistics collection.
func (p *Profile) Stats() bool { return p.stats }
