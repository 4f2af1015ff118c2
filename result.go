package palign

import (
	"sync"

	"github.com/palign/palign/internal/kernel"
)

// AlignResult is the owned output of one alignment. Score and end positions
// are always present; the statistics, table, rowcol, and trace blocks exist
// only when the producing configuration requested them, and their accessors
// fail with ErrNotComputed otherwise.
//
// Positions are 0-based and inclusive. A result is safe for concurrent
// reads; the traceback is derived once under tbOnce.
type AlignResult struct {
	res   *kernel.Result
	query []byte
	ref   []byte

	tbOnce sync.Once
	tb     *Traceback // lazily derived from the trace block
}

func newAlignResult(res *kernel.Result, req *kernel.Request) *AlignResult {
	return &AlignResult{res: res, query: req.Query, ref: req.Ref}
}

// Score returns the alignment score.
func (r *AlignResult) Score() int { return r.res.Score }

// EndQuery returns the query position where the alignment ends.
func (r *AlignResult) EndQuery() int { return r.res.EndQuery }

// EndRef returns the reference position where the alignment ends.
func (r *AlignResult) EndRef() int { return r.res.EndRef }

// Kernel returns the canonical name of the kernel that produced the result.
func (r *AlignResult) Kernel() string { return r.res.Key.Name() }

// Matches returns the number of identical aligned pairs on the optimal
// path. Requires the statistics block.
func (r *AlignResult) Matches() (int, error) {
	if !r.res.Key.Stats {
		return 0, &ErrNotComputed{Facet: "stats", Method: "Matches"}
	}
	return r.res.Matches, nil
}

// Similar returns the number of positively scoring aligned pairs on the
// optimal path. Requires the statistics block.
func (r *AlignResult) Similar() (int, error) {
	if !r.res.Key.Stats {
		return 0, &ErrNotComputed{Facet: "stats", Method: "Similar"}
	}
	return r.res.Similar, nil
}

// AlignmentLength returns the number of alignment columns on the optimal
// path, gaps included. Requires the statistics block.
func (r *AlignResult) AlignmentLength() (int, error) {
	if !r.res.Key.Stats {
		return 0, &ErrNotComputed{Facet: "stats", Method: "AlignmentLength"}
	}
	return r.res.Length, nil
}

// TableDims returns the table dimensions: query length rows by reference
// length columns. Valid whenever a table or rowcol block exists.
func (r *AlignResult) TableDims() (rows, cols int) { return r.res.M, r.res.N }

// ScoreTable returns the full score table, row-major with TableDims
// dimensions. Requires the table block. The returned slice is shared;
// callers must not modify it.
func (r *AlignResult) ScoreTable() ([]int, error) {
	if !r.res.Key.Table {
		return nil, &ErrNotComputed{Facet: "table", Method: "ScoreTable"}
	}
	return r.res.ScoreTable, nil
}

// MatchesTable returns the per-cell match-count table. Requires the table
// block.
func (r *AlignResult) MatchesTable() ([]int, error) {
	if !r.res.Key.Table {
		return nil, &ErrNotComputed{Facet: "table", Method: "MatchesTable"}
	}
	return r.res.MatchesTable, nil
}

// SimilarTable returns the per-cell similarity-count table. Requires the
// table block.
func (r *AlignResult) SimilarTable() ([]int, error) {
	if !r.res.Key.Table {
		return nil, &ErrNotComputed{Facet: "table", Method: "SimilarTable"}
	}
	return r.res.SimilarTable, nil
}

// LengthTable returns the per-cell alignment-length table. Requires the
// table block.
func (r *AlignResult) LengthTable() ([]int, error) {
	if !r.res.Key.Table {
		return nil, &ErrNotComputed{Facet: "table", Method: "LengthTable"}
	}
	return r.res.LengthTable, nil
}

// ScoreRow returns the last row of the score table (one entry per reference
// position). Requires the rowcol or table block.
func (r *AlignResult) ScoreRow() ([]int, error) {
	if r.res.ScoreRow == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "ScoreRow"}
	}
	return r.res.ScoreRow, nil
}

// ScoreCol returns the last column of the score table (one entry per query
// position). Requires the rowcol or table block.
func (r *AlignResult) ScoreCol() ([]int, error) {
	if r.res.ScoreCol == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "ScoreCol"}
	}
	return r.res.ScoreCol, nil
}

// MatchesRow returns the last row of the match-count table. Requires a
// rowcol block combined with statistics, or a table block.
func (r *AlignResult) MatchesRow() ([]int, error) {
	if r.res.MatchesRow == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "MatchesRow"}
	}
	return r.res.MatchesRow, nil
}

// MatchesCol returns the last column of the match-count table. Requires a
// rowcol block combined with statistics, or a table block.
func (r *AlignResult) MatchesCol() ([]int, error) {
	if r.res.MatchesCol == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "MatchesCol"}
	}
	return r.res.MatchesCol, nil
}

// SimilarRow returns the last row of the similarity-count table. Requires a
// rowcol block combined with statistics, or a table block.
func (r *AlignResult) SimilarRow() ([]int, error) {
	if r.res.SimilarRow == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "SimilarRow"}
	}
	return r.res.SimilarRow, nil
}

// SimilarCol returns the last column of the similarity-count table.
// Requires a rowcol block combined with statistics, or a table block.
func (r *AlignResult) SimilarCol() ([]int, error) {
	if r.res.SimilarCol == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "SimilarCol"}
	}
	return r.res.SimilarCol, nil
}

// LengthRow returns the last row of the alignment-length table. Requires a
// rowcol block combined with statistics, or a table block.
func (r *AlignResult) LengthRow() ([]int, error) {
	if r.res.LengthRow == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "LengthRow"}
	}
	return r.res.LengthRow, nil
}

// LengthCol returns the last column of the alignment-length table. Requires
// a rowcol block combined with statistics, or a table block.
func (r *AlignResult) LengthCol() ([]int, error) {
	if r.res.LengthCol == nil {
		return nil, &ErrNotComputed{Facet: "rowcol", Method: "LengthCol"}
	}
	return r.res.LengthCol, nil
}

// Width returns the accumulator width the kernel settled on.
func (r *AlignResult) Width() Width { return Width(r.res.Width) }

// Classification predicates mirror the kernel key that produced the result.

func (r *AlignResult) IsGlobal() bool     { return r.res.Key.Mode == kernel.Global }
func (r *AlignResult) IsSemiGlobal() bool { return r.res.Key.Mode == kernel.SemiGlobal }
func (r *AlignResult) IsLocal() bool      { return r.res.Key.Mode == kernel.Local }
func (r *AlignResult) IsBanded() bool     { return r.res.Key.Mode == kernel.Banded }
func (r *AlignResult) IsStriped() bool    { return r.res.Key.Strategy == kernel.Striped }
func (r *AlignResult) IsScan() bool       { return r.res.Key.Strategy == kernel.Scan }
func (r *AlignResult) IsDiag() bool       { return r.res.Key.Strategy == kernel.Diag }
func (r *AlignResult) IsStats() bool      { return r.res.Key.Stats }
func (r *AlignResult) IsTable() bool      { return r.res.Key.Table }
func (r *AlignResult) IsRowCol() bool     { return r.res.Key.RowCol }
func (r *AlignResult) IsTrace() bool      { return r.res.Key.Trace }
func (r *AlignResult) IsSaturated() bool  { return r.res.Saturated }

// SSWResult is the reduced output of the striped Smith-Waterman emulation:
// the score and the alignment bounds in both sequences, 0-based inclusive.
type SSWResult struct {
	Score      int
	QueryBegin int
	QueryEnd   int
	RefBegin   int
	RefEnd     int
	Saturated  bool
}
