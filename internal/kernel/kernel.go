// Package kernel implements the dynamic-programming alignment backend.
//
// The public API resolves a validated configuration into a single kernel
// function via Lookup, keyed by a canonical Key composed of alignment mode,
// gap policy, output flags, profile binding, vectorization strategy, and
// solution width. Resolution happens once per aligner, not per call.
package kernel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/palign/palign/matrix"
)

// negInf is a safe negative infinity for score arithmetic: small enough to
// never win a max, large enough to not underflow when penalties subtract.
const negInf = math.MinInt / 4

// Mode selects the alignment recurrence.
type Mode uint8

const (
	// Global is Needleman-Wunsch alignment over both full sequences.
	Global Mode = iota
	// SemiGlobal is global alignment with configurable free end gaps.
	SemiGlobal
	// Local is Smith-Waterman alignment with scores floored at zero.
	Local
	// Banded is global alignment restricted to a diagonal band.
	Banded
	// SSW is the striped Smith-Waterman emulation path returning score and
	// bounds only.
	SSW
)

// String returns the canonical short name used in kernel keys.
func (m Mode) String() string {
	switch m {
	case Global:
		return "nw"
	case SemiGlobal:
		return "sg"
	case Local:
		return "sw"
	case Banded:
		return "nw_banded"
	case SSW:
		return "ssw"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// Strategy selects the vectorization strategy the kernel emulates. All
// strategies share the same recurrence and produce identical scores; the
// strategy is carried through to result classification.
type Strategy uint8

const (
	Striped Strategy = iota
	Scan
	Diag
)

// String returns the canonical short name used in kernel keys.
func (s Strategy) String() string {
	switch s {
	case Striped:
		return "striped"
	case Scan:
		return "scan"
	case Diag:
		return "diag"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Width is the score accumulator bit width. WidthSat starts at 8 bits and
// escalates on overflow.
type Width uint8

const (
	WidthSat Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Valid reports whether the width is a supported accumulator width.
func (w Width) Valid() bool {
	switch w {
	case WidthSat, Width8, Width16, Width32, Width64:
		return true
	default:
		return false
	}
}

// String returns the canonical suffix used in kernel keys.
func (w Width) String() string {
	if w == WidthSat {
		return "sat"
	}
	return strconv.Itoa(int(w))
}

// GapPolicy holds the four independent semi-global gap permissions. A set
// flag removes the penalty for the corresponding leading/trailing gap run.
type GapPolicy struct {
	QueryPrefix bool // free leading gaps in the query (reference overhang)
	QuerySuffix bool // free trailing gaps in the query
	RefPrefix   bool // free leading gaps in the reference (query overhang)
	RefSuffix   bool // free trailing gaps in the reference
}

// Key identifies one concrete kernel entry point.
type Key struct {
	Mode     Mode
	Gaps     GapPolicy
	Stats    bool
	Table    bool
	RowCol   bool
	Trace    bool
	Profile  bool
	Strategy Strategy
	Width    Width
}

// Name renders the canonical kernel name, e.g. "sg_qb_de_stats_striped_16".
// It is used for lookup diagnostics and logging.
func (k Key) Name() string {
	var b strings.Builder
	b.WriteString(k.Mode.String())
	if k.Mode == SemiGlobal {
		b.WriteString(gapSuffix("_q", k.Gaps.QueryPrefix, k.Gaps.QuerySuffix))
		b.WriteString(gapSuffix("_d", k.Gaps.RefPrefix, k.Gaps.RefSuffix))
	}
	if k.Trace {
		b.WriteString("_trace")
	}
	if k.Stats {
		b.WriteString("_stats")
	}
	if k.Table {
		b.WriteString("_table")
	}
	if k.RowCol {
		b.WriteString("_rowcol")
	}
	if k.Mode != Banded && k.Mode != SSW {
		b.WriteString("_" + k.Strategy.String())
		if k.Profile {
			b.WriteString("_profile")
		}
		b.WriteString("_" + k.Width.String())
	}
	return b.String()
}

func gapSuffix(prefix string, begin, end bool) string {
	switch {
	case begin && end:
		return prefix + "x"
	case begin:
		return prefix + "b"
	case end:
		return prefix + "e"
	default:
		return ""
	}
}

// Request carries one alignment call's inputs. QueryRows is the encoded
// query (matrix row index per position); Query holds the raw bytes for
// match counting and is always set alongside QueryRows.
type Request struct {
	Matrix    *matrix.Matrix
	Query     []byte
	QueryRows []int
	Ref       []byte
	GapOpen   int // positive penalty for the first gap symbol
	GapExtend int // positive penalty for each further gap symbol
	Bandwidth int // Banded mode only
}

// Result is the owned output buffer of one kernel invocation.
type Result struct {
	Key   Key
	ISA   ISA
	Width Width // actual accumulator width used

	Score    int
	EndQuery int
	EndRef   int

	// Begin positions are populated by the SSW path only; other kernels
	// recover starts from the traceback.
	BeginQuery int
	BeginRef   int

	Saturated bool

	// stats block (Key.Stats)
	Matches int
	Similar int
	Length  int

	// table block (Key.Table); all tables are M x N row-major
	M, N         int
	ScoreTable   []int
	MatchesTable []int
	SimilarTable []int
	LengthTable  []int

	// rowcol block (Key.RowCol)
	ScoreRow   []int
	ScoreCol   []int
	MatchesRow []int
	MatchesCol []int
	SimilarRow []int
	SimilarCol []int
	LengthRow  []int
	LengthCol  []int

	// trace block (Key.Trace); one direction byte per cell, M x N
	Trace []byte
}

// Func is the uniform kernel entry-point signature.
type Func func(req *Request) (*Result, error)

// Trace byte layout: bits 0-1 hold the H source, bit 2 marks an E gap open,
// bit 3 marks an F gap open.
const (
	TraceDiag = 0 // H came from the diagonal
	TraceLeft = 1 // H came from E (gap in query, consumes reference)
	TraceUp   = 2 // H came from F (gap in reference, consumes query)
	TraceZero = 3 // local alignment start (H floored at zero)

	TraceSrcMask  = 0x3
	TraceLeftOpen = 1 << 2
	TraceUpOpen   = 1 << 3
)

var (
	// ErrEmptyInput is returned when either sequence is empty.
	ErrEmptyInput = errors.New("kernel: empty input sequence")

	// ErrBandTooNarrow is returned when the banded recurrence cannot reach
	// the terminal cell because the band excludes it.
	ErrBandTooNarrow = errors.New("kernel: band does not cover the terminal diagonal")
)

// ErrUnsupported indicates that no kernel entry point exists for a key.
type ErrUnsupported struct {
	Key Key
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("kernel: no entry point for %q", e.Key.Name())
}

// EncodeQuery encodes a query against a matrix: one value row index per
// query position. For PSSMs the row index is the position itself.
func EncodeQuery(m *matrix.Matrix, query []byte) []int {
	rows := make([]int, len(query))
	for i, b := range query {
		if m.IsPSSM() {
			rows[i] = i
		} else {
			rows[i] = m.Index(b)
		}
	}
	return rows
}
