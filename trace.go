package palign

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/palign/palign/internal/kernel"
)

// Traceback is the aligned rendering of an optimal path: the query and
// reference with '-' at gap positions, and a comparison line with '|' for
// identical pairs, '.' for substitutions, and ' ' at gaps. Begin positions
// are 0-based inclusive; together with the result's end positions they
// bound the aligned region.
type Traceback struct {
	Query      string
	Comparison string
	Ref        string
	BeginQuery int
	BeginRef   int
}

// Traceback reconstructs the optimal path from the trace block. Requires
// the trace block. The reconstruction is done once and cached; the result
// is shared across calls.
func (r *AlignResult) Traceback() (*Traceback, error) {
	if !r.res.Key.Trace {
		return nil, &ErrNotComputed{Facet: "trace", Method: "Traceback"}
	}
	r.tbOnce.Do(func() {
		r.tb = walkTrace(r.res, r.query, r.ref)
	})
	return r.tb, nil
}

// BeginQuery returns the query position where the alignment begins.
// Requires the trace block.
func (r *AlignResult) BeginQuery() (int, error) {
	tb, err := r.Traceback()
	if err != nil {
		return 0, &ErrNotComputed{Facet: "trace", Method: "BeginQuery"}
	}
	return tb.BeginQuery, nil
}

// BeginRef returns the reference position where the alignment begins.
// Requires the trace block.
func (r *AlignResult) BeginRef() (int, error) {
	tb, err := r.Traceback()
	if err != nil {
		return 0, &ErrNotComputed{Facet: "trace", Method: "BeginRef"}
	}
	return tb.BeginRef, nil
}

// Cigar returns the alignment as a CIGAR string with '=' for matches, 'X'
// for substitutions, 'I' for columns consuming only the query, and 'D' for
// columns consuming only the reference. Requires the trace block.
func (r *AlignResult) Cigar() (string, error) {
	tb, err := r.Traceback()
	if err != nil {
		return "", &ErrNotComputed{Facet: "trace", Method: "Cigar"}
	}
	var b strings.Builder
	runOp := byte(0)
	runLen := 0
	flush := func() {
		if runLen > 0 {
			b.WriteString(strconv.Itoa(runLen))
			b.WriteByte(runOp)
		}
	}
	for i := 0; i < len(tb.Query); i++ {
		var op byte
		switch {
		case tb.Query[i] == '-':
			op = 'D'
		case tb.Ref[i] == '-':
			op = 'I'
		case tb.Comparison[i] == '|':
			op = '='
		default:
			op = 'X'
		}
		if op != runOp {
			flush()
			runOp, runLen = op, 0
		}
		runLen++
	}
	flush()
	return b.String(), nil
}

// trace walk states: inside H, inside a reference-consuming gap run (E), or
// inside a query-consuming gap run (F).
const (
	walkH = iota
	walkE
	walkF
)

// walkTrace follows the per-cell direction bytes from the end cell back to
// the alignment start. Gap-run membership is tracked explicitly: the source
// bits name the matrix a cell's score came from, the open bits say where a
// gap run ends.
func walkTrace(res *kernel.Result, query, ref []byte) *Traceback {
	n := res.N
	local := res.Key.Mode == kernel.Local
	freeQP := local || (res.Key.Mode == kernel.SemiGlobal && res.Key.Gaps.QueryPrefix)
	freeRP := local || (res.Key.Mode == kernel.SemiGlobal && res.Key.Gaps.RefPrefix)

	// Built back to front, reversed once at the end.
	var qa, cmp, ra []byte
	ti, tj := res.EndQuery, res.EndRef
	state := walkH
	stopped := false

walk:
	for ti >= 0 && tj >= 0 {
		t := res.Trace[ti*n+tj]
		switch state {
		case walkH:
			switch t & kernel.TraceSrcMask {
			case kernel.TraceDiag:
				qa = append(qa, query[ti])
				ra = append(ra, ref[tj])
				if symbolEq(query[ti], ref[tj]) {
					cmp = append(cmp, '|')
				} else {
					cmp = append(cmp, '.')
				}
				ti--
				tj--
			case kernel.TraceLeft:
				state = walkE
			case kernel.TraceUp:
				state = walkF
			case kernel.TraceZero:
				stopped = true
				break walk
			}
		case walkE:
			qa = append(qa, '-')
			ra = append(ra, ref[tj])
			cmp = append(cmp, ' ')
			if t&kernel.TraceLeftOpen != 0 {
				state = walkH
			}
			tj--
		case walkF:
			qa = append(qa, query[ti])
			ra = append(ra, '-')
			cmp = append(cmp, ' ')
			if t&kernel.TraceUpOpen != 0 {
				state = walkH
			}
			ti--
		}
	}

	// Boundary rows: gaps against the matrix edge are part of the
	// alignment unless the corresponding leading gap is free.
	if !stopped {
		if ti < 0 && !freeQP {
			for ; tj >= 0; tj-- {
				qa = append(qa, '-')
				ra = append(ra, ref[tj])
				cmp = append(cmp, ' ')
			}
		}
		if tj < 0 && !freeRP {
			for ; ti >= 0; ti-- {
				qa = append(qa, query[ti])
				ra = append(ra, '-')
				cmp = append(cmp, ' ')
			}
		}
	}

	reverseInPlace(qa)
	reverseInPlace(cmp)
	reverseInPlace(ra)
	return &Traceback{
		Query:      string(qa),
		Comparison: string(cmp),
		Ref:        string(ra),
		BeginQuery: ti + 1,
		BeginRef:   tj + 1,
	}
}

// FormatTraceback renders a traceback in blocks of width columns with
// 1-based residue positions in the margins, in the style of classic
// pairwise alignment reports. A non-positive width defaults to 60.
func FormatTraceback(tb *Traceback, width int) string {
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	qpos := tb.BeginQuery + 1
	rpos := tb.BeginRef + 1
	for off := 0; off < len(tb.Query); off += width {
		end := off + width
		if end > len(tb.Query) {
			end = len(tb.Query)
		}
		q := tb.Query[off:end]
		c := tb.Comparison[off:end]
		r := tb.Ref[off:end]

		qend := qpos + countResidues(q) - 1
		rend := rpos + countResidues(r) - 1
		fmt.Fprintf(&b, "Query %8d %s %d\n", qpos, q, qend)
		fmt.Fprintf(&b, "%14s %s\n", "", c)
		fmt.Fprintf(&b, "Ref   %8d %s %d\n", rpos, r, rend)
		if end < len(tb.Query) {
			b.WriteByte('\n')
		}
		qpos = qend + 1
		rpos = rend + 1
	}
	return b.String()
}

func countResidues(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			n++
		}
	}
	return n
}

// symbolEq compares sequence symbols ignoring ASCII case.
func symbolEq(a, b byte) bool {
	if a >= 'a' && a <= 'z' {
		a -= 'a' - 'A'
	}
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return a == b
}

func reverseInPlace(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
