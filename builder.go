package palign

import (
	"github.com/palign/palign/internal/kernel"
	"github.com/palign/palign/matrix"
)

// Mode selects the alignment recurrence.
type Mode uint8

const (
	// Global aligns both sequences end to end (Needleman-Wunsch).
	Global Mode = iota
	// SemiGlobal is global alignment with configurable free end gaps.
	SemiGlobal
	// Local finds the best-scoring subsequence pair (Smith-Waterman).
	Local
	// Banded is global alignment restricted to a diagonal band.
	Banded
	// SSWEmulation is the striped Smith-Waterman path reporting score and
	// alignment bounds only.
	SSWEmulation
)

// String returns the canonical mode name.
func (m Mode) String() string { return kernel.Mode(m).String() }

// Strategy selects the vectorization strategy.
type Strategy uint8

const (
	Striped Strategy = iota
	Scan
	Diag
)

// String returns the canonical strategy name.
func (s Strategy) String() string { return kernel.Strategy(s).String() }

// Width is the score accumulator bit width. WidthSaturating starts narrow
// and widens on overflow, reporting saturation on the result.
type Width uint8

const (
	WidthSaturating Width = 0
	Width8          Width = 8
	Width16         Width = 16
	Width32         Width = 32
	Width64         Width = 64
)

// String returns the canonical width suffix.
func (w Width) String() string { return kernel.Width(w).String() }

// AlignerBuilder accumulates alignment configuration. The zero value is not
// usable; start from NewAlignerBuilder. All setters use value receivers and
// return an updated copy, so intermediate configurations can be stored and
// branched without aliasing.
type AlignerBuilder struct {
	mode      Mode
	gaps      kernel.GapPolicy
	gapOpen   int
	gapExtend int
	strategy  Strategy
	width     Width
	stats     bool
	table     bool
	rowcol    bool
	trace     bool
	bandwidth int
	m         *matrix.Matrix
	profile   *Profile
	logger    *Logger
	metrics   MetricsCollector
}

// NewAlignerBuilder returns a builder with the default configuration:
// global mode, striped strategy, saturating width, gap open 5, gap extend 2,
// the default DNA identity matrix, no output blocks, no-op logger and
// metrics.
func NewAlignerBuilder() AlignerBuilder {
	return AlignerBuilder{
		mode:      Global,
		strategy:  Striped,
		width:     WidthSaturating,
		gapOpen:   5,
		gapExtend: 2,
		bandwidth: -1,
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
}

// Matrix binds a scoring matrix. Binding a matrix alongside a profile built
// from a different matrix fails at Build.
func (b AlignerBuilder) Matrix(m *matrix.Matrix) AlignerBuilder {
	b.m = m
	return b
}

// Profile binds a pre-encoded query profile. Align must then be called with
// a nil query. The profile's stats flag is not copied onto the builder; a
// disagreement fails at Build.
func (b AlignerBuilder) Profile(p *Profile) AlignerBuilder {
	b.profile = p
	return b
}

// GapOpen sets the penalty for the first symbol of a gap, as a non-negative
// magnitude.
func (b AlignerBuilder) GapOpen(penalty int) AlignerBuilder {
	b.gapOpen = penalty
	return b
}

// GapExtend sets the penalty for each further gap symbol, as a non-negative
// magnitude.
func (b AlignerBuilder) GapExtend(penalty int) AlignerBuilder {
	b.gapExtend = penalty
	return b
}

// Global selects global alignment.
func (b AlignerBuilder) Global() AlignerBuilder {
	b.mode = Global
	return b
}

// SemiGlobal selects semi-global alignment. Which end gaps are free is
// controlled by QueryGaps and RefGaps; with none set it scores exactly like
// Global.
func (b AlignerBuilder) SemiGlobal() AlignerBuilder {
	b.mode = SemiGlobal
	return b
}

// Local selects local alignment.
func (b AlignerBuilder) Local() AlignerBuilder {
	b.mode = Local
	return b
}

// Banded selects banded global alignment with the given band width. Cells
// farther than width from the main diagonal are not computed; an optimum
// outside the band is silently missed, never an error.
func (b AlignerBuilder) Banded(width int) AlignerBuilder {
	b.mode = Banded
	b.bandwidth = width
	return b
}

// SSW selects the striped Smith-Waterman emulation mode. Output blocks and
// profile binding do not apply to it.
func (b AlignerBuilder) SSW() AlignerBuilder {
	b.mode = SSWEmulation
	return b
}

// QueryGaps sets whether leading and trailing gaps in the query are free in
// semi-global mode. A free leading query gap lets the reference overhang on
// the left; a free trailing one on the right.
func (b AlignerBuilder) QueryGaps(prefix, suffix bool) AlignerBuilder {
	b.gaps.QueryPrefix = prefix
	b.gaps.QuerySuffix = suffix
	return b
}

// RefGaps sets whether leading and trailing gaps in the reference are free
// in semi-global mode.
func (b AlignerBuilder) RefGaps(prefix, suffix bool) AlignerBuilder {
	b.gaps.RefPrefix = prefix
	b.gaps.RefSuffix = suffix
	return b
}

// Striped selects the striped vectorization strategy.
func (b AlignerBuilder) Striped() AlignerBuilder {
	b.strategy = Striped
	return b
}

// Scan selects the scan vectorization strategy.
func (b AlignerBuilder) Scan() AlignerBuilder {
	b.strategy = Scan
	return b
}

// Diag selects the diagonal vectorization strategy. It does not support
// profile binding; the combination fails at Build.
func (b AlignerBuilder) Diag() AlignerBuilder {
	b.strategy = Diag
	return b
}

// Width sets the score accumulator width.
func (b AlignerBuilder) Width(w Width) AlignerBuilder {
	b.width = w
	return b
}

// Stats enables the summary statistics block (matches, similar, length).
// It displaces a previously requested table; statistics and full tables are
// mutually exclusive, last write wins.
func (b AlignerBuilder) Stats() AlignerBuilder {
	b.stats = true
	b.table = false
	return b
}

// Table enables the full score table block. It displaces previously
// requested statistics and traceback. A requested rowcol block takes
// precedence and is not displaced.
func (b AlignerBuilder) Table() AlignerBuilder {
	if b.rowcol {
		return b
	}
	b.table = true
	b.stats = false
	b.trace = false
	return b
}

// RowCol enables the last-row/last-column vector block. It displaces a
// previously requested table and traceback.
func (b AlignerBuilder) RowCol() AlignerBuilder {
	b.rowcol = true
	b.table = false
	b.trace = false
	return b
}

// Trace enables the traceback block. It displaces previously requested
// table and rowcol blocks. Combined with Stats it is only supported in
// global mode.
func (b AlignerBuilder) Trace() AlignerBuilder {
	b.trace = true
	b.table = false
	b.rowcol = false
	return b
}

// BandWidth sets the band width used by BandedAlign without switching the
// primary mode to Banded.
func (b AlignerBuilder) BandWidth(width int) AlignerBuilder {
	b.bandwidth = width
	return b
}

// Logger sets the logger. Nil restores the no-op logger.
func (b AlignerBuilder) Logger(l *Logger) AlignerBuilder {
	b.logger = l
	return b
}

// Metrics sets the metrics collector. Nil restores the no-op collector.
func (b AlignerBuilder) Metrics(c MetricsCollector) AlignerBuilder {
	b.metrics = c
	return b
}

// Build validates the configuration, resolves the kernel entry points, and
// freezes the result into an immutable Aligner. Every invalid combination
// is reported here; a built Aligner never fails on configuration grounds.
func (b AlignerBuilder) Build() (*Aligner, error) {
	if b.gapOpen < 0 || b.gapExtend < 0 {
		return nil, ErrInvalidGapPenalty
	}
	if b.profile != nil && b.m != nil && b.m != b.profile.m {
		return nil, ErrMatrixConflict
	}
	if b.profile != nil && b.profile.stats != b.stats {
		return nil, &ErrStatsMismatch{ProfileStats: b.profile.stats, AlignerStats: b.stats}
	}
	if b.mode == Banded && b.bandwidth < 0 {
		return nil, ErrMissingBandWidth
	}

	m := b.m
	if b.profile != nil {
		m = b.profile.m
	}
	if m == nil {
		m = matrix.Default()
	}

	key := kernel.Key{
		Mode:     kernel.Mode(b.mode),
		Stats:    b.stats,
		Table:    b.table,
		RowCol:   b.rowcol,
		Trace:    b.trace,
		Profile:  b.profile != nil,
		Strategy: kernel.Strategy(b.strategy),
		Width:    kernel.Width(b.width),
	}
	if b.mode == SemiGlobal {
		key.Gaps = b.gaps
	}
	if b.mode == Banded || b.mode == SSWEmulation {
		// These kernels compute score and bounds only.
		key.Stats, key.Table, key.RowCol, key.Trace, key.Profile = false, false, false, false, false
	}

	fn, err := kernel.Lookup(key)
	if err != nil {
		return nil, &ErrUnsupportedCombination{Kernel: key.Name(), cause: err}
	}

	// The side entry points for BandedAlign and SSW are resolved up front
	// too, so those calls can never fail on lookup.
	sswKey := kernel.Key{Mode: kernel.SSW, Width: key.Width}
	sswFn, err := kernel.Lookup(sswKey)
	if err != nil {
		return nil, &ErrUnsupportedCombination{Kernel: sswKey.Name(), cause: err}
	}
	var (
		bandKey kernel.Key
		bandFn  kernel.Func
	)
	if b.bandwidth >= 0 {
		bandKey = kernel.Key{Mode: kernel.Banded, Width: key.Width}
		bandFn, err = kernel.Lookup(bandKey)
		if err != nil {
			return nil, &ErrUnsupportedCombination{Kernel: bandKey.Name(), cause: err}
		}
	}

	logger := b.logger
	if logger == nil {
		logger = NoopLogger()
	}
	metrics := b.metrics
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &Aligner{
		key:       key,
		fn:        fn,
		sswKey:    sswKey,
		sswFn:     sswFn,
		bandKey:   bandKey,
		bandFn:    bandFn,
		m:         m,
		profile:   b.profile,
		gapOpen:   b.gapOpen,
		gapExtend: b.gapExtend,
		bandwidth: b.bandwidth,
		logger:    logger.WithKernel(key.Name()),
		metrics:   metrics,
	}, nil
}

// MustBuild is Build panicking on error, for configurations known valid at
// compile time.
func (b AlignerBuilder) MustBuild() *Aligner {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
