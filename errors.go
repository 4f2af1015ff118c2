package palign

import (
	"errors"
	"fmt"

	"github.com/palign/palign/internal/kernel"
)

var (
	// ErrEmptyQuery is returned when an alignment or profile build receives
	// an empty query sequence.
	ErrEmptyQuery = errors.New("query sequence is empty")

	// ErrEmptyReference is returned when an alignment receives an empty
	// reference sequence.
	ErrEmptyReference = errors.New("reference sequence is empty")

	// ErrAmbiguousQuerySource is returned by Align when a profile is bound
	// but a raw query sequence is passed as well.
	ErrAmbiguousQuerySource = errors.New("profile is bound: pass a nil query")

	// ErrMissingQuery is returned by Align when no profile is bound and the
	// query sequence is nil.
	ErrMissingQuery = errors.New("no profile is bound: a query sequence is required")

	// ErrMissingBandWidth is returned when banded alignment is requested
	// without a band width.
	ErrMissingBandWidth = errors.New("banded alignment requires a band width")

	// ErrMatrixConflict is returned when a matrix is bound alongside a
	// profile that was built from a different matrix.
	ErrMatrixConflict = errors.New("profile is bound: its matrix is implied, binding another is an error")

	// ErrBandTooNarrow is returned when the band cannot cover the length
	// difference of the two sequences.
	ErrBandTooNarrow = errors.New("band width does not cover the sequence length difference")

	// ErrInvalidGapPenalty is returned at build time when a gap penalty is
	// negative. Penalties are magnitudes; the engine applies the sign.
	ErrInvalidGapPenalty = errors.New("gap penalties must be non-negative")

	// ErrQueryLengthMismatch is returned when a query is longer than the
	// position-specific matrix scoring it.
	ErrQueryLengthMismatch = errors.New("query is longer than the position-specific matrix")
)

// ErrUnsupportedCombination indicates that the configuration resolves to no
// kernel entry point. It is reported at Build time, never per alignment.
//
// The kernel-level error can be accessed via errors.Unwrap.
type ErrUnsupportedCombination struct {
	Kernel string
	cause  error
}

func (e *ErrUnsupportedCombination) Error() string {
	return fmt.Sprintf("unsupported configuration: no kernel for %q", e.Kernel)
}

func (e *ErrUnsupportedCombination) Unwrap() error { return e.cause }

// ErrStatsMismatch indicates that a bound profile's statistics flag
// disagrees with the aligner configuration.
type ErrStatsMismatch struct {
	ProfileStats bool
	AlignerStats bool
}

func (e *ErrStatsMismatch) Error() string {
	return fmt.Sprintf("profile stats flag (%t) disagrees with aligner stats flag (%t)", e.ProfileStats, e.AlignerStats)
}

// ErrNotComputed indicates an access to a result facet that the producing
// configuration did not enable: a capability error, not a data error.
type ErrNotComputed struct {
	Facet  string // "stats", "table", "rowcol", or "trace"
	Method string
}

func (e *ErrNotComputed) Error() string {
	return fmt.Sprintf("%s: %s block was not computed; enable it on the builder", e.Method, e.Facet)
}

// ErrBackendFailure wraps an unexpected kernel-level failure.
type ErrBackendFailure struct {
	Kernel string
	cause  error
}

func (e *ErrBackendFailure) Error() string {
	return fmt.Sprintf("kernel %q failed: %v", e.Kernel, e.cause)
}

func (e *ErrBackendFailure) Unwrap() error { return e.cause }

// translateKernelError maps kernel-level errors onto the public taxonomy.
func translateKernelError(name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kernel.ErrEmptyInput) {
		return ErrEmptyQuery
	}
	if errors.Is(err, kernel.ErrBandTooNarrow) {
		return fmt.Errorf("%w: %w", ErrBandTooNarrow, err)
	}
	return &ErrBackendFailure{Kernel: name, cause: err}
}
