package palign

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/palign/palign/internal/kernel"
	"github.com/palign/palign/matrix"
)

// Aligner executes alignments with a frozen configuration. It is immutable
// after Build and safe for concurrent use by multiple goroutines.
type Aligner struct {
	key     kernel.Key
	fn      kernel.Func
	sswKey  kernel.Key
	sswFn   kernel.Func
	bandKey kernel.Key
	bandFn  kernel.Func

	m         *matrix.Matrix
	profile   *Profile
	gapOpen   int
	gapExtend int
	bandwidth int

	logger  *Logger
	metrics MetricsCollector
}

// Kernel returns the canonical name of the resolved primary kernel.
func (a *Aligner) Kernel() string { return a.key.Name() }

// Matrix returns the scoring matrix the aligner resolves queries against.
func (a *Aligner) Matrix() *matrix.Matrix { return a.m }

// Align aligns a query against a reference with the primary configuration.
//
// With a bound profile the query must be nil; the profile's query is used.
// Without one the query is required.
func (a *Aligner) Align(query, ref []byte) (*AlignResult, error) {
	req, err := a.newRequest(query, ref)
	if err != nil {
		return nil, err
	}
	return a.run(a.fn, a.key, req)
}

// BandedAlign aligns globally within a diagonal band of the width set on
// the builder. Cells outside the band are not computed; an optimum crossing
// the band edge is missed, not detected. It fails with ErrMissingBandWidth
// when no band width was configured.
func (a *Aligner) BandedAlign(query, ref []byte) (*AlignResult, error) {
	if a.bandFn == nil {
		return nil, ErrMissingBandWidth
	}
	req, err := a.newRequest(query, ref)
	if err != nil {
		return nil, err
	}
	return a.run(a.bandFn, a.bandKey, req)
}

// SSW runs the striped Smith-Waterman emulation, reporting the score and
// the alignment bounds in both sequences. The configured mode, output
// blocks, and profile binding do not apply; only the matrix, gap penalties,
// and width do.
func (a *Aligner) SSW(query, ref []byte) (*SSWResult, error) {
	req, err := a.newRequest(query, ref)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, kerr := a.sswFn(req)
	duration := time.Since(start)
	a.metrics.RecordAlign(len(req.Query)*len(req.Ref), duration, kerr)
	a.logger.LogAlign(context.Background(), len(req.Query), len(req.Ref), duration, kerr)
	if kerr != nil {
		return nil, translateKernelError(a.sswKey.Name(), kerr)
	}
	return &SSWResult{
		Score:      res.Score,
		QueryBegin: res.BeginQuery,
		QueryEnd:   res.EndQuery,
		RefBegin:   res.BeginRef,
		RefEnd:     res.EndRef,
		Saturated:  res.Saturated,
	}, nil
}

// AlignBatch aligns one query (or the bound profile) against many
// references concurrently, bounded by GOMAXPROCS. Results are returned in
// input order. The first failure cancels the remaining work and is returned
// alongside the partial results; entries that did not complete are nil.
func (a *Aligner) AlignBatch(ctx context.Context, query []byte, refs [][]byte) ([]*AlignResult, error) {
	results := make([]*AlignResult, len(refs))
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.Align(query, ref)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for _, r := range results {
		if r == nil {
			failed++
		}
	}
	a.metrics.RecordBatch(len(refs), failed, time.Since(start))
	return results, err
}

// newRequest validates the inputs and assembles the kernel request,
// resolving the query from the bound profile or encoding the raw bytes.
func (a *Aligner) newRequest(query, ref []byte) (*kernel.Request, error) {
	req := &kernel.Request{
		Matrix:    a.m,
		Ref:       ref,
		GapOpen:   a.gapOpen,
		GapExtend: a.gapExtend,
		Bandwidth: a.bandwidth,
	}
	if len(ref) == 0 {
		return nil, ErrEmptyReference
	}

	switch {
	case a.profile != nil:
		if query != nil {
			return nil, ErrAmbiguousQuerySource
		}
		req.Query = a.profile.query
		req.QueryRows = a.profile.rows
	case query == nil:
		return nil, ErrMissingQuery
	default:
		if len(query) == 0 {
			return nil, ErrEmptyQuery
		}
		if a.m.IsPSSM() && len(query) > a.m.Rows() {
			err := ErrQueryLengthMismatch
			a.metrics.RecordProfileBuild(len(query), err)
			a.logger.LogProfileBuild(context.Background(), len(query), a.key.Stats, err)
			return nil, err
		}
		req.Query = query
		req.QueryRows = kernel.EncodeQuery(a.m, query)
		a.metrics.RecordProfileBuild(len(query), nil)
		a.logger.LogProfileBuild(context.Background(), len(query), a.key.Stats, nil)
	}
	return req, nil
}

// run invokes a resolved kernel and wraps its output, recording metrics and
// logging the call.
func (a *Aligner) run(fn kernel.Func, key kernel.Key, req *kernel.Request) (*AlignResult, error) {
	start := time.Now()
	res, err := fn(req)
	duration := time.Since(start)
	a.metrics.RecordAlign(len(req.Query)*len(req.Ref), duration, err)
	a.logger.LogAlign(context.Background(), len(req.Query), len(req.Ref), duration, err)
	if err != nil {
		return nil, translateKernelError(key.Name(), err)
	}
	return newAlignResult(res, req), nil
}
