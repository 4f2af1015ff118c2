package kernel

// banded runs the global recurrence restricted to a diagonal band of
// half-width req.Bandwidth around the main diagonal. Cells outside the band
// are never computed; an optimal path that would leave the band is silently
// approximated by the best in-band path. The band must at least cover the
// terminal diagonal (|len(query)-len(ref)| <= bandwidth).
func banded(req *Request, key Key) (*Result, error) {
	m := len(req.QueryRows)
	n := len(req.Ref)
	if m == 0 || n == 0 {
		return nil, ErrEmptyInput
	}
	k := req.Bandwidth
	if diff := m - n; diff > k || -diff > k {
		return nil, ErrBandTooNarrow
	}

	open, ext := req.GapOpen, req.GapExtend

	prevH := make([]int, n+1)
	curH := make([]int, n+1)
	fCol := make([]int, n+1)

	prevH[0] = 0
	fCol[0] = negInf
	for j := 1; j <= n; j++ {
		if j <= k {
			prevH[j] = -(open + (j-1)*ext)
		} else {
			prevH[j] = negInf
		}
		fCol[j] = negInf
	}

	minCell, maxCell := 0, 0
	for i := 1; i <= m; i++ {
		qrow := req.QueryRows[i-1]

		lo := i - k
		if lo < 1 {
			lo = 1
		}
		hi := i + k
		if hi > n {
			hi = n
		}

		if i <= k {
			curH[0] = -(open + (i-1)*ext)
		} else {
			curH[0] = negInf
		}
		if lo > 1 {
			curH[lo-1] = negInf
		}
		e := negInf

		for j := lo; j <= hi; j++ {
			s := req.Matrix.ScoreIndexed(qrow, req.Ref[j-1])
			diag := prevH[j-1] + s

			if eo := curH[j-1] - open; eo >= e-ext {
				e = eo
			} else {
				e -= ext
			}
			if fo := prevH[j] - open; fo >= fCol[j]-ext {
				fCol[j] = fo
			} else {
				fCol[j] -= ext
			}

			h := diag
			if e > h {
				h = e
			}
			if fCol[j] > h {
				h = fCol[j]
			}
			curH[j] = h

			if h > negInf/2 {
				if h < minCell {
					minCell = h
				}
				if h > maxCell {
					maxCell = h
				}
			}
		}
		if hi < n {
			curH[hi+1] = negInf
		}
		// invalidate stale F entries at the band's leading edge
		if hi+1 <= n {
			fCol[hi+1] = negInf
		}

		prevH, curH = curH, prevH
	}

	res := &Result{
		Key:      key,
		ISA:      Active(),
		M:        m,
		N:        n,
		Score:    prevH[n],
		EndQuery: m - 1,
		EndRef:   n - 1,
	}
	resolveWidth(res, key.Width, minCell, maxCell)
	return res, nil
}
