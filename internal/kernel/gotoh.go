package kernel

// gotoh runs the affine-gap three-matrix recurrence shared by the global,
// semi-global, and local kernels. H scores alignments ending in a
// substitution column, E alignments ending in a gap in the query (consuming
// reference), F alignments ending in a gap in the reference (consuming
// query). Boundary conditions and end-cell selection are parameterized by
// the mode and the four gap permissions.
func gotoh(req *Request, key Key) (*Result, error) {
	m := len(req.QueryRows)
	n := len(req.Ref)
	if m == 0 || n == 0 {
		return nil, ErrEmptyInput
	}

	open, ext := req.GapOpen, req.GapExtend
	local := key.Mode == Local
	freeQP := local || (key.Mode == SemiGlobal && key.Gaps.QueryPrefix)
	freeRP := local || (key.Mode == SemiGlobal && key.Gaps.RefPrefix)

	prevH := make([]int, n+1)
	curH := make([]int, n+1)
	fCol := make([]int, n+1)

	// The table block carries per-cell matches/similar/length alongside
	// scores, so statistics propagation runs for tables too; the summary
	// stats are only reported when key.Stats is set.
	var st *statState
	if key.Stats || key.Table {
		st = newStatState(n)
	}

	var (
		scoreTab, matchTab, simTab, lenTab []int
		trace                              []byte
	)
	if key.Table {
		scoreTab = make([]int, m*n)
		matchTab = make([]int, m*n)
		simTab = make([]int, m*n)
		lenTab = make([]int, m*n)
	}
	if key.Trace {
		trace = make([]byte, m*n)
	}

	// Last column of H, kept for semi-global end selection and rowcol
	// output.
	lastCol := make([]int, m+1)
	var lastColM, lastColS, lastColL []int
	if st != nil {
		lastColM = make([]int, m+1)
		lastColS = make([]int, m+1)
		lastColL = make([]int, m+1)
	}

	// Row 0 boundary.
	prevH[0] = 0
	fCol[0] = negInf
	for j := 1; j <= n; j++ {
		if freeQP {
			prevH[j] = 0
		} else {
			prevH[j] = -(open + (j-1)*ext)
		}
		fCol[j] = negInf
		if st != nil && !freeQP {
			st.prevL[j] = j
		}
	}

	minCell, maxCell := 0, 0
	bestScore, bestI, bestJ := 0, 1, 1
	var bestM, bestS, bestL int

	for i := 1; i <= m; i++ {
		qrow := req.QueryRows[i-1]
		qc := req.Query[i-1]

		if freeRP {
			curH[0] = 0
		} else {
			curH[0] = -(open + (i-1)*ext)
		}
		e := negInf
		var eM, eS, eL int
		if st != nil {
			st.curM[0], st.curS[0] = 0, 0
			if freeRP {
				st.curL[0] = 0
			} else {
				st.curL[0] = i
			}
		}

		for j := 1; j <= n; j++ {
			rc := req.Ref[j-1]
			s := req.Matrix.ScoreIndexed(qrow, rc)
			diag := prevH[j-1] + s

			eOpen := curH[j-1] - open
			eFromOpen := eOpen >= e-ext
			if eFromOpen {
				e = eOpen
			} else {
				e -= ext
			}

			fOpen := prevH[j] - open
			fFromOpen := fOpen >= fCol[j]-ext
			if fFromOpen {
				fCol[j] = fOpen
			} else {
				fCol[j] -= ext
			}

			h := diag
			src := byte(TraceDiag)
			if e > h {
				h = e
				src = TraceLeft
			}
			if fCol[j] > h {
				h = fCol[j]
				src = TraceUp
			}
			if local && h <= 0 {
				h = 0
				src = TraceZero
			}
			curH[j] = h

			var hM, hS, hL int
			if st != nil {
				if eFromOpen {
					eM, eS, eL = st.curM[j-1], st.curS[j-1], st.curL[j-1]+1
				} else {
					eL++
				}
				if fFromOpen {
					st.fM[j], st.fS[j], st.fL[j] = st.prevM[j], st.prevS[j], st.prevL[j]+1
				} else {
					st.fL[j]++
				}
				switch src {
				case TraceDiag:
					hM = st.prevM[j-1] + b2i(foldEq(qc, rc))
					hS = st.prevS[j-1] + b2i(s > 0)
					hL = st.prevL[j-1] + 1
				case TraceLeft:
					hM, hS, hL = eM, eS, eL
				case TraceUp:
					hM, hS, hL = st.fM[j], st.fS[j], st.fL[j]
				case TraceZero:
					hM, hS, hL = 0, 0, 0
				}
				st.curM[j], st.curS[j], st.curL[j] = hM, hS, hL
			}

			if scoreTab != nil {
				idx := (i-1)*n + (j - 1)
				scoreTab[idx] = h
				if matchTab != nil {
					matchTab[idx] = hM
					simTab[idx] = hS
					lenTab[idx] = hL
				}
			}
			if trace != nil {
				t := src
				if eFromOpen {
					t |= TraceLeftOpen
				}
				if fFromOpen {
					t |= TraceUpOpen
				}
				trace[(i-1)*n+(j-1)] = t
			}

			if h < minCell {
				minCell = h
			}
			if h > maxCell {
				maxCell = h
			}
			if local && h > bestScore {
				bestScore, bestI, bestJ = h, i, j
				bestM, bestS, bestL = hM, hS, hL
			}
		}

		lastCol[i] = curH[n]
		if st != nil {
			lastColM[i], lastColS[i], lastColL[i] = st.curM[n], st.curS[n], st.curL[n]
		}

		prevH, curH = curH, prevH
		if st != nil {
			st.swap()
		}
	}
	// prevH now holds row m.

	res := &Result{
		Key: key,
		ISA: Active(),
		M:   m,
		N:   n,
	}

	if local {
		res.Score = bestScore
		res.EndQuery = bestI - 1
		res.EndRef = bestJ - 1
		if key.Stats {
			res.Matches, res.Similar, res.Length = bestM, bestS, bestL
		}
	} else {
		res.Score = prevH[n]
		res.EndQuery = m - 1
		res.EndRef = n - 1
		endM, endS, endL := 0, 0, 0
		if st != nil {
			endM, endS, endL = st.prevM[n], st.prevS[n], st.prevL[n]
		}
		if key.Mode == SemiGlobal && key.Gaps.QuerySuffix {
			for j := 1; j <= n; j++ {
				if prevH[j] > res.Score {
					res.Score = prevH[j]
					res.EndQuery, res.EndRef = m-1, j-1
					if st != nil {
						endM, endS, endL = st.prevM[j], st.prevS[j], st.prevL[j]
					}
				}
			}
		}
		if key.Mode == SemiGlobal && key.Gaps.RefSuffix {
			for i := 1; i <= m; i++ {
				if lastCol[i] > res.Score {
					res.Score = lastCol[i]
					res.EndQuery, res.EndRef = i-1, n-1
					if st != nil {
						endM, endS, endL = lastColM[i], lastColS[i], lastColL[i]
					}
				}
			}
		}
		if key.Stats {
			res.Matches, res.Similar, res.Length = endM, endS, endL
		}
	}

	if key.Table {
		res.ScoreTable = scoreTab
		res.MatchesTable = matchTab
		res.SimilarTable = simTab
		res.LengthTable = lenTab
	}
	if key.RowCol || key.Table {
		res.ScoreRow = append([]int(nil), prevH[1:]...)
		res.ScoreCol = append([]int(nil), lastCol[1:]...)
		if st != nil && (key.Stats || key.Table) {
			res.MatchesRow = append([]int(nil), st.prevM[1:]...)
			res.SimilarRow = append([]int(nil), st.prevS[1:]...)
			res.LengthRow = append([]int(nil), st.prevL[1:]...)
			res.MatchesCol = append([]int(nil), lastColM[1:]...)
			res.SimilarCol = append([]int(nil), lastColS[1:]...)
			res.LengthCol = append([]int(nil), lastColL[1:]...)
		}
	}
	if key.Trace {
		res.Trace = trace
	}

	resolveWidth(res, key.Width, minCell, maxCell)
	return res, nil
}

// statState holds per-row statistics propagation for matches/similar/length
// along the optimal path to each cell, avoiding a full traceback.
type statState struct {
	prevM, prevS, prevL []int
	curM, curS, curL    []int
	fM, fS, fL          []int
}

func newStatState(n int) *statState {
	return &statState{
		prevM: make([]int, n+1), prevS: make([]int, n+1), prevL: make([]int, n+1),
		curM: make([]int, n+1), curS: make([]int, n+1), curL: make([]int, n+1),
		fM: make([]int, n+1), fS: make([]int, n+1), fL: make([]int, n+1),
	}
}

func (s *statState) swap() {
	s.prevM, s.curM = s.curM, s.prevM
	s.prevS, s.curS = s.curS, s.prevS
	s.prevL, s.curL = s.curL, s.prevL
}

// resolveWidth settles the reported accumulator width and saturation flag
// from the observed cell value range. The portable kernels compute exact
// scores; a requested narrow width that the range exceeds is reported as
// saturated rather than clamped.
func resolveWidth(res *Result, requested Width, minCell, maxCell int) {
	fits := func(w Width) bool {
		switch w {
		case Width8:
			return minCell >= -128 && maxCell <= 127
		case Width16:
			return minCell >= -32768 && maxCell <= 32767
		case Width32:
			return minCell >= -1<<31 && maxCell <= 1<<31-1
		default:
			return true
		}
	}
	switch requested {
	case WidthSat:
		switch {
		case fits(Width8):
			res.Width = Width8
		case fits(Width16):
			res.Width, res.Saturated = Width16, true
		case fits(Width32):
			res.Width, res.Saturated = Width32, true
		default:
			res.Width, res.Saturated = Width64, true
		}
	default:
		res.Width = requested
		res.Saturated = !fits(requested)
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// foldEq compares two sequence symbols ignoring ASCII case.
func foldEq(a, b byte) bool {
	if a == b {
		return true
	}
	if a >= 'a' && a <= 'z' {
		a -= 'a' - 'A'
	}
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return a == b
}
