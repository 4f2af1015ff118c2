package kernel

// sswMaxScore is the 16-bit score ceiling of the SSW emulation path.
const sswMaxScore = 65535

// ssw emulates the striped Smith-Waterman library interface: a local
// alignment returning only the primary score and the alignment bounds on
// both sequences. Begin positions are recovered with a second, reversed
// pass over the matched prefixes, the classic SSW technique.
func ssw(req *Request, key Key) (*Result, error) {
	fwd, err := gotoh(req, Key{Mode: Local, Strategy: key.Strategy, Width: Width32})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Key:        key,
		ISA:        Active(),
		M:          len(req.QueryRows),
		N:          len(req.Ref),
		Score:      fwd.Score,
		EndQuery:   fwd.EndQuery,
		EndRef:     fwd.EndRef,
		BeginQuery: 0,
		BeginRef:   0,
		Width:      Width16,
	}
	if res.Score > sswMaxScore {
		res.Score = sswMaxScore
		res.Saturated = true
	}
	if fwd.Score <= 0 {
		return res, nil
	}

	rev := &Request{
		Matrix:    req.Matrix,
		Query:     reverseBytes(req.Query[:fwd.EndQuery+1]),
		QueryRows: reverseInts(req.QueryRows[:fwd.EndQuery+1]),
		Ref:       reverseBytes(req.Ref[:fwd.EndRef+1]),
		GapOpen:   req.GapOpen,
		GapExtend: req.GapExtend,
	}
	back, err := gotoh(rev, Key{Mode: Local, Strategy: key.Strategy, Width: Width32})
	if err != nil {
		return nil, err
	}
	res.BeginQuery = fwd.EndQuery - back.EndQuery
	res.BeginRef = fwd.EndRef - back.EndRef
	return res, nil
}

func reverseBytes(s []byte) []byte {
	out := make([]byte, len(s))
	for i, b := range s {
		out[len(s)-1-i] = b
	}
	return out
}

func reverseInts(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
