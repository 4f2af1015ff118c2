package kernel

// Lookup resolves a key to its kernel entry point. It is the single place
// where the closed set of supported mode/flag combinations is enforced;
// callers resolve once at configuration-freeze time and reuse the returned
// function for every alignment.
func Lookup(key Key) (Func, error) {
	if !key.Width.Valid() {
		return nil, &ErrUnsupported{Key: key}
	}
	if key.Table && key.RowCol {
		return nil, &ErrUnsupported{Key: key}
	}
	if key.Trace && (key.Table || key.RowCol) {
		return nil, &ErrUnsupported{Key: key}
	}
	// The table block computes its own per-cell statistics; the summary
	// stats flag is mutually exclusive with it.
	if key.Stats && key.Table {
		return nil, &ErrUnsupported{Key: key}
	}
	// Stats and traceback coexist only on the global recurrence; the
	// combination is undefined elsewhere, so it never resolves.
	if key.Stats && key.Trace && key.Mode != Global {
		return nil, &ErrUnsupported{Key: key}
	}

	switch key.Mode {
	case Global, Local:
		if key.Profile && key.Strategy == Diag {
			return nil, &ErrUnsupported{Key: key}
		}
		return func(req *Request) (*Result, error) { return gotoh(req, key) }, nil

	case SemiGlobal:
		if key.Profile && key.Strategy == Diag {
			return nil, &ErrUnsupported{Key: key}
		}
		return func(req *Request) (*Result, error) { return gotoh(req, key) }, nil

	case Banded:
		// The banded kernel computes score and bounds only, and never
		// consumes a profile.
		if key.Stats || key.Table || key.RowCol || key.Trace || key.Profile {
			return nil, &ErrUnsupported{Key: key}
		}
		return func(req *Request) (*Result, error) { return banded(req, key) }, nil

	case SSW:
		if key.Stats || key.Table || key.RowCol || key.Trace || key.Profile {
			return nil, &ErrUnsupported{Key: key}
		}
		return func(req *Request) (*Result, error) { return ssw(req, key) }, nil

	default:
		return nil, &ErrUnsupported{Key: key}
	}
}
