// Package palign computes pairwise sequence alignments between a query and
// one or more reference sequences.
//
// The engine supports global (Needleman-Wunsch), semi-global with
// independently configurable end-gap permissions, local (Smith-Waterman),
// banded global, and striped Smith-Waterman emulation modes, scored by a
// substitution matrix or a position-specific scoring matrix with affine gap
// penalties.
//
// Configuration is assembled with an immutable fluent builder and frozen
// into an Aligner by Build, which validates every flag combination and
// resolves the concrete dynamic-programming kernel exactly once. The frozen
// Aligner is safe for concurrent use.
//
// Basic usage:
//
//	aligner, err := palign.NewAlignerBuilder().
//	    GapOpen(5).
//	    GapExtend(2).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := aligner.Align([]byte("ACGT"), []byte("ACGTAACGTACA"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Score())
//
// When one query is aligned against many references with the striped or
// scan strategy, building a Profile once amortizes the query encoding:
//
//	m := matrix.Default()
//	profile, err := palign.NewProfile([]byte("ACGT"), m, false)
//	aligner, err := palign.NewAlignerBuilder().Profile(profile).Build()
//	r1, err := aligner.Align(nil, ref1)
//	r2, err := aligner.Align(nil, ref2)
package palign
