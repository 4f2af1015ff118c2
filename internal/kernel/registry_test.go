package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palign/palign/matrix"
)

func TestLookupSupported(t *testing.T) {
	keys := []Key{
		{Mode: Global, Width: WidthSat},
		{Mode: Global, Stats: true, Trace: true, Width: Width16},
		{Mode: SemiGlobal, Gaps: GapPolicy{QueryPrefix: true}, Stats: true, Width: Width32},
		{Mode: Local, Trace: true, Strategy: Scan, Width: Width8},
		{Mode: Local, RowCol: true, Stats: true, Width: Width64},
		{Mode: Global, Table: true, Strategy: Diag, Width: Width32},
		{Mode: Global, Profile: true, Strategy: Striped, Width: Width16},
		{Mode: Banded, Width: Width32},
		{Mode: SSW, Width: Width16},
	}
	for _, key := range keys {
		t.Run(key.Name(), func(t *testing.T) {
			fn, err := Lookup(key)
			require.NoError(t, err)
			require.NotNil(t, fn)
		})
	}
}

func TestLookupUnsupported(t *testing.T) {
	keys := []Key{
		{Mode: Global, Width: Width(3)},
		{Mode: Global, Table: true, RowCol: true, Width: Width32},
		{Mode: Global, Trace: true, Table: true, Width: Width32},
		{Mode: Global, Trace: true, RowCol: true, Width: Width32},
		{Mode: Global, Stats: true, Table: true, Width: Width32},
		{Mode: SemiGlobal, Stats: true, Trace: true, Width: Width32},
		{Mode: Local, Stats: true, Trace: true, Width: Width32},
		{Mode: Global, Profile: true, Strategy: Diag, Width: Width32},
		{Mode: Banded, Stats: true, Width: Width32},
		{Mode: Banded, Trace: true, Width: Width32},
		{Mode: SSW, Table: true, Width: Width16},
		{Mode: SSW, Profile: true, Width: Width16},
		{Mode: Mode(200), Width: Width32},
	}
	for _, key := range keys {
		t.Run(key.Name(), func(t *testing.T) {
			_, err := Lookup(key)
			var target *ErrUnsupported
			require.ErrorAs(t, err, &target)
			assert.Equal(t, key, target.Key)
		})
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{Key{Mode: Global, Width: WidthSat}, "nw_striped_sat"},
		{Key{Mode: Global, Trace: true, Strategy: Scan, Width: Width16}, "nw_trace_scan_16"},
		{
			Key{
				Mode:     SemiGlobal,
				Gaps:     GapPolicy{QueryPrefix: true, RefPrefix: true, RefSuffix: true},
				Stats:    true,
				Strategy: Striped,
				Width:    Width16,
			},
			"sg_qb_dx_stats_striped_16",
		},
		{
			Key{Mode: SemiGlobal, Gaps: GapPolicy{QuerySuffix: true}, Width: Width32},
			"sg_qe_striped_32",
		},
		{Key{Mode: Local, Profile: true, Strategy: Striped, Width: Width8}, "sw_striped_profile_8"},
		{Key{Mode: Local, Table: true, Width: Width64}, "sw_table_striped_64"},
		{Key{Mode: Global, RowCol: true, Width: Width32}, "nw_rowcol_striped_32"},
		{Key{Mode: Banded, Width: Width32}, "nw_banded"},
		{Key{Mode: SSW, Width: Width16}, "ssw"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.Name())
	}
}

func TestEncodeQuery(t *testing.T) {
	m := matrix.Default()
	rows := EncodeQuery(m, []byte("ACGN"))
	assert.Equal(t, []int{0, 1, 2, 4}, rows, "unknown symbol maps to the wildcard row")

	pssm, err := m.ToPSSM([]byte("ACG"))
	require.NoError(t, err)
	rows = EncodeQuery(pssm, []byte("ACG"))
	assert.Equal(t, []int{0, 1, 2}, rows, "position-specific rows index by position")
}
