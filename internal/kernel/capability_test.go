package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISA(t *testing.T) {
	tests := []struct {
		in   string
		want ISA
		ok   bool
	}{
		{"generic", Generic, true},
		{"neon", NEON, true},
		{"sse41", SSE41, true},
		{"avx2", AVX2, true},
		{"AVX2", AVX2, true},
		{"avx512", AVX512, true},
		{"", Generic, false},
		{"sse9000", Generic, false},
	}
	for _, tt := range tests {
		got, ok := ParseISA(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestActiveISA(t *testing.T) {
	isa := Active()
	require.True(t, isaAvailable(isa), "active ISA must be available on this host")
	assert.Greater(t, isa.LaneBits(), 0)
	assert.NotEmpty(t, isa.String())
}

func TestLaneBits(t *testing.T) {
	assert.Equal(t, 64, Generic.LaneBits())
	assert.Equal(t, 128, NEON.LaneBits())
	assert.Equal(t, 128, SSE41.LaneBits())
	assert.Equal(t, 256, AVX2.LaneBits())
	assert.Equal(t, 512, AVX512.LaneBits())
}
