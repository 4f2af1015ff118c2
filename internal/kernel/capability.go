package kernel

import (
	"os"
	"strings"

	"golang.org/x/sys/cpu"
)

// ISA represents the instruction set the kernels are tuned for. The pure Go
// recurrences are portable; the ISA governs lane-width heuristics for the
// saturating solution width and is reported on results for diagnostics.
type ISA uint8

const (
	// Generic is the portable fallback.
	Generic ISA = iota
	// NEON is ARM64 ASIMD (128-bit lanes).
	NEON
	// SSE41 is x86-64 SSE4.1 (128-bit lanes).
	SSE41
	// AVX2 is x86-64 AVX2 (256-bit lanes).
	AVX2
	// AVX512 is x86-64 AVX-512 with BW (512-bit lanes).
	AVX512
)

// String returns the string representation of an ISA.
func (i ISA) String() string {
	switch i {
	case Generic:
		return "generic"
	case NEON:
		return "neon"
	case SSE41:
		return "sse41"
	case AVX2:
		return "avx2"
	case AVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// ParseISA parses a string into an ISA value.
func ParseISA(s string) (ISA, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "neon":
		return NEON, true
	case "sse41":
		return SSE41, true
	case "avx2":
		return AVX2, true
	case "avx512":
		return AVX512, true
	default:
		return Generic, false
	}
}

// activeISA is selected once at init. No mutex needed: init runs before any
// other package code.
var activeISA ISA

func init() {
	if override := os.Getenv("PALIGN_KERNEL"); override != "" {
		if isa, ok := ParseISA(override); ok && isaAvailable(isa) {
			activeISA = isa
			return
		}
	}
	activeISA = detectISA()
}

// Active returns the ISA selected for this process.
func Active() ISA { return activeISA }

func isaAvailable(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return cpu.ARM64.HasASIMD
	case SSE41:
		return cpu.X86.HasSSE41
	case AVX2:
		return cpu.X86.HasAVX2
	case AVX512:
		return cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW
	default:
		return false
	}
}

func detectISA() ISA {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		return AVX512
	case cpu.X86.HasAVX2:
		return AVX2
	case cpu.X86.HasSSE41:
		return SSE41
	case cpu.ARM64.HasASIMD:
		return NEON
	default:
		return Generic
	}
}

// LaneBits returns the SIMD register width the ISA provides. The saturating
// solution width starts at 8 bits regardless; wider lanes make escalation
// cheaper, which is reflected in diagnostics only.
func (i ISA) LaneBits() int {
	switch i {
	case AVX512:
		return 512
	case AVX2:
		return 256
	case NEON, SSE41:
		return 128
	default:
		return 64
	}
}
