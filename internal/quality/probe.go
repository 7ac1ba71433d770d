package quality

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// HardwareProbe supplies the raw signals the detector scores. Fields with
// their zero value mean "unknown" and are scored neutrally, never as zero
// capacity.
type HardwareProbe struct {
	Cores       int
	MemoryBytes uint64
	ScreenW     int
	ScreenH     int
}

// DefaultProbe reads the host's real core count and memory. Callers fill
// in the terminal dimensions themselves.
func DefaultProbe() HardwareProbe {
	return HardwareProbe{
		Cores:       runtime.NumCPU(),
		MemoryBytes: probeMemoryBytes(),
	}
}

// probeMemoryBytes reads MemTotal from /proc/meminfo. Returns 0 when the
// file is missing or unparseable (non-Linux hosts, restricted containers).
func probeMemoryBytes() uint64 {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}

// memoryTier buckets a byte count into a MemoryLevel. Unknown (0) reports
// medium so a missing introspection API cannot sink the score.
func memoryTier(bytes uint64) MemoryLevel {
	const gb = 1 << 30
	switch {
	case bytes == 0:
		return MemoryMedium
	case bytes < 2*gb:
		return MemoryLow
	case bytes < 8*gb:
		return MemoryMedium
	default:
		return MemoryHigh
	}
}
