//go:build darwin

package performance

import (
	"runtime"
	"time"
)

// GetSystemMemory approximates memory on macOS from the Go runtime. The
// numbers describe this process, not the whole system, which is enough to
// watch decoded sheets come and go during development.
func GetSystemMemory() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	sysMB := m.Sys / (1024 * 1024)
	totalMB := uint64(4096)
	usedMB := sysMB
	freeMB := uint64(0)
	if usedMB < totalMB {
		freeMB = totalMB - usedMB
	}

	return MemorySnapshot{
		Timestamp:   time.Now(),
		TotalMB:     totalMB,
		AvailableMB: freeMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
	}
}
