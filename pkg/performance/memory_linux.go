//go:build linux

package performance

import (
	"log"
	"time"

	"golang.org/x/sys/unix"
)

// GetSystemMemory retrieves current system memory information on Linux
func GetSystemMemory() MemorySnapshot {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		log.Printf("GetSystemMemory: failed to get sysinfo: %v", err)
		return MemorySnapshot{
			Timestamp: time.Now(),
		}
	}

	// Sysinfo reports sizes in multiples of info.Unit bytes
	unit := uint64(info.Unit)

	totalMB := (uint64(info.Totalram) * unit) / (1024 * 1024)
	freeMB := (uint64(info.Freeram) * unit) / (1024 * 1024)
	bufferMB := (uint64(info.Bufferram) * unit) / (1024 * 1024)

	// Buffers are reclaimable
	availableMB := freeMB + bufferMB
	usedMB := totalMB - availableMB

	return MemorySnapshot{
		Timestamp:   time.Now(),
		TotalMB:     totalMB,
		AvailableMB: availableMB,
		UsedMB:      usedMB,
		FreeMB:      freeMB,
	}
}
