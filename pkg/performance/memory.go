package performance

import (
	"log"
	"runtime"
	"time"

	"cutscene-player/pkg/sharedTypes"
)

// MemorySnapshot represents memory state at a point in time
type MemorySnapshot struct {
	Timestamp   time.Time
	TotalMB     uint64 // Total system memory
	AvailableMB uint64 // Available memory for use
	UsedMB      uint64 // Currently used memory
	FreeMB      uint64 // Free memory (not including buffers/cache)
}

// SheetMB is the resident size of one decoded RGBA sheet, rounded up.
const SheetMB = (sharedTypes.SheetWidth*sharedTypes.SheetHeight*4 + (1<<20 - 1)) >> 20

// GoMemoryStats holds Go runtime memory statistics
type GoMemoryStats struct {
	AllocMB uint64 // Currently allocated heap memory
	SysMB   uint64 // Memory obtained from system
	NumGC   uint32 // Number of GC runs
}

// GetGoMemory retrieves Go runtime memory statistics
func GetGoMemory() GoMemoryStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return GoMemoryStats{
		AllocMB: m.Alloc / (1024 * 1024),
		SysMB:   m.Sys / (1024 * 1024),
		NumGC:   m.NumGC,
	}
}

// MemoryPressureLevel says how many more decoded sheets the system can hold
type MemoryPressureLevel int

const (
	MemoryPressureNone     MemoryPressureLevel = iota // room for 64+ sheets
	MemoryPressureLow                                 // 16-64 sheets
	MemoryPressureHigh                                // 4-16 sheets
	MemoryPressureCritical                            // fewer than 4 sheets
)

// PressureFor classifies availableMB against the size of a decoded sheet
func PressureFor(availableMB uint64) MemoryPressureLevel {
	sheets := availableMB / SheetMB

	switch {
	case sheets < 4:
		return MemoryPressureCritical
	case sheets < 16:
		return MemoryPressureHigh
	case sheets < 64:
		return MemoryPressureLow
	default:
		return MemoryPressureNone
	}
}

// String returns a human-readable description of memory pressure
func (m MemoryPressureLevel) String() string {
	switch m {
	case MemoryPressureNone:
		return "None"
	case MemoryPressureLow:
		return "Low"
	case MemoryPressureHigh:
		return "High"
	case MemoryPressureCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// LogMemorySnapshot logs system and runtime memory, tagged with what just happened
func LogMemorySnapshot(event string) {
	sys := GetSystemMemory()
	goMem := GetGoMemory()

	log.Printf("Memory: %s | System[Total=%dMB, Avail=%dMB, Used=%dMB] Go[Alloc=%dMB, Sys=%dMB, GC=%d] Pressure=%s",
		event,
		sys.TotalMB, sys.AvailableMB, sys.UsedMB,
		goMem.AllocMB, goMem.SysMB, goMem.NumGC,
		PressureFor(sys.AvailableMB).String())
}
