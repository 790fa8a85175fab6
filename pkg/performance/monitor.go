package performance

import (
	"sync"
	"time"
)

// RollingAverage maintains a rolling average of durations over a fixed window
type RollingAverage struct {
	samples    []time.Duration
	maxSamples int
	sum        time.Duration
	index      int
	filled     bool
	mu         sync.RWMutex
}

// NewRollingAverage creates a rolling average tracker with specified window size
func NewRollingAverage(windowSize int) *RollingAverage {
	return &RollingAverage{
		samples:    make([]time.Duration, windowSize),
		maxSamples: windowSize,
	}
}

// Add records a new sample and updates the rolling average
func (r *RollingAverage) Add(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Subtract old value if we're overwriting
	if r.filled {
		r.sum -= r.samples[r.index]
	}

	// Add new value
	r.samples[r.index] = d
	r.sum += d

	// Advance index
	r.index++
	if r.index >= r.maxSamples {
		r.index = 0
		r.filled = true
	}
}

// Average returns the current rolling average
func (r *RollingAverage) Average() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.filled && r.index == 0 {
		return 0 // No samples yet
	}

	count := r.index
	if r.filled {
		count = r.maxSamples
	}

	if count == 0 {
		return 0
	}

	return r.sum / time.Duration(count)
}

// Count returns the number of samples currently tracked
func (r *RollingAverage) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.filled {
		return r.maxSamples
	}
	return r.index
}

// Reset clears all samples
func (r *RollingAverage) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sum = 0
	r.index = 0
	r.filled = false
	r.samples = make([]time.Duration, r.maxSamples)
}

// PerformanceMonitor tracks sheet streaming and playback health
type PerformanceMonitor struct {
	decodeTimes *RollingAverage
	drainTimes  *RollingAverage

	sheetsDecoded int
	staleDrops    int
	rejected      int
	retries       int
	timeouts      int
	framesShown   int
	bufferingGaps int

	startTime time.Time
	mu        sync.RWMutex
}

// PerformanceReport contains aggregated performance metrics
type PerformanceReport struct {
	AvgDecodeMs   float64 // Average read+decode time per sheet in milliseconds
	AvgDrainMs    float64 // Average time spent draining results per tick
	SheetsDecoded int
	StaleDrops    int // Payloads discarded because their selection was abandoned
	Rejected      int // Payloads that failed to decode or convert
	Retries       int
	Timeouts      int
	FramesShown   int
	BufferingGaps int     // Frames skipped because their sheet was absent
	GapRate       float64 // Percentage of frames skipped
	IsHealthy     bool
	UptimeSeconds int64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor(windowSize int) *PerformanceMonitor {
	return &PerformanceMonitor{
		decodeTimes: NewRollingAverage(windowSize),
		drainTimes:  NewRollingAverage(windowSize),
		startTime:   time.Now(),
	}
}

// RecordSheetDecode records the time a worker spent reading and decoding one sheet
func (p *PerformanceMonitor) RecordSheetDecode(duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.decodeTimes.Add(duration)
	p.sheetsDecoded++
}

// RecordDrain records the time one tick spent draining decoder results
func (p *PerformanceMonitor) RecordDrain(duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.drainTimes.Add(duration)
}

func (p *PerformanceMonitor) RecordStaleDrop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.staleDrops++
}

func (p *PerformanceMonitor) RecordRejected() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected++
}

func (p *PerformanceMonitor) RecordRetry() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.retries++
}

func (p *PerformanceMonitor) RecordTimeout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeouts++
}

// RecordFrame counts one playback frame; shown is false when its sheet was
// not cached yet and nothing was drawn.
func (p *PerformanceMonitor) RecordFrame(shown bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if shown {
		p.framesShown++
	} else {
		p.bufferingGaps++
	}
}

// GetReport generates a performance report with current metrics
func (p *PerformanceMonitor) GetReport() PerformanceReport {
	p.mu.RLock()
	defer p.mu.RUnlock()

	avgDecode := p.decodeTimes.Average()
	avgDrain := p.drainTimes.Average()

	gapRate := 0.0
	if total := p.framesShown + p.bufferingGaps; total > 0 {
		gapRate = (float64(p.bufferingGaps) / float64(total)) * 100.0
	}

	// Healthy when a sheet decodes well inside its own 1.6s of playback
	// and draining never eats a noticeable part of a 60Hz tick.
	isHealthy := gapRate < 1.0 && avgDecode < 1600*time.Millisecond && avgDrain < 4*time.Millisecond

	return PerformanceReport{
		AvgDecodeMs:   float64(avgDecode.Microseconds()) / 1000.0,
		AvgDrainMs:    float64(avgDrain.Microseconds()) / 1000.0,
		SheetsDecoded: p.sheetsDecoded,
		StaleDrops:    p.staleDrops,
		Rejected:      p.rejected,
		Retries:       p.retries,
		Timeouts:      p.timeouts,
		FramesShown:   p.framesShown,
		BufferingGaps: p.bufferingGaps,
		GapRate:       gapRate,
		IsHealthy:     isHealthy,
		UptimeSeconds: int64(time.Since(p.startTime).Seconds()),
	}
}

// IsPerformanceDegrading returns true if sheets arrive slower than they play
func (p *PerformanceMonitor) IsPerformanceDegrading() bool {
	report := p.GetReport()

	return report.GapRate > 5.0 ||
		report.AvgDecodeMs > 1600.0 ||
		report.Timeouts > 0
}

// Reset clears all performance metrics
func (p *PerformanceMonitor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.decodeTimes.Reset()
	p.drainTimes.Reset()
	p.sheetsDecoded = 0
	p.staleDrops = 0
	p.rejected = 0
	p.retries = 0
	p.timeouts = 0
	p.framesShown = 0
	p.bufferingGaps = 0
	p.startTime = time.Now()
}
