package prefetch

import (
	"errors"
	"fmt"
	"log"
	"time"

	"cutscene-player/pkg/decoder"
	"cutscene-player/pkg/performance"
	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
)

// ErrDecodeStall is reported once a sheet has failed every allowed attempt.
// The scheduler stops issuing work for the video after that.
var ErrDecodeStall = errors.New("prefetch: decode stalled")

var errJobTimeout = errors.New("job timed out")

// Dispatcher runs decode jobs off the main loop. decoder.Pool implements it.
type Dispatcher interface {
	Submit(job decoder.Job) bool
	Results() <-chan decoder.Payload
}

// KeyFunc maps a sheet of a video to its storage key.
type KeyFunc func(v sharedTypes.VideoDescriptor, index int) string

type Options struct {
	// Timeout after which an in-flight job is considered lost. Zero disables it.
	Timeout time.Duration
	// MaxRetries is how many times the head sheet is re-issued before stalling.
	MaxRetries int
	// Backoff is multiplied by the attempt number to delay a re-issue.
	Backoff time.Duration
	// Debug logs every cached sheet.
	Debug bool
}

// Scheduler keeps the pending sheet queue for the selected video and feeds
// it to the dispatcher one job at a time. Only the head of the queue is ever
// in flight, so sheets arrive in index order.
//
// Scheduler belongs to the main loop and is not safe for concurrent use.
type Scheduler struct {
	dispatcher Dispatcher
	cache      *sheetCache.Cache
	keyFor     KeyFunc
	opts       Options
	monitor    *performance.PerformanceMonitor

	generation uint64
	video      sharedTypes.VideoDescriptor
	queue      []int

	attempt  int
	inFlight bool
	issuedAt time.Time
	retryAt  time.Time

	// Jobs of this generation submitted but not yet returned. They all
	// target outstandingFor, since a new sheet is only issued once it is 0.
	outstanding    int
	outstandingFor int

	err error
}

func New(dispatcher Dispatcher, cache *sheetCache.Cache, keyFor KeyFunc, opts Options) *Scheduler {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	return &Scheduler{
		dispatcher: dispatcher,
		cache:      cache,
		keyFor:     keyFor,
		opts:       opts,
		video:      sharedTypes.VideoDescriptor{ID: sharedTypes.NoVideo},
	}
}

// SetMonitor attaches performance counters. nil detaches.
func (s *Scheduler) SetMonitor(m *performance.PerformanceMonitor) {
	s.monitor = m
}

// Reset abandons the current video. The generation is bumped so every result
// still on its way from a worker is dropped on arrival.
func (s *Scheduler) Reset() {
	s.generation++
	if len(s.queue) > 0 || s.inFlight {
		log.Printf("Prefetch: queue reset | video=%s | dropped=%d | inFlight=%v | generation=%d",
			s.video.Name, len(s.queue), s.inFlight, s.generation)
	}
	s.video = sharedTypes.VideoDescriptor{ID: sharedTypes.NoVideo}
	s.queue = nil
	s.attempt = 0
	s.inFlight = false
	s.issuedAt = time.Time{}
	s.retryAt = time.Time{}
	s.outstanding = 0
	s.err = nil
}

// Begin resets the scheduler and queues sheets first..SheetCount-1 of v.
func (s *Scheduler) Begin(v sharedTypes.VideoDescriptor, first int) {
	s.Reset()
	s.video = v
	if first < 0 {
		first = 0
	}
	for i := first; i < v.SheetCount; i++ {
		s.queue = append(s.queue, i)
	}
	log.Printf("Prefetch: begin | video=%s | sheets=%d..%d | generation=%d", v.Name, first, v.SheetCount-1, s.generation)
}

// Tick drains every result that is ready without blocking, then checks the
// in-flight job for a timeout and launches the next job if the pipe is free.
func (s *Scheduler) Tick(now time.Time) {
	start := time.Now()

drain:
	for {
		select {
		case payload := <-s.dispatcher.Results():
			s.handle(payload, now)
		default:
			break drain
		}
	}

	if s.inFlight && s.opts.Timeout > 0 && now.Sub(s.issuedAt) >= s.opts.Timeout {
		if s.monitor != nil {
			s.monitor.RecordTimeout()
		}
		s.fail(now, errJobTimeout)
	}

	s.launch(now)

	if s.monitor != nil {
		s.monitor.RecordDrain(time.Since(start))
	}
}

func (s *Scheduler) handle(p decoder.Payload, now time.Time) {
	job := p.Job
	if job.Generation != s.generation || job.Video != s.video.ID {
		if s.monitor != nil {
			s.monitor.RecordStaleDrop()
		}
		log.Printf("Prefetch: stale payload dropped | video=%d | sheet=%d | generation=%d | current=%d",
			job.Video, job.Index, job.Generation, s.generation)
		return
	}
	if s.outstanding > 0 {
		s.outstanding--
	}

	err := p.Err
	if err == nil {
		if s.monitor != nil {
			s.monitor.RecordSheetDecode(p.Elapsed)
		}
		var sheet *sheetCache.Sheet
		sheet, err = sheetCache.NewSheet(job.Index, p.Pix, p.Width, p.Height)
		if err == nil {
			s.cache.Insert(job.Video, job.Index, sheet)
			if s.opts.Debug {
				log.Printf("Prefetch: sheet cached | video=%s | sheet=%d | took=%s", s.video.Name, job.Index, p.Elapsed)
			}
		}
	}
	if err != nil && s.monitor != nil {
		s.monitor.RecordRejected()
	}

	isHead := len(s.queue) > 0 && s.queue[0] == job.Index
	switch {
	case !isHead:
		// An earlier attempt finishing late; nothing to advance.
	case err == nil:
		s.advance()
	case s.inFlight && job.Attempt == s.attempt:
		s.fail(now, err)
	}
}

func (s *Scheduler) advance() {
	s.queue = s.queue[1:]
	s.attempt = 0
	s.inFlight = false
	s.retryAt = time.Time{}
}

func (s *Scheduler) fail(now time.Time, cause error) {
	s.inFlight = false
	head := s.queue[0]

	if s.attempt >= s.opts.MaxRetries {
		s.err = fmt.Errorf("%w: video=%s sheet=%d attempts=%d: %v", ErrDecodeStall, s.video.Name, head, s.attempt+1, cause)
		log.Printf("Prefetch: %v", s.err)
		s.queue = nil
		return
	}

	s.attempt++
	s.retryAt = now.Add(s.opts.Backoff * time.Duration(s.attempt))
	if s.monitor != nil {
		s.monitor.RecordRetry()
	}
	log.Printf("Prefetch: retrying sheet | video=%s | sheet=%d | attempt=%d | after=%s | cause=%v",
		s.video.Name, head, s.attempt, s.retryAt.Sub(now), cause)
}

func (s *Scheduler) launch(now time.Time) {
	if s.err != nil || s.inFlight {
		return
	}
	for len(s.queue) > 0 && s.cache.Has(s.video.ID, s.queue[0]) {
		s.advance()
	}
	if len(s.queue) == 0 || now.Before(s.retryAt) {
		return
	}

	index := s.queue[0]
	if s.outstanding > 0 && s.outstandingFor != index {
		// A superseded attempt for the previous sheet is still decoding.
		if s.opts.Timeout <= 0 || now.Sub(s.issuedAt) < s.opts.Timeout {
			return
		}
		log.Printf("Prefetch: giving up on %d outstanding job(s) | video=%s | sheet=%d",
			s.outstanding, s.video.Name, s.outstandingFor)
		s.outstanding = 0
	}
	job := decoder.Job{
		Generation: s.generation,
		Video:      s.video.ID,
		Index:      index,
		Attempt:    s.attempt,
		Key:        s.keyFor(s.video, index),
	}
	if !s.dispatcher.Submit(job) {
		return
	}
	s.inFlight = true
	s.issuedAt = now
	s.outstanding++
	s.outstandingFor = index
}

// Pending returns the number of sheets not yet delivered, head included.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// InFlight reports whether a job is currently issued.
func (s *Scheduler) InFlight() bool {
	return s.inFlight
}

// Outstanding is the number of issued jobs whose result has not come back,
// including attempts that already timed out.
func (s *Scheduler) Outstanding() int {
	return s.outstanding
}

// Err returns ErrDecodeStall (wrapped) once the scheduler gave up on a sheet.
func (s *Scheduler) Err() error {
	return s.err
}

// Generation identifies the current selection.
func (s *Scheduler) Generation() uint64 {
	return s.generation
}

// Done reports whether nothing more will be delivered for the current video.
func (s *Scheduler) Done() bool {
	return len(s.queue) == 0 && !s.inFlight
}
