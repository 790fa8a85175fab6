package prefetch

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cutscene-player/pkg/decoder"
	"cutscene-player/pkg/performance"
	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
)

type fakeDispatcher struct {
	submitted []decoder.Job
	results   chan decoder.Payload
	refuse    bool
}

func newFakeDispatcher() *fakeDispatcher {
	return &fakeDispatcher{results: make(chan decoder.Payload, 16)}
}

func (f *fakeDispatcher) Submit(job decoder.Job) bool {
	if f.refuse {
		return false
	}
	f.submitted = append(f.submitted, job)
	return true
}

func (f *fakeDispatcher) Results() <-chan decoder.Payload {
	return f.results
}

func (f *fakeDispatcher) last(t *testing.T) decoder.Job {
	t.Helper()
	if len(f.submitted) == 0 {
		t.Fatal("no job submitted")
	}
	return f.submitted[len(f.submitted)-1]
}

var gridPix = make([]byte, sharedTypes.SheetWidth*sharedTypes.SheetHeight*4)

func okPayload(job decoder.Job) decoder.Payload {
	return decoder.Payload{Job: job, Pix: gridPix, Width: sharedTypes.SheetWidth, Height: sharedTypes.SheetHeight}
}

func keyFor(v sharedTypes.VideoDescriptor, index int) string {
	return fmt.Sprintf("%s/%d", v.Name, index)
}

type fixture struct {
	d     *fakeDispatcher
	cache *sheetCache.Cache
	s     *Scheduler
	now   time.Time
}

func newFixture(opts Options) *fixture {
	d := newFakeDispatcher()
	c := sheetCache.New()
	return &fixture{
		d:     d,
		cache: c,
		s:     New(d, c, keyFor, opts),
		now:   time.Unix(1000, 0),
	}
}

func (f *fixture) begin(id sharedTypes.VideoID, name string, sheets int) sharedTypes.VideoDescriptor {
	v := sharedTypes.VideoDescriptor{ID: id, Name: name, SheetCount: sheets}
	f.cache.Reset(id, sheets)
	f.s.Begin(v, 1)
	return v
}

func (f *fixture) tick(d time.Duration) {
	f.now = f.now.Add(d)
	f.s.Tick(f.now)
}

func TestBeginQueuesRemainingSheets(t *testing.T) {
	f := newFixture(Options{})
	f.begin(0, "c_berlin", 3)

	if f.s.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", f.s.Pending())
	}
	f.tick(0)
	if job := f.d.last(t); job.Index != 1 || job.Key != "c_berlin/1" {
		t.Errorf("first job %+v", job)
	}
}

func TestPipelineDepthIsOne(t *testing.T) {
	f := newFixture(Options{})
	f.begin(0, "clip", 5)

	for i := 0; i < 5; i++ {
		f.tick(time.Second)
	}
	if len(f.d.submitted) != 1 {
		t.Fatalf("submitted %d jobs without any completion, want 1", len(f.d.submitted))
	}
	if !f.s.InFlight() {
		t.Error("expected a job in flight")
	}
}

func TestInOrderDelivery(t *testing.T) {
	f := newFixture(Options{})
	f.begin(0, "clip", 4)

	for want := 1; want < 4; want++ {
		f.tick(0)
		job := f.d.last(t)
		if job.Index != want {
			t.Fatalf("submitted sheet %d, want %d", job.Index, want)
		}
		f.d.results <- okPayload(job)
	}
	f.tick(0)

	if f.cache.Len() != 3 || f.cache.Prefix() != 3 {
		t.Errorf("cache len=%d prefix=%d", f.cache.Len(), f.cache.Prefix())
	}
	if !f.s.Done() {
		t.Error("scheduler should be done")
	}
}

func TestNonHeadResultDoesNotAdvance(t *testing.T) {
	f := newFixture(Options{})
	v := f.begin(0, "clip", 4)
	f.tick(0)

	f.d.results <- okPayload(decoder.Job{Generation: f.s.Generation(), Video: v.ID, Index: 2})
	f.tick(0)

	if f.s.Pending() != 3 {
		t.Errorf("Pending = %d, want 3", f.s.Pending())
	}
	if len(f.d.submitted) != 1 {
		t.Errorf("a non-head completion launched another job")
	}
}

func TestStalePayloadIsDropped(t *testing.T) {
	f := newFixture(Options{})
	f.s.SetMonitor(performance.NewPerformanceMonitor(8))
	f.begin(0, "old", 3)
	f.tick(0)
	oldJob := f.d.last(t)

	f.begin(1, "new", 3)
	f.d.results <- okPayload(oldJob)
	f.tick(0)

	if f.cache.Has(0, oldJob.Index) || f.cache.Has(1, oldJob.Index) {
		t.Error("payload from the abandoned selection was inserted")
	}
	if f.s.Pending() != 2 {
		t.Errorf("stale payload advanced the queue, Pending = %d", f.s.Pending())
	}
	if got := f.s.monitor.GetReport().StaleDrops; got != 1 {
		t.Errorf("StaleDrops = %d, want 1", got)
	}
	if job := f.d.last(t); job.Video != 1 || job.Generation == oldJob.Generation {
		t.Errorf("next job %+v should belong to the new selection", job)
	}
}

func TestSameVideoReselectDropsOldGeneration(t *testing.T) {
	f := newFixture(Options{})
	f.begin(0, "clip", 3)
	f.tick(0)
	oldJob := f.d.last(t)

	f.begin(0, "clip", 3)
	f.d.results <- okPayload(oldJob)
	f.tick(0)

	if f.cache.Has(0, oldJob.Index) {
		t.Error("payload from an older generation was inserted")
	}
}

func TestRetryWithBackoffThenStall(t *testing.T) {
	f := newFixture(Options{MaxRetries: 2, Backoff: 100 * time.Millisecond})
	f.begin(0, "clip", 3)
	f.tick(0)

	for attempt := 0; attempt <= 2; attempt++ {
		job := f.d.last(t)
		if job.Attempt != attempt || job.Index != 1 {
			t.Fatalf("job %+v, want sheet 1 attempt %d", job, attempt)
		}
		failed := decoder.Payload{Job: job, Err: errors.New("boom")}
		f.d.results <- failed
		f.tick(0)

		if attempt < 2 {
			submitted := len(f.d.submitted)
			f.tick(50 * time.Millisecond)
			if len(f.d.submitted) != submitted {
				t.Fatal("retry issued before its backoff elapsed")
			}
			f.tick(time.Second)
		}
	}

	if !errors.Is(f.s.Err(), ErrDecodeStall) {
		t.Fatalf("Err = %v, want ErrDecodeStall", f.s.Err())
	}
	submitted := len(f.d.submitted)
	f.tick(time.Minute)
	if len(f.d.submitted) != submitted {
		t.Error("stalled scheduler kept issuing jobs")
	}
	if !f.s.Done() {
		t.Error("stalled scheduler should report done")
	}
}

func TestInvalidSheetCountsAsFailure(t *testing.T) {
	f := newFixture(Options{MaxRetries: 1})
	f.begin(0, "clip", 2)
	f.tick(0)

	job := f.d.last(t)
	f.d.results <- decoder.Payload{Job: job, Pix: make([]byte, 16), Width: 2, Height: 2}
	f.tick(0)

	if f.cache.Has(0, 1) {
		t.Error("undersized sheet was cached")
	}
	if job := f.d.last(t); job.Attempt != 1 {
		t.Errorf("expected a retry, last job %+v", job)
	}
}

func TestTimeoutReissuesJob(t *testing.T) {
	f := newFixture(Options{Timeout: time.Second, MaxRetries: 1})
	f.begin(0, "clip", 2)
	f.tick(0)

	f.tick(500 * time.Millisecond)
	if len(f.d.submitted) != 1 {
		t.Fatal("reissued before the timeout")
	}

	f.tick(600 * time.Millisecond)
	if job := f.d.last(t); len(f.d.submitted) != 2 || job.Attempt != 1 {
		t.Fatalf("expected reissue after timeout, submitted=%d last=%+v", len(f.d.submitted), job)
	}

	// The first attempt finishing late still fills the slot and advances.
	f.d.results <- okPayload(f.d.submitted[0])
	f.tick(0)
	if !f.cache.Has(0, 1) || !f.s.Done() {
		t.Errorf("late result was not accepted: cached=%v done=%v", f.cache.Has(0, 1), f.s.Done())
	}
}

func TestLateSuccessWaitsForReissuedAttempt(t *testing.T) {
	f := newFixture(Options{Timeout: time.Second, MaxRetries: 2})
	f.begin(0, "clip", 4)
	f.tick(0)

	f.tick(1100 * time.Millisecond)
	if len(f.d.submitted) != 2 {
		t.Fatalf("expected sheet 1 to be reissued, submitted=%d", len(f.d.submitted))
	}
	first, retry := f.d.submitted[0], f.d.submitted[1]

	f.d.results <- okPayload(first)
	f.tick(0)
	if !f.cache.Has(0, 1) {
		t.Fatal("late result for sheet 1 was not cached")
	}
	if len(f.d.submitted) != 2 || f.s.InFlight() {
		t.Fatalf("sheet 2 issued while sheet 1 attempt %d is still decoding: submitted=%d last=%+v",
			retry.Attempt, len(f.d.submitted), f.d.last(t))
	}
	if f.s.Outstanding() != 1 {
		t.Errorf("Outstanding() = %d, want 1", f.s.Outstanding())
	}

	f.d.results <- okPayload(retry)
	f.tick(0)
	if job := f.d.last(t); len(f.d.submitted) != 3 || job.Index != 2 || job.Attempt != 0 {
		t.Fatalf("expected sheet 2 once the retry returned, submitted=%d last=%+v", len(f.d.submitted), job)
	}
	if f.s.Outstanding() != 1 {
		t.Errorf("Outstanding() = %d, want 1", f.s.Outstanding())
	}
}

func TestLostReissuedAttemptDoesNotBlockForever(t *testing.T) {
	f := newFixture(Options{Timeout: time.Second, MaxRetries: 2})
	f.begin(0, "clip", 3)
	f.tick(0)
	f.tick(1100 * time.Millisecond)

	f.d.results <- okPayload(f.d.submitted[0])
	f.tick(0)
	f.tick(500 * time.Millisecond)
	if len(f.d.submitted) != 2 {
		t.Fatalf("sheet 2 issued before the retry timed out, submitted=%d", len(f.d.submitted))
	}

	f.tick(600 * time.Millisecond)
	if job := f.d.last(t); len(f.d.submitted) != 3 || job.Index != 2 {
		t.Fatalf("expected sheet 2 after the retry was given up, submitted=%d last=%+v", len(f.d.submitted), job)
	}
}

func TestAlreadyCachedHeadIsSkipped(t *testing.T) {
	f := newFixture(Options{})
	v := sharedTypes.VideoDescriptor{ID: 0, Name: "clip", SheetCount: 2}
	f.cache.Reset(0, 2)
	sheet, _ := sheetCache.NewSheet(0, gridPix, sharedTypes.SheetWidth, sharedTypes.SheetHeight)
	f.cache.Insert(0, 0, sheet)

	f.s.Begin(v, 0)
	f.tick(0)
	if job := f.d.last(t); job.Index != 1 {
		t.Errorf("expected sheet 0 to be skipped, got job %+v", job)
	}
}

func TestRefusedSubmitIsRetriedNextTick(t *testing.T) {
	f := newFixture(Options{})
	f.begin(0, "clip", 2)
	f.d.refuse = true
	f.tick(0)
	if f.s.InFlight() {
		t.Fatal("refused job marked in flight")
	}
	f.d.refuse = false
	f.tick(0)
	if !f.s.InFlight() || len(f.d.submitted) != 1 {
		t.Error("job not submitted once the dispatcher accepted work")
	}
}
