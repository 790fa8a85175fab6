package decoder

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"cutscene-player/pkg/sharedTypes"
	"cutscene-player/pkg/sheetCache"
	"cutscene-player/pkg/sheetFs"
)

// Job asks a worker to read and decode one sheet. Generation and Attempt are
// opaque to the pool and are echoed back in the Payload.
type Job struct {
	Generation uint64
	Video      sharedTypes.VideoID
	Index      int
	Attempt    int
	Key        string
}

// Payload is the result of one job. Err is set when the read or decode
// failed; Pix is nil in that case.
type Payload struct {
	Job     Job
	Pix     []byte
	Width   int
	Height  int
	Elapsed time.Duration
	Err     error
}

// Pool is a fixed set of goroutines decoding sheets off the main loop.
// Workers never touch the sheet cache; results are only delivered over
// the Results channel.
type Pool struct {
	source  sheetFs.Source
	workers int
	timeout time.Duration

	jobs    chan Job
	results chan Payload

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	startOnce sync.Once
	closeOnce sync.Once
}

// NewPool creates a pool reading from source. timeout bounds each job's read.
func NewPool(source sheetFs.Source, workers int, timeout time.Duration) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		source:  source,
		workers: workers,
		timeout: timeout,
		jobs:    make(chan Job, workers*4),
		results: make(chan Payload, workers*4),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers. Calling it again is a no-op.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		log.Printf("Decoder: starting pool | workers=%d | timeout=%s | source=%s", p.workers, p.timeout, p.source.Describe())
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker(i)
		}
	})
}

// Submit queues job without blocking. It returns false when the queue is
// full or the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Results is drained by the main loop.
func (p *Pool) Results() <-chan Payload {
	return p.results
}

// Close stops the workers and waits for them. Jobs still queued are dropped.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.cancel()
		p.wg.Wait()
		log.Printf("Decoder: pool closed")
	})
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			payload := p.run(job)
			select {
			case p.results <- payload:
			case <-p.ctx.Done():
				return
			}
			if payload.Err != nil {
				log.Printf("Decoder: worker %d failed | video=%d | sheet=%d | attempt=%d | err=%v",
					id, job.Video, job.Index, job.Attempt, payload.Err)
			}
		}
	}
}

func (p *Pool) run(job Job) Payload {
	start := time.Now()
	ctx := p.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(p.ctx, p.timeout)
		defer cancel()
	}

	payload := Payload{Job: job}
	data, err := p.source.ReadAll(ctx, job.Key)
	if err != nil {
		payload.Err = fmt.Errorf("read %s: %w", job.Key, err)
	} else {
		payload.Pix, payload.Width, payload.Height, payload.Err = DecodeSheet(data)
	}
	payload.Elapsed = time.Since(start)
	return payload
}

// LoadSheet reads, decodes and validates one sheet on the calling goroutine.
// Used for the eager first sheet of a selection.
func (p *Pool) LoadSheet(ctx context.Context, key string, index int) (*sheetCache.Sheet, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	data, err := p.source.ReadAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	pix, w, h, err := DecodeSheet(data)
	if err != nil {
		return nil, err
	}
	return sheetCache.NewSheet(index, pix, w, h)
}
