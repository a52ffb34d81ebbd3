package scraper

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Err     error
	Elapsed time.Duration
}

// WorkerPool runs submitted tasks on a fixed number of goroutines. With a
// rate limit set, each task waits for a tick before it starts. The limit is
// read once when Run starts.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	if rps <= 0 {
		return
	}
	interval := time.Second / time.Duration(rps)
	t := time.NewTicker(interval)
	p.mu.Lock()
	p.ticker = t
	p.rate = t.C
	p.mu.Unlock()
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks. Queued tasks still run under the rate limit.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *WorkerPool) stopTicker() {
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
}

// Run starts the workers. The returned channel closes once Close has been
// called and every queued task has finished, or ctx is done. The ticker is
// stopped only after every worker has returned.
func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers*1024+cap(p.tasks))

	p.mu.RLock()
	rate := p.rate
	p.mu.RUnlock()

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					start := time.Now()
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err, Elapsed: time.Since(start)}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		p.stopTicker()
		close(out)
	}()

	return out
}
