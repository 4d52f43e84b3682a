package db

import (
	"context"
	"sync"
)

// workerPool runs blocking database work on a fixed set of goroutines.
// Submitters queue on an unbuffered channel, so at most size jobs run at once.
type workerPool struct {
	jobs chan func()
	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

func newWorkerPool(size int) *workerPool {
	if size < 1 {
		size = 1
	}
	p := &workerPool{
		jobs: make(chan func()),
		quit: make(chan struct{}),
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *workerPool) work() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			job()
		}
	}
}

// submit blocks until a worker accepts job, ctx is done or the pool is closed.
func (p *workerPool) submit(ctx context.Context, job func()) error {
	select {
	case <-p.quit:
		return ErrClosed
	default:
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.quit:
		return ErrClosed
	}
}

// close stops accepting work and waits for running jobs to finish.
func (p *workerPool) close() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
