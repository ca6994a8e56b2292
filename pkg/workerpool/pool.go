// Package workerpool runs a batch of fallible tasks on a bounded number of
// goroutines and collects their errors.
//
//	pool := workerpool.New(ctx, 4)
//	for _, p := range products {
//	    pool.Submit(func(ctx context.Context) error {
//	        return disk.Put(ctx, p.Image, render(p))
//	    })
//	}
//	err := pool.Wait()
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned by Submit after Wait has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is one unit of work. ctx is cancelled once any task has failed.
type Task func(ctx context.Context) error

// Pool is a bounded goroutine pool for one batch of tasks.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  chan Task
	wg     sync.WaitGroup

	// closeMu guards closed and the close of tasks; Submit holds it shared
	// while sending.
	closeMu sync.RWMutex
	closed  bool

	errMu sync.Mutex
	errs  []error
}

// New starts size workers. size below 1 is treated as 1.
func New(ctx context.Context, size int) *Pool {
	if size <= 0 {
		size = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make(chan Task, size*2),
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit queues task, blocking while every worker is busy and the buffer is
// full. Tasks submitted after a failure are skipped.
func (p *Pool) Submit(task Task) error {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// Wait closes the pool, waits for queued tasks and returns every task error
// joined together. It is safe to call more than once.
func (p *Pool) Wait() error {
	p.closeMu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.closeMu.Unlock()

	p.wg.Wait()
	p.cancel()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		if p.ctx.Err() != nil {
			continue
		}
		if err := run(p.ctx, task); err != nil {
			p.errMu.Lock()
			p.errs = append(p.errs, err)
			p.errMu.Unlock()
			p.cancel()
		}
	}
}

// run converts a panicking task into an error so one bad task cannot kill
// its worker.
func run(ctx context.Context, task Task) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("workerpool: task panicked: %v", rec)
		}
	}()
	return task(ctx)
}
