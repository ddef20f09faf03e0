package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Pool runs indexed tasks on a fixed set of goroutines.
//
// Each worker has its own queue and steals from the others when it runs
// dry, so slow tiles do not leave workers idle.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	// mu is held shared by Run and exclusively by Close, so a pool is
	// never closed under a running batch.
	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool with n workers. If n is 0 or negative,
// GOMAXPROCS is used.
func NewPool(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	size := max(n*4, 8)

	p := &Pool{
		workers: n,
		queues:  make([]chan func(), n),
		done:    make(chan struct{}),
	}
	for i := range n {
		p.queues[i] = make(chan func(), size)
	}

	p.wg.Add(n)
	for i := range n {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	own := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
			continue
		default:
		}

		if fn := p.steal(id); fn != nil {
			fn()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// Run calls fn(i) for every i in [0, n) and waits for all calls to
// return. Tasks not yet started when ctx is done are skipped, and Run
// then returns ctx.Err(). A closed pool runs nothing and returns
// ErrClosed. Close waits for running batches.
func (p *Pool) Run(ctx context.Context, n int, fn func(i int)) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil || n <= 0 {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(i)
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-ctx.Done():
			// Release the tasks that will never be queued.
			wg.Add(-(n - i))
			wg.Wait()
			return ctx.Err()
		}
	}
	wg.Wait()
	return ctx.Err()
}

// Close stops the workers after the queued tasks finish. It is safe to
// call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers.
func (p *Pool) Workers() int {
	return p.workers
}
