package main

import "sync"

// rowJob processes rows [y0, y1) of one pass.
type rowJob func(y0, y1 int)

// workerPool runs a pass over row bands on persistent goroutines. run blocks
// until every band finished, so consecutive passes never overlap.
type workerPool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	pending int
	step    int
	closed  bool
	bands   []rowBand
	job     rowJob
}

// newWorkerPool starts count workers. count < 1 is treated as 1.
func newWorkerPool(count int) *workerPool {
	if count < 1 {
		count = 1
	}
	p := &workerPool{count: count}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < count; i++ {
		go p.loop(i)
	}
	return p
}

// setRows recomputes the band assignment for a grid of the given height.
// Must not be called concurrently with run.
func (p *workerPool) setRows(height int) {
	p.mu.Lock()
	p.bands = assignRowBands(p.count, height)
	p.mu.Unlock()
}

// run executes job over every non-empty band and waits for completion.
func (p *workerPool) run(job rowJob) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.job = job
	p.pending = p.count
	p.step++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.job = nil
	p.mu.Unlock()
}

// loop executes the band at index for every step until the pool is closed.
func (p *workerPool) loop(index int) {
	lastStep := 0
	p.mu.Lock()
	for {
		for p.step == lastStep && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		lastStep = p.step
		var band rowBand
		if index < len(p.bands) {
			band = p.bands[index]
		}
		job := p.job
		p.mu.Unlock()

		if !band.empty() && job != nil {
			job(band.y0, band.y1)
		}

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}

// close stops the workers. Must not be called while a pass is running.
func (p *workerPool) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
}
