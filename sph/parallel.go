package sph

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum particle count to use parallel passes.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

type pass int

const (
	passDensity pass = iota
	passForce
	passIntegrate
)

// workChunk is a particle range for one worker in one pass.
type workChunk struct {
	start, end int
	pass       pass
}

// workerPool runs pass chunks on persistent goroutines. Each dispatch waits
// for every chunk to finish, which is the barrier between passes.
type workerPool struct {
	numWorkers int
	scratches  [][]int // per-worker neighbor buffers

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	scratches := make([][]int, numWorkers)
	for i := range scratches {
		scratches[i] = make([]int, 0, 64)
	}
	return &workerPool{
		numWorkers: numWorkers,
		scratches:  scratches,
	}
}

// start launches the worker goroutines.
func (p *workerPool) start(s *Stepper) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s, i)
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *workerPool) worker(s *Stepper, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.scratches[workerID] = s.runChunk(chunk, p.scratches[workerID])
			p.doneChan <- struct{}{}
		}
	}
}

// run splits [0, n) into one chunk per worker and blocks until all are done.
func (p *workerPool) run(n int, ps pass) {
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		p.workChan <- workChunk{start: start, end: end, pass: ps}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
