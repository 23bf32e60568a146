package sph

// Phase names reported to a PhaseRecorder.
const (
	PhaseNeighborIndex = "neighbor_index"
	PhaseDensity       = "density"
	PhaseForce         = "force"
	PhaseIntegrate     = "integrate"
)

// PhaseRecorder receives a call at the start of each phase of a tick.
// telemetry.PerfCollector satisfies it.
type PhaseRecorder interface {
	StartPhase(phase string)
}

// Step advances ps by one tick on the calling goroutine, using a transient
// neighbor index. It is the reference form of Stepper.Step.
func Step(ps []Particle, p *Params) {
	idx := NewNeighborIndexFor(p)
	idx.Build(ps)

	scratch := make([]int, 0, 64)
	scratch = densityRange(ps, p, idx, 0, len(ps), scratch)
	forceRange(ps, p, idx, 0, len(ps), scratch)
	integrateRange(ps, p, 0, len(ps))
}

// Stepper advances a particle set tick by tick, reusing its neighbor index
// and scratch buffers between calls. With more than one worker, each pass is
// split across a persistent goroutine pool with a full barrier between
// passes. Results do not depend on the worker count.
//
// A Stepper is not safe for concurrent use.
type Stepper struct {
	params    Params
	index     *NeighborIndex
	pool      *workerPool
	threshold int
	scratch   []int
	recorder  PhaseRecorder

	ps []Particle // particles of the tick in progress
}

// NewStepper creates a stepper. workers <= 0 uses GOMAXPROCS; 1 keeps every
// pass on the calling goroutine.
func NewStepper(params Params, workers int) *Stepper {
	s := &Stepper{
		params:    params,
		index:     NewNeighborIndexFor(&params),
		threshold: parallelThreshold,
		scratch:   make([]int, 0, 64),
	}
	if workers != 1 {
		s.pool = newWorkerPool(workers)
		if s.pool.numWorkers == 1 {
			s.pool = nil
		}
	}
	return s
}

// Params returns the parameters in use.
func (s *Stepper) Params() Params {
	return s.params
}

// SetParams replaces the parameters and resizes the neighbor index.
func (s *Stepper) SetParams(params Params) {
	s.params = params
	s.index = NewNeighborIndexFor(&s.params)
}

// SetParallelThreshold sets the particle count below which passes run on the
// calling goroutine.
func (s *Stepper) SetParallelThreshold(n int) {
	if n < 1 {
		n = 1
	}
	s.threshold = n
}

// SetRecorder installs a phase timing hook. nil disables it.
func (s *Stepper) SetRecorder(r PhaseRecorder) {
	s.recorder = r
}

// Index returns the neighbor index as built by the most recent Step.
func (s *Stepper) Index() *NeighborIndex {
	return s.index
}

// Workers returns the number of pool goroutines, or 1 when running inline.
func (s *Stepper) Workers() int {
	if s.pool == nil {
		return 1
	}
	return s.pool.numWorkers
}

// Step advances ps by one tick in place.
func (s *Stepper) Step(ps []Particle) {
	s.ps = ps
	defer func() { s.ps = nil }()

	s.phase(PhaseNeighborIndex)
	s.index.Build(ps)

	s.phase(PhaseDensity)
	s.runPass(passDensity)

	s.phase(PhaseForce)
	s.runPass(passForce)

	s.phase(PhaseIntegrate)
	s.runPass(passIntegrate)
}

// Close stops the worker pool. The stepper may still be used afterwards and
// restarts the pool on demand.
func (s *Stepper) Close() {
	if s.pool != nil {
		s.pool.stop()
	}
}

func (s *Stepper) phase(name string) {
	if s.recorder != nil {
		s.recorder.StartPhase(name)
	}
}

func (s *Stepper) runPass(ps pass) {
	n := len(s.ps)
	if s.pool == nil || n < s.threshold {
		s.scratch = s.runChunk(workChunk{start: 0, end: n, pass: ps}, s.scratch)
		return
	}
	s.pool.start(s)
	s.pool.run(n, ps)
}

// runChunk executes one pass over [chunk.start, chunk.end) and returns the
// possibly grown scratch buffer.
func (s *Stepper) runChunk(chunk workChunk, scratch []int) []int {
	switch chunk.pass {
	case passDensity:
		return densityRange(s.ps, &s.params, s.index, chunk.start, chunk.end, scratch)
	case passForce:
		return forceRange(s.ps, &s.params, s.index, chunk.start, chunk.end, scratch)
	case passIntegrate:
		integrateRange(s.ps, &s.params, chunk.start, chunk.end)
	}
	return scratch
}
