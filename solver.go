package main

import (
	"errors"
	"fmt"
)

var errInvalidViewport = errors.New("invalid viewport size")

// fieldSolver advances the ping-pong field and composites it with the label.
// A frame is Simulate, then Composite, then Swap.
type fieldSolver interface {
	// Resize reallocates both field buffers zeroed and adopts a new label.
	Resize(width, height int, label *labelTexture) error
	// Simulate reads the current read buffer and fills the write buffer.
	Simulate(in stepInput) error
	// Composite renders the write buffer over the label into dst (RGBA).
	Composite(dst []byte) error
	// Swap exchanges the read and write labels.
	Swap()
	// Reset zeroes the field without reallocating.
	Reset()
	Name() string
	Close()
}

// cpuSolver runs both passes on the worker pool.
type cpuSolver struct {
	pair      *fieldPair
	label     *labelTexture
	footprint brushFootprint
	pool      *workerPool
}

func newCPUSolver(workers int) *cpuSolver {
	return &cpuSolver{pool: newWorkerPool(workers)}
}

func (s *cpuSolver) Resize(width, height int, label *labelTexture) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", errInvalidViewport, width, height)
	}
	if label == nil {
		return errors.New("cpu solver: nil label texture")
	}
	if s.pair == nil {
		s.pair = newFieldPair(width, height)
	} else {
		s.pair.resize(width, height)
	}
	s.label = label
	s.footprint = precomputeBrushFootprint(height)
	s.pool.setRows(height)
	return nil
}

func (s *cpuSolver) Simulate(in stepInput) error {
	if s.pair == nil {
		return errors.New("cpu solver: Simulate before Resize")
	}
	src, dst := s.pair.read, s.pair.write
	s.pool.run(func(y0, y1 int) {
		stepRows(src, dst, in.frame, y0, y1)
	})
	if in.frame != 0 {
		applyBrush(dst, s.footprint, in.pointer)
	}
	return nil
}

func (s *cpuSolver) Composite(dst []byte) error {
	if s.pair == nil {
		return errors.New("cpu solver: Composite before Resize")
	}
	field := s.pair.write
	if want := field.width * field.height * 4; len(dst) != want {
		return fmt.Errorf("cpu solver: pixel buffer has %d bytes, want %d", len(dst), want)
	}
	label := s.label
	s.pool.run(func(y0, y1 int) {
		compositeRows(field, label, dst, y0, y1)
	})
	return nil
}

func (s *cpuSolver) Swap() {
	if s.pair != nil {
		s.pair.swap()
	}
}

func (s *cpuSolver) Reset() {
	if s.pair != nil {
		s.pair.reset()
	}
}

func (s *cpuSolver) Name() string { return "cpu" }

func (s *cpuSolver) Close() { s.pool.close() }
