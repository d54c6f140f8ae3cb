package main

import (
	"fmt"
	"log/slog"
	"time"
)

// sceneContext owns everything a frame touches: viewport size, pointer,
// frame counter, the solver with its buffers, the label source and the
// composited pixels. Input ports and frames must be called from a single
// goroutine.
type sceneContext struct {
	width, height int
	pointer       pointerState
	frameCount    uint64

	solver fieldSolver
	labels labelSource
	pixels []byte

	lastSimDuration       time.Duration
	lastCompositeDuration time.Duration
	logger                *slog.Logger
}

// newSceneContext sizes the scene to the initial viewport.
func newSceneContext(solver fieldSolver, labels labelSource, width, height int, logger *slog.Logger) (*sceneContext, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &sceneContext{solver: solver, labels: labels, logger: logger}
	if err := s.onResize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// onPointerMove records the pointer at normalized (x, y), y up.
func (s *sceneContext) onPointerMove(x, y float32) {
	s.pointer = pointerState{x: x, y: y, present: true}
}

// onPointerLeave parks the pointer at the inert sentinel.
func (s *sceneContext) onPointerLeave() {
	s.pointer = pointerState{}
}

// onResize reallocates the field and regenerates the label when the viewport
// size changes. The frame counter keeps running; the zeroed buffers are what
// restart the simulation.
func (s *sceneContext) onResize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", errInvalidViewport, width, height)
	}
	if width == s.width && height == s.height {
		return nil
	}
	label, err := s.labels.render(width, height)
	if err != nil {
		return fmt.Errorf("rendering label: %w", err)
	}
	if err := s.solver.Resize(width, height, label); err != nil {
		return fmt.Errorf("resizing %s solver: %w", s.solver.Name(), err)
	}
	s.width, s.height = width, height
	s.pixels = make([]byte, width*height*4)
	s.logger.Debug("viewport resized", "width", width, "height", height, "frame", s.frameCount)
	return nil
}

// reset clears the field without touching the frame counter.
func (s *sceneContext) reset() {
	s.solver.Reset()
}

// frame runs one iteration of the driver loop: simulate into the write
// buffer, composite it into pixels, then swap the buffers.
func (s *sceneContext) frame(elapsed time.Duration) error {
	in := stepInput{
		frame:   s.frameCount,
		elapsed: float32(elapsed.Seconds()),
		pointer: s.pointer,
	}
	s.frameCount++

	start := time.Now()
	if err := s.solver.Simulate(in); err != nil {
		return fmt.Errorf("simulating frame %d: %w", in.frame, err)
	}
	mid := time.Now()
	if err := s.solver.Composite(s.pixels); err != nil {
		return fmt.Errorf("compositing frame %d: %w", in.frame, err)
	}
	s.lastSimDuration = mid.Sub(start)
	s.lastCompositeDuration = time.Since(mid)
	s.solver.Swap()
	return nil
}
