package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// sweepSpeed is the scripted pointer speed in normalized units per frame.
const sweepSpeed = 0.006

// cursorToPointer maps a screen position onto normalized coordinates with y
// up. ok is false when the position lies outside the surface.
func cursorToPointer(cx, cy, width, height int) (x, y float32, ok bool) {
	if width <= 0 || height <= 0 || cx < 0 || cy < 0 || cx >= width || cy >= height {
		return 0, 0, false
	}
	x = float32(cx) / float32(width)
	y = 1 - float32(cy)/float32(height)
	return x, y, true
}

// pointerSweep walks a pointer across the surface with random headings,
// bouncing off the edges. Used for headless runs and PGO recording.
type pointerSweep struct {
	x, y       float64
	dirX, dirY float64
	frames     int
	rnd        *rand.Rand
}

func newPointerSweep(seed int64) *pointerSweep {
	s := &pointerSweep{x: 0.5, y: 0.5, rnd: rand.New(rand.NewSource(seed))}
	s.randomizeDirection()
	return s
}

// randomizeDirection chooses a new heading for the next stretch of frames.
func (s *pointerSweep) randomizeDirection() {
	angle := s.rnd.Float64() * 2 * math.Pi
	s.dirX = math.Cos(angle)
	s.dirY = math.Sin(angle)
	s.frames = 20 + s.rnd.Intn(50)
}

// next advances the sweep one frame and returns the new position.
func (s *pointerSweep) next() (float32, float32) {
	if s.frames <= 0 {
		s.randomizeDirection()
	}
	s.frames--
	s.x += s.dirX * sweepSpeed
	s.y += s.dirY * sweepSpeed
	if s.x < 0 || s.x > 1 {
		s.dirX = -s.dirX
		s.x = math.Max(0, math.Min(1, s.x))
	}
	if s.y < 0 || s.y > 1 {
		s.dirY = -s.dirY
		s.y = math.Max(0, math.Min(1, s.y))
	}
	return float32(s.x), float32(s.y)
}

// enableAutoSweep drives the pointer from a script for a limited duration.
func (g *Game) enableAutoSweep(duration time.Duration) {
	g.autoSweep = newPointerSweep(time.Now().UnixNano())
	g.autoSweepDeadline = time.Now().Add(duration)
}

// pollPointer feeds the scene's pointer port from the script, the first
// active touch or the cursor, in that order.
func (g *Game) pollPointer() {
	s := g.scene
	if g.autoSweep != nil {
		if time.Now().Before(g.autoSweepDeadline) {
			x, y := g.autoSweep.next()
			s.onPointerMove(x, y)
			return
		}
		g.autoSweep = nil
		s.onPointerLeave()
	}
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(g.touchIDs[0])
		if x, y, ok := cursorToPointer(tx, ty, s.width, s.height); ok {
			s.onPointerMove(x, y)
			return
		}
	}
	cx, cy := ebiten.CursorPosition()
	if x, y, ok := cursorToPointer(cx, cy, s.width, s.height); ok {
		s.onPointerMove(x, y)
		return
	}
	s.onPointerLeave()
}

// handleHotkeys processes reset, snapshot and overlay keys. It returns
// ebiten.Termination when the user asked to quit.
func (g *Game) handleHotkeys() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.scene.reset()
		g.logger.Info("field reset", "frame", g.scene.frameCount)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) && g.snapshotPath != "" {
		if err := writeSnapshot(g.snapshotPath, g.scene.width, g.scene.height, g.scene.pixels); err != nil {
			g.logger.Warn("snapshot failed", "path", g.snapshotPath, "err", err)
		} else {
			g.logger.Info("snapshot written", "path", g.snapshotPath)
		}
	}
	return nil
}
