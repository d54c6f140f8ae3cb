package main

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Game adapts the scene to ebiten, which acts as the frame scheduler: every
// Update is one driver-loop iteration.
type Game struct {
	scene  *sceneContext
	logger *slog.Logger

	pixelScale         int
	pendingW, pendingH int
	start              time.Time
	lastStatsLog       time.Time
	showDebug          bool
	snapshotPath       string
	touchIDs           []ebiten.TouchID

	autoSweep             *pointerSweep
	autoSweepDeadline     time.Time
	stopProfile           func()
	profileStopAfterSweep bool
}

// newGame wraps an already sized scene.
func newGame(scene *sceneContext, logger *slog.Logger, pixelScale int) *Game {
	if pixelScale < 1 {
		pixelScale = 1
	}
	return &Game{
		scene:      scene,
		logger:     logger,
		pixelScale: pixelScale,
		pendingW:   scene.width,
		pendingH:   scene.height,
		start:      time.Now(),
		showDebug:  *debugFlag,
	}
}

// Update applies a pending viewport change, polls input and runs one frame.
// The resize happens in the same turn as the next simulation step so a frame
// never sees a half-reallocated buffer.
func (g *Game) Update() error {
	if err := g.handleHotkeys(); err != nil {
		return err
	}
	if g.pendingW > 0 && g.pendingH > 0 {
		if err := g.scene.onResize(g.pendingW, g.pendingH); err != nil {
			return err
		}
	}
	g.pollPointer()
	if g.stopProfile != nil && g.profileStopAfterSweep && g.autoSweep == nil {
		g.stopProfile()
		g.stopProfile = nil
	}
	if err := g.scene.frame(time.Since(g.start)); err != nil {
		return err
	}
	g.logStats()
	return nil
}

// logStats reports pass timings at debug level now and then.
func (g *Game) logStats() {
	now := time.Now()
	if now.Sub(g.lastStatsLog) < debugLogInterval {
		return
	}
	g.lastStatsLog = now
	g.logger.Debug("frame stats",
		"frame", g.scene.frameCount,
		"tps", ebiten.ActualTPS(),
		"fps", ebiten.ActualFPS(),
		"sim", g.scene.lastSimDuration,
		"composite", g.scene.lastCompositeDuration,
		"solver", g.scene.solver.Name())
}
