package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw writes the composited frame and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.scene
	b := screen.Bounds()
	if b.Dx() == s.width && b.Dy() == s.height && len(s.pixels) == s.width*s.height*4 {
		screen.WritePixels(s.pixels)
	}

	if g.showDebug {
		p := s.pointer
		pointer := "none"
		if p.present {
			pointer = fmt.Sprintf("%.3f, %.3f", p.x, p.y)
		}
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f\nSolver: %s  %dx%d\nFrame: %d\nSim: %.2f ms  Composite: %.2f ms\nPointer: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), s.solver.Name(), s.width, s.height, s.frameCount,
			s.lastSimDuration.Seconds()*1000, s.lastCompositeDuration.Seconds()*1000, pointer)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the field size for the window and records it so the next
// Update can resize the scene.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := outsideWidth / g.pixelScale
	h := outsideHeight / g.pixelScale
	if w < 1 || h < 1 {
		return g.scene.width, g.scene.height
	}
	g.pendingW, g.pendingH = w, h
	return w, h
}
