package main

import (
	"math"
)

type gridOffset struct {
	dx int
	dy int
}

// brushFootprint is the set of cell offsets the pointer brush can touch on a
// grid of a given height.
type brushFootprint struct {
	gridHeight int
	offsets    []gridOffset
}

// precomputeBrushFootprint covers every cell whose centre may fall within the
// brush radius of a pointer lying anywhere inside the centre cell.
func precomputeBrushFootprint(gridHeight int) brushFootprint {
	radius := int(math.Ceil(float64(brushRadius)*float64(gridHeight))) + 1
	offsets := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				offsets = append(offsets, gridOffset{dx: x, dy: y})
			}
		}
	}
	return brushFootprint{gridHeight: gridHeight, offsets: offsets}
}

// brushImpulse returns the height added to the cell at normalized (u, v) by a
// pointer at (px, py). Distances are aspect corrected so the brush is round on
// screen: the falloff is linear from gain at the centre to zero at the radius.
func brushImpulse(u, v, px, py, aspect float32) float32 {
	dx := float64((u - px) * aspect)
	dy := float64(v - py)
	dist := float32(math.Sqrt(dx*dx + dy*dy))
	if dist > brushRadius {
		return 0
	}
	return brushGain * (1 - dist/brushRadius)
}

// applyBrush raises the height channel of dst around the pointer.
func applyBrush(dst *fieldBuffer, fp brushFootprint, ptr pointerState) {
	if !ptr.present {
		return
	}
	width, height := dst.width, dst.height
	w := float32(width)
	h := float32(height)
	aspect := w / h
	cx := clampCoord(int(ptr.x*w), 0, width-1)
	cy := clampCoord(int(ptr.y*h), 0, height-1)
	for _, off := range fp.offsets {
		x := cx + off.dx
		y := cy + off.dy
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		u := (float32(x) + 0.5) / w
		v := (float32(y) + 0.5) / h
		if imp := brushImpulse(u, v, ptr.x, ptr.y, aspect); imp != 0 {
			dst.cells[dst.index(x, y)+chHeight] += imp
		}
	}
}
