package main

import (
	"math/rand"
	"testing"
)

func TestReflectNeighbors(t *testing.T) {
	tests := []struct {
		i, n   int
		lo, hi int
	}{
		{0, 5, 1, 1},
		{4, 5, 3, 3},
		{2, 5, 1, 3},
		{0, 2, 1, 1},
		{1, 2, 0, 0},
		{0, 1, 0, 0},
	}
	for _, tt := range tests {
		lo, hi := reflectNeighbors(tt.i, tt.n)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("reflectNeighbors(%d, %d) = (%d, %d), want (%d, %d)", tt.i, tt.n, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestStepRowsColdStart(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	src := newFieldBuffer(6, 5)
	dst := newFieldBuffer(6, 5)
	for i := range src.cells {
		src.cells[i] = rnd.Float32()*4 - 2
		dst.cells[i] = rnd.Float32()*4 - 2
	}
	stepRows(src, dst, 0, 0, dst.height)
	if !allZero(dst.cells) {
		t.Error("frame 0 must write the zero field")
	}
}

func TestStepRowsZeroIsFixedPoint(t *testing.T) {
	src := newFieldBuffer(4, 4)
	dst := newFieldBuffer(4, 4)
	for frame := uint64(1); frame < 5; frame++ {
		stepRows(src, dst, frame, 0, dst.height)
		if !allZero(dst.cells) {
			t.Fatalf("frame %d: zero input produced non-zero output", frame)
		}
		src, dst = dst, src
	}
}

func TestStepRowsCornerReflection(t *testing.T) {
	src := newFieldBuffer(4, 3)
	dst := newFieldBuffer(4, 3)
	src.setHeight(0, 0, 1)
	stepRows(src, dst, 1, 0, dst.height)

	// Both missing neighbours of the corner are replaced by inward zeros.
	p, vel := float32(1), float32(0)
	vel += waveSpeed * (-2 * p) / 4
	vel += waveSpeed * (-2 * p) / 4
	p += waveSpeed * vel
	vel -= waveRestoring * waveSpeed * p
	vel *= 1 - waveFriction*waveSpeed
	p *= waveHeightDecay

	corner := dst.cell(0, 0)
	if !approxEqual(corner[chHeight], p, 1e-6) || !approxEqual(corner[chVelocity], vel, 1e-6) {
		t.Errorf("corner = %v, want height %v velocity %v", corner, p, vel)
	}
	if corner[chGradX] != 0 || corner[chGradY] != 0 {
		t.Errorf("corner gradient = (%v, %v), want (0, 0)", corner[chGradX], corner[chGradY])
	}
	if got := dst.cell(1, 0)[chGradX]; got != -0.5 {
		t.Errorf("gx at (1, 0) = %v, want -0.5", got)
	}
	if got := dst.cell(0, 1)[chGradY]; got != -0.5 {
		t.Errorf("gy at (0, 1) = %v, want -0.5", got)
	}
	// No wraparound: the opposite edges never see the corner.
	for _, c := range [][2]int{{3, 0}, {0, 2}, {3, 2}} {
		if got := dst.cell(c[0], c[1]); got != [cellChannels]float32{} {
			t.Errorf("cell %v = %v, want zero", c, got)
		}
	}
}

func TestStepRowsConstantHeightHasZeroGradient(t *testing.T) {
	src := newFieldBuffer(7, 5)
	dst := newFieldBuffer(7, 5)
	for i := 0; i < len(src.cells); i += cellChannels {
		src.cells[i+chHeight] = 0.7
		src.cells[i+chVelocity] = -0.1
	}
	stepRows(src, dst, 9, 0, dst.height)
	for y := 0; y < dst.height; y++ {
		for x := 0; x < dst.width; x++ {
			c := dst.cell(x, y)
			if c[chGradX] != 0 || c[chGradY] != 0 {
				t.Fatalf("cell (%d, %d) gradient = (%v, %v), want (0, 0)", x, y, c[chGradX], c[chGradY])
			}
		}
	}
}

func TestStepRowsBandsMatchFullPass(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	src := newFieldBuffer(9, 8)
	for i := range src.cells {
		src.cells[i] = rnd.Float32() - 0.5
	}
	full := newFieldBuffer(9, 8)
	banded := newFieldBuffer(9, 8)
	stepRows(src, full, 3, 0, 8)
	for _, b := range assignRowBands(3, 8) {
		stepRows(src, banded, 3, b.y0, b.y1)
	}
	for i := range full.cells {
		if full.cells[i] != banded.cells[i] {
			t.Fatalf("cells[%d] = %v banded, %v full", i, banded.cells[i], full.cells[i])
		}
	}
}

func TestStepRowsEnergyDecays(t *testing.T) {
	const (
		size    = 8
		window  = 200
		windows = 6
	)
	pair := newFieldPair(size, size)
	pair.read.setHeight(3, 4, 1)
	peaks := make([]float64, windows)
	frame := uint64(1)
	for w := 0; w < windows; w++ {
		for i := 0; i < window; i++ {
			stepRows(pair.read, pair.write, frame, 0, size)
			pair.swap()
			frame++
			var energy float64
			for c := 0; c < len(pair.read.cells); c += cellChannels {
				h := float64(pair.read.cells[c+chHeight])
				energy += h * h
			}
			if energy > peaks[w] {
				peaks[w] = energy
			}
		}
	}
	for w := 2; w < windows; w++ {
		if peaks[w] > peaks[w-1] {
			t.Errorf("window %d peak energy %g exceeds window %d peak %g", w, peaks[w], w-1, peaks[w-1])
		}
	}
	if peaks[windows-1] >= 0.1*peaks[0] {
		t.Errorf("final peak energy %g did not fall below 10%% of initial %g", peaks[windows-1], peaks[0])
	}
}
