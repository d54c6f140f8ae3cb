package main

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

// solidLabel returns a label texture filled with one color.
func solidLabel(width, height int, c [4]uint8) *labelTexture {
	pix := make([]uint8, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], c[:])
	}
	return &labelTexture{width: width, height: height, pix: pix}
}

func allZero(cells []float32) bool {
	for _, v := range cells {
		if v != 0 {
			return false
		}
	}
	return true
}

func TestFieldBufferLayout(t *testing.T) {
	b := newFieldBuffer(3, 2)
	if got, want := len(b.cells), 3*2*cellChannels; got != want {
		t.Fatalf("len(cells) = %d, want %d", got, want)
	}
	b.setHeight(2, 1, 7)
	if got := b.readHeight(2, 1); got != 7 {
		t.Errorf("readHeight(2, 1) = %v, want 7", got)
	}
	if got := b.index(2, 1); got != (1*3+2)*cellChannels {
		t.Errorf("index(2, 1) = %d, want %d", got, (1*3+2)*cellChannels)
	}
	if got := b.cell(2, 1); got != [cellChannels]float32{7, 0, 0, 0} {
		t.Errorf("cell(2, 1) = %v, want [7 0 0 0]", got)
	}
	b.clear()
	if !allZero(b.cells) {
		t.Error("clear() left non-zero cells")
	}
}

func TestFieldPairSwap(t *testing.T) {
	p := newFieldPair(2, 2)
	read, write := p.read, p.write
	if read == write {
		t.Fatal("read and write share a buffer")
	}
	p.swap()
	if p.read != write || p.write != read {
		t.Error("swap() did not exchange the buffers")
	}
}

func TestFieldPairResizeZeroes(t *testing.T) {
	p := newFieldPair(2, 2)
	p.read.setHeight(1, 1, 3)
	p.write.setHeight(0, 0, -2)
	p.resize(5, 3)
	for name, b := range map[string]*fieldBuffer{"read": p.read, "write": p.write} {
		if b.width != 5 || b.height != 3 {
			t.Errorf("%s size = %dx%d, want 5x3", name, b.width, b.height)
		}
		if !allZero(b.cells) {
			t.Errorf("%s buffer not zeroed after resize", name)
		}
	}
	if p.read == p.write {
		t.Error("resize() made read and write share a buffer")
	}
}

func TestFieldPairReset(t *testing.T) {
	p := newFieldPair(3, 3)
	p.read.setHeight(1, 1, 1)
	p.write.setHeight(2, 2, 1)
	p.reset()
	if !allZero(p.read.cells) || !allZero(p.write.cells) {
		t.Error("reset() left non-zero cells")
	}
}
