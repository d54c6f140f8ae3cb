package main

// Channel offsets inside a field cell.
const (
	chHeight = iota
	chVelocity
	chGradX
	chGradY
	cellChannels
)

// fieldBuffer stores the 4-channel simulation state for every cell. Row 0 is
// the bottom row so that a cell's uv is ((x+0.5)/width, (y+0.5)/height).
type fieldBuffer struct {
	width, height int
	cells         []float32
}

// newFieldBuffer allocates a zeroed buffer.
func newFieldBuffer(width, height int) *fieldBuffer {
	return &fieldBuffer{
		width:  width,
		height: height,
		cells:  make([]float32, width*height*cellChannels),
	}
}

// index returns the offset of the first channel of cell (x, y).
func (b *fieldBuffer) index(x, y int) int {
	return (y*b.width + x) * cellChannels
}

// cell returns the four channels of cell (x, y).
func (b *fieldBuffer) cell(x, y int) [cellChannels]float32 {
	i := b.index(x, y)
	return [cellChannels]float32{b.cells[i], b.cells[i+1], b.cells[i+2], b.cells[i+3]}
}

// setHeight overwrites the height channel of cell (x, y).
func (b *fieldBuffer) setHeight(x, y int, v float32) {
	b.cells[b.index(x, y)+chHeight] = v
}

// readHeight returns the height channel of cell (x, y).
func (b *fieldBuffer) readHeight(x, y int) float32 {
	return b.cells[b.index(x, y)+chHeight]
}

// clear zeroes every channel.
func (b *fieldBuffer) clear() {
	clear(b.cells)
}

// fieldPair holds the two ping-pong buffers. The simulation reads from read
// and writes into write; swap exchanges the labels after each frame.
type fieldPair struct {
	read  *fieldBuffer
	write *fieldBuffer
}

// newFieldPair allocates two zeroed buffers of the same size.
func newFieldPair(width, height int) *fieldPair {
	return &fieldPair{
		read:  newFieldBuffer(width, height),
		write: newFieldBuffer(width, height),
	}
}

// swap makes the freshly written buffer the next frame's input.
func (p *fieldPair) swap() {
	p.read, p.write = p.write, p.read
}

// resize reallocates both buffers at the new size. Contents are reset since
// the old state cannot be resampled meaningfully.
func (p *fieldPair) resize(width, height int) {
	p.read = newFieldBuffer(width, height)
	p.write = newFieldBuffer(width, height)
}

// reset zeroes both buffers in place.
func (p *fieldPair) reset() {
	p.read.clear()
	p.write.clear()
}
