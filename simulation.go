package main

// pointerState is the last known pointer position in normalized coordinates
// with y pointing up. A pointer that left the surface is stored as the inert
// (0, 0) with present cleared.
type pointerState struct {
	x, y    float32
	present bool
}

// stepInput carries the per-frame uniforms of the simulation pass.
type stepInput struct {
	frame   uint64
	elapsed float32
	pointer pointerState
}

// reflectNeighbors returns the indices of the lower and upper neighbours of i
// on an axis of length n. At an edge the missing neighbour is replaced by the
// inward one; a single-cell axis falls back to the cell itself.
func reflectNeighbors(i, n int) (lo, hi int) {
	if n == 1 {
		return i, i
	}
	lo, hi = i-1, i+1
	if i == 0 {
		lo = hi
	}
	if i == n-1 {
		hi = lo
	}
	return lo, hi
}

// stepRows runs the simulation update for rows [y0, y1) reading src and
// writing dst. Frame 0 has no history and writes the zero field.
func stepRows(src, dst *fieldBuffer, frame uint64, y0, y1 int) {
	width, height := src.width, src.height
	if frame == 0 {
		clear(dst.cells[y0*width*cellChannels : y1*width*cellChannels])
		return
	}
	in := src.cells
	out := dst.cells
	for y := y0; y < y1; y++ {
		down, up := reflectNeighbors(y, height)
		rowBase := y * width
		downBase := down * width
		upBase := up * width
		for x := 0; x < width; x++ {
			left, right := reflectNeighbors(x, width)
			i := (rowBase + x) * cellChannels
			p := in[i+chHeight]
			vel := in[i+chVelocity]

			pRight := in[(rowBase+right)*cellChannels]
			pLeft := in[(rowBase+left)*cellChannels]
			pUp := in[(upBase+x)*cellChannels]
			pDown := in[(downBase+x)*cellChannels]

			vel += waveSpeed * (-2*p + pRight + pLeft) / 4
			vel += waveSpeed * (-2*p + pUp + pDown) / 4

			p += waveSpeed * vel
			vel -= waveRestoring * waveSpeed * p
			vel *= 1 - waveFriction*waveSpeed
			p *= waveHeightDecay

			out[i+chHeight] = p
			out[i+chVelocity] = vel
			out[i+chGradX] = (pRight - pLeft) / 2
			out[i+chGradY] = (pUp - pDown) / 2
		}
	}
}
