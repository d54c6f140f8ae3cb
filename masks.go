package main

// rowBand is a half-open range of rows [y0, y1) handled by one worker.
type rowBand struct{ y0, y1 int }

func (b rowBand) empty() bool { return b.y1 <= b.y0 }

// assignRowBands splits height rows into workerCount contiguous bands. Bands
// past the last row are empty so every worker always has a slot.
func assignRowBands(workerCount, height int) []rowBand {
	if workerCount < 1 {
		workerCount = 1
	}
	bands := make([]rowBand, workerCount)
	if height <= 0 {
		return bands
	}
	rowsPer := (height + workerCount - 1) / workerCount
	for i := range bands {
		y0 := i * rowsPer
		if y0 > height {
			y0 = height
		}
		y1 := y0 + rowsPer
		if y1 > height {
			y1 = height
		}
		bands[i] = rowBand{y0: y0, y1: y1}
	}
	return bands
}
