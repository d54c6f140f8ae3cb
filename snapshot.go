package main

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// writeSnapshot saves an RGBA frame of the given size as PNG.
func writeSnapshot(path string, width, height int, pixels []byte) error {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return fmt.Errorf("%w: snapshot %dx%d with %d bytes", errInvalidViewport, width, height, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	dc := gg.NewContextForImage(img)
	defer func() { _ = dc.Close() }()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing snapshot %q: %w", path, err)
	}
	return nil
}
