package main

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
)

// labelTexture is an RGBA raster sampled by the composite pass. Row 0 is the
// top of the image.
type labelTexture struct {
	width, height int
	pix           []uint8
}

// newLabelTextureFromImage copies img into a tightly packed texture.
func newLabelTextureFromImage(img image.Image) *labelTexture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	pix := make([]uint8, len(rgba.Pix))
	copy(pix, rgba.Pix)
	return &labelTexture{width: b.Dx(), height: b.Dy(), pix: pix}
}

// texel returns the channels of pixel (x, y) in [0, 1], clamping the
// coordinates to the image edge.
func (t *labelTexture) texel(x, y int) [4]float32 {
	x = clampCoord(x, 0, t.width-1)
	y = clampCoord(y, 0, t.height-1)
	o := (y*t.width + x) * 4
	return [4]float32{
		float32(t.pix[o]) / 255,
		float32(t.pix[o+1]) / 255,
		float32(t.pix[o+2]) / 255,
		float32(t.pix[o+3]) / 255,
	}
}

// sample filters the texture bilinearly at (u, v), where v = 0 is the bottom
// of the image. Coordinates outside [0, 1] clamp to the edge.
func (t *labelTexture) sample(u, v float32) [4]float32 {
	tx := u*float32(t.width) - 0.5
	ty := (1-v)*float32(t.height) - 0.5
	fx := float32(math.Floor(float64(tx)))
	fy := float32(math.Floor(float64(ty)))
	ax := tx - fx
	ay := ty - fy
	x0, y0 := int(fx), int(fy)
	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)
	var out [4]float32
	for k := range out {
		top := c00[k] + (c10[k]-c00[k])*ax
		bottom := c01[k] + (c11[k]-c01[k])*ax
		out[k] = top + (bottom-top)*ay
	}
	return out
}

// labelSource produces a label texture for a viewport size.
type labelSource interface {
	render(width, height int) (*labelTexture, error)
}

// labelStyle describes everything about the label except its size.
type labelStyle struct {
	text       string
	fontSize   float64
	foreground string
	background string
}

func defaultLabelStyle() labelStyle {
	return labelStyle{
		text:       defaultLabelText,
		fontSize:   defaultFontSize,
		foreground: defaultForeground,
		background: defaultBackground,
	}
}

// labelRenderer rasterises the label text centred on a solid background. The
// font is parsed once and shared by every render.
type labelRenderer struct {
	style  labelStyle
	source *text.FontSource
	face   text.Face
}

func newLabelRenderer(style labelStyle) (*labelRenderer, error) {
	if style.fontSize <= 0 {
		return nil, fmt.Errorf("label font size must be positive, got %v", style.fontSize)
	}
	source, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}
	return &labelRenderer{
		style:  style,
		source: source,
		face:   source.Face(style.fontSize),
	}, nil
}

// render draws the label at the requested size.
func (r *labelRenderer) render(width, height int) (*labelTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: label %dx%d", errInvalidViewport, width, height)
	}
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()
	dc.ClearWithColor(gg.Hex(r.style.background))
	if r.style.text != "" {
		dc.SetFont(r.face)
		dc.SetHexColor(r.style.foreground)
		dc.DrawStringAnchored(r.style.text, float64(width)/2, float64(height)/2, 0.5, 0.5)
	}
	return newLabelTextureFromImage(dc.Image()), nil
}

// Close releases the parsed font.
func (r *labelRenderer) Close() error {
	return r.source.Close()
}
