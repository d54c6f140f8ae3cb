package main

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func closeTo(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}

func countOffBackground(tex *labelTexture, bg [3]uint8) int {
	n := 0
	for i := 0; i < len(tex.pix); i += 4 {
		if !closeTo(tex.pix[i], bg[0]) || !closeTo(tex.pix[i+1], bg[1]) || !closeTo(tex.pix[i+2], bg[2]) {
			n++
		}
	}
	return n
}

func TestLabelRendererDrawsText(t *testing.T) {
	r, err := newLabelRenderer(labelStyle{text: "PNRM", fontSize: 48, foreground: "#fef4b8", background: "#fb7427"})
	if err != nil {
		t.Fatalf("newLabelRenderer: %v", err)
	}
	defer r.Close()
	tex, err := r.render(400, 160)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if tex.width != 400 || tex.height != 160 || len(tex.pix) != 400*160*4 {
		t.Fatalf("texture = %dx%d with %d bytes", tex.width, tex.height, len(tex.pix))
	}
	bg := [3]uint8{0xfb, 0x74, 0x27}
	for _, c := range [][2]int{{0, 0}, {399, 0}, {0, 159}, {399, 159}} {
		o := (c[1]*tex.width + c[0]) * 4
		if !closeTo(tex.pix[o], bg[0]) || !closeTo(tex.pix[o+1], bg[1]) || !closeTo(tex.pix[o+2], bg[2]) || tex.pix[o+3] != 255 {
			t.Errorf("corner %v = %v, want background %v", c, tex.pix[o:o+4], bg)
		}
	}
	if countOffBackground(tex, bg) == 0 {
		t.Error("label text left no marks on the texture")
	}
}

func TestLabelRendererEmptyText(t *testing.T) {
	style := defaultLabelStyle()
	style.text = ""
	r, err := newLabelRenderer(style)
	if err != nil {
		t.Fatalf("newLabelRenderer: %v", err)
	}
	defer r.Close()
	tex, err := r.render(64, 32)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := countOffBackground(tex, [3]uint8{0xfb, 0x74, 0x27}); n != 0 {
		t.Errorf("%d pixels differ from the background", n)
	}
}

func TestLabelRendererErrors(t *testing.T) {
	style := defaultLabelStyle()
	style.fontSize = 0
	if _, err := newLabelRenderer(style); err == nil {
		t.Error("newLabelRenderer accepted a zero font size")
	}

	r, err := newLabelRenderer(defaultLabelStyle())
	if err != nil {
		t.Fatalf("newLabelRenderer: %v", err)
	}
	defer r.Close()
	if _, err := r.render(0, 10); !errors.Is(err, errInvalidViewport) {
		t.Errorf("render(0, 10) = %v, want errInvalidViewport", err)
	}
}

func TestNewLabelTextureConvertsImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(2, 3, 6, 7))
	for y := 3; y < 7; y++ {
		for x := 2; x < 6; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: 7, A: 255})
		}
	}
	tex := newLabelTextureFromImage(img)
	if tex.width != 4 || tex.height != 4 {
		t.Fatalf("texture = %dx%d, want 4x4", tex.width, tex.height)
	}
	o := (1*tex.width + 2) * 4
	if got := tex.pix[o : o+4]; got[0] != 40 || got[1] != 40 || got[2] != 7 || got[3] != 255 {
		t.Errorf("pixel (2, 1) = %v, want [40 40 7 255]", got)
	}
	if got, want := tex.texel(9, -3), tex.texel(3, 0); got != want {
		t.Errorf("clamped texel = %v, want %v", got, want)
	}
}
