package main

import "math"

// lightDir is the fixed, normalized directional light used for the highlight.
var lightDir = normalize3([3]float32{lightX, lightY, lightZ})

func normalize3(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// specular treats the field as a heightmap, rebuilds a normal from its
// gradient and returns the highlight contributed by the fixed light.
func specular(gx, gy float32) float32 {
	n := normalize3([3]float32{-gx * normalSlopeScale, normalUp, -gy * normalSlopeScale})
	d := n[0]*lightDir[0] + n[1]*lightDir[1] + n[2]*lightDir[2]
	if d <= 0 {
		return 0
	}
	return float32(math.Pow(float64(d), specularShininess)) * specularIntensity
}

// compositeRows writes screen rows [y0, y1) of dst as RGBA bytes. Each pixel
// samples the label at its uv bent by the field gradient and adds the
// specular highlight to every channel. Screen row 0 is the top, which is the
// last field row.
func compositeRows(field *fieldBuffer, label *labelTexture, dst []byte, y0, y1 int) {
	width, height := field.width, field.height
	w := float32(width)
	h := float32(height)
	for sy := y0; sy < y1; sy++ {
		fy := height - 1 - sy
		v0 := (float32(fy) + 0.5) / h
		rowOut := sy * width * 4
		for x := 0; x < width; x++ {
			i := field.index(x, fy)
			gx := field.cells[i+chGradX]
			gy := field.cells[i+chGradY]
			u := (float32(x)+0.5)/w + refractionGain*gx
			v := v0 + refractionGain*gy
			c := label.sample(u, v)
			s := specular(gx, gy)
			o := rowOut + x*4
			dst[o] = unitToByte(c[0] + s)
			dst[o+1] = unitToByte(c[1] + s)
			dst[o+2] = unitToByte(c[2] + s)
			dst[o+3] = unitToByte(c[3] + s)
		}
	}
}
