//go:build opencl

package main

import "testing"

func TestOpenCLMatchesCPU(t *testing.T) {
	gpu, err := newOpenCLSolver(true, 2)
	if err != nil {
		t.Skipf("OpenCL unavailable: %v", err)
	}
	defer gpu.Close()
	cpu := newCPUSolver(2)
	defer cpu.Close()

	const w, h = 48, 32
	label := solidLabel(w, h, [4]uint8{200, 90, 30, 255})
	for _, s := range []fieldSolver{gpu, cpu} {
		if err := s.Resize(w, h, label); err != nil {
			t.Fatalf("%s Resize: %v", s.Name(), err)
		}
	}
	gpuPix := make([]byte, w*h*4)
	cpuPix := make([]byte, w*h*4)
	sweep := newPointerSweep(5)
	for frame := uint64(0); frame < 40; frame++ {
		x, y := sweep.next()
		in := stepInput{frame: frame, pointer: pointerState{x: x, y: y, present: true}}
		// Simulate on the verifying solver fails on any field divergence.
		if err := gpu.Simulate(in); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if err := cpu.Simulate(in); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if err := gpu.Composite(gpuPix); err != nil {
			t.Fatalf("frame %d composite: %v", frame, err)
		}
		if err := cpu.Composite(cpuPix); err != nil {
			t.Fatalf("frame %d composite: %v", frame, err)
		}
		for i := range cpuPix {
			if d := int(gpuPix[i]) - int(cpuPix[i]); d < -2 || d > 2 {
				t.Fatalf("frame %d byte %d: device %d, host %d", frame, i, gpuPix[i], cpuPix[i])
			}
		}
		gpu.Swap()
		cpu.Swap()
	}
}
