package main

import "time"

// Simulation, composite and runtime constants. The wave and lighting values
// are tuned together; changing one usually means retuning the others.
const (
	defaultWidth, defaultHeight = 1280, 720
	defaultTPS                  = 60.0

	// Field update.
	waveSpeed       = float32(1.4)
	waveRestoring   = float32(0.005)
	waveFriction    = float32(0.002)
	waveHeightDecay = float32(0.999)

	// Pointer brush. The radius is measured in units of viewport height.
	brushRadius = float32(0.02)
	brushGain   = float32(2.0)

	// Composite pass.
	refractionGain    = float32(0.3)
	normalSlopeScale  = float32(2.0)
	normalUp          = float32(0.5)
	lightX, lightY    = float32(-3), float32(10)
	lightZ            = float32(3)
	specularShininess = 60.0
	specularIntensity = float32(1.5)

	// Label texture.
	defaultLabelText  = "PNRM CREATIVE"
	defaultFontSize   = 100.0
	defaultForeground = "#fef4b8"
	defaultBackground = "#fb7427"

	pgoRecordDuration = 15 * time.Second
	debugLogInterval  = 5 * time.Second
)
