package main

import "flag"

// Command-line flags that control the viewport, the label, the solver backend
// and the optional headless and profiling modes.
var (
	// widthFlag and heightFlag set the initial window (or headless viewport) size.
	widthFlag  = flag.Int("width", defaultWidth, "initial viewport width in pixels")
	heightFlag = flag.Int("height", defaultHeight, "initial viewport height in pixels")

	// pixelScaleFlag shrinks the simulated grid relative to the window; ebiten
	// upscales the result.
	pixelScaleFlag = flag.Int("pixel-scale", 1, "window pixels per field cell (>= 1)")

	labelFlag    = flag.String("label", defaultLabelText, "text rendered into the label texture")
	fontSizeFlag = flag.Float64("font-size", defaultFontSize, "label font size in pixels")
	fgFlag       = flag.String("fg", defaultForeground, "label text color (hex)")
	bgFlag       = flag.String("bg", defaultBackground, "label background color (hex)")

	// workersFlag sets the number of CPU worker goroutines; 0 means one per CPU.
	workersFlag = flag.Int("workers", 0, "CPU worker goroutines (0 = GOMAXPROCS)")

	// openCLFlag requests the OpenCL solver. Builds without -tags opencl fall
	// back to the CPU solver.
	openCLFlag = flag.Bool("opencl", false, "run both passes on an OpenCL device when available")

	verifyOpenCLFlag = flag.Bool("verify-opencl", false, "mirror every OpenCL step on the CPU and fail on divergence")

	// debugFlag enables the FPS and timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and pass timing overlay")

	headlessFlag = flag.Bool("headless", false, "run without a window, driving the pointer with a scripted sweep")
	framesFlag   = flag.Int("frames", 600, "frames to run in headless mode (0 = until interrupted)")
	fpsFlag      = flag.Float64("fps", defaultTPS, "headless frame rate")

	// snapshotFlag is the PNG path written on headless exit or when P is pressed.
	snapshotFlag = flag.String("snapshot", "", "write the composited frame to this PNG path")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this path")

	// recordDefaultPGO triggers a scripted pointer sweep to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "sweep the pointer for 15s while capturing default.pgo")

	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn or error")
)
