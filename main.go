package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	logger, err := setupLogging(os.Stderr, *logLevelFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(logger); err != nil {
		logger.Error("ripple exited", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	workers := *workersFlag
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	solver := selectSolver(logger, workers)
	defer solver.Close()

	labels, err := newLabelRenderer(labelStyle{
		text:       *labelFlag,
		fontSize:   *fontSizeFlag,
		foreground: *fgFlag,
		background: *bgFlag,
	})
	if err != nil {
		return err
	}
	defer labels.Close()

	scale := *pixelScaleFlag
	if scale < 1 {
		scale = 1
	}
	scene, err := newSceneContext(solver, labels, *widthFlag/scale, *heightFlag/scale, logger)
	if err != nil {
		return err
	}
	logger.Info("scene ready", "solver", solver.Name(), "width", scene.width, "height", scene.height, "workers", workers)

	var stopProfile func()
	profilePath := *cpuProfileFlag
	if *recordDefaultPGO && profilePath == "" {
		profilePath = "default.pgo"
	}
	if profilePath != "" {
		if stopProfile, err = startCPUProfile(profilePath, logger); err != nil {
			return err
		}
		defer stopProfile()
	}

	if *headlessFlag {
		return runHeadlessMain(scene, logger)
	}

	g := newGame(scene, logger, scale)
	g.snapshotPath = *snapshotFlag
	if *recordDefaultPGO {
		g.enableAutoSweep(pgoRecordDuration)
		g.stopProfile = stopProfile
		g.profileStopAfterSweep = true
	}
	ebiten.SetWindowSize(*widthFlag, *heightFlag)
	ebiten.SetWindowTitle("Ripple Label")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(defaultTPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// selectSolver prefers OpenCL when requested and falls back to the CPU.
func selectSolver(logger *slog.Logger, workers int) fieldSolver {
	if *openCLFlag {
		solver, err := newOpenCLSolver(*verifyOpenCLFlag, workers)
		if err == nil {
			logger.Info("OpenCL solver enabled", "device", solver.Name(), "verify", *verifyOpenCLFlag)
			return solver
		}
		logger.Warn("OpenCL unavailable, using CPU solver", "err", err)
	}
	return newCPUSolver(workers)
}

// runHeadlessMain drives the scene off-screen until the frame budget is
// spent or the process is interrupted, then writes the optional snapshot.
func runHeadlessMain(scene *sceneContext, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sched := newTickerScheduler(*fpsFlag)
	defer sched.Stop()

	start := time.Now()
	n, err := runHeadless(ctx, scene, sched, *framesFlag, newPointerSweep(time.Now().UnixNano()))
	logger.Info("headless run finished", "frames", n, "elapsed", time.Since(start).Round(time.Millisecond))
	if err != nil {
		return err
	}
	if *snapshotFlag != "" {
		if err := writeSnapshot(*snapshotFlag, scene.width, scene.height, scene.pixels); err != nil {
			return err
		}
		logger.Info("snapshot written", "path", *snapshotFlag)
	}
	return nil
}
