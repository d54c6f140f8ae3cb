package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// startCPUProfile begins writing a CPU profile to path. The returned stop
// function flushes the profile, logs how long it ran and is safe to call more
// than once.
func startCPUProfile(path string, logger *slog.Logger) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile %q: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}
	began := time.Now()
	logger.Info("cpu profile started", "path", path)
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				logger.Warn("closing cpu profile", "path", path, "err", err)
				return
			}
			logger.Info("cpu profile written", "path", path, "duration", time.Since(began).Round(time.Millisecond))
		})
	}
	return stop, nil
}
