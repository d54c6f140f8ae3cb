package main

import (
	"context"
	"errors"
	"time"
)

// frameScheduler blocks until the next display refresh.
type frameScheduler interface {
	WaitFrame(ctx context.Context) error
}

// tickerScheduler paces headless frames at a fixed rate.
type tickerScheduler struct {
	ticker *time.Ticker
}

func newTickerScheduler(fps float64) *tickerScheduler {
	if fps <= 0 {
		fps = defaultTPS
	}
	return &tickerScheduler{ticker: time.NewTicker(time.Duration(float64(time.Second) / fps))}
}

func (t *tickerScheduler) WaitFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

func (t *tickerScheduler) Stop() { t.ticker.Stop() }

// runHeadless drives the scene until ctx is cancelled or maxFrames frames
// have run (0 means no limit). When sweep is non-nil it moves the pointer
// before every frame. It returns the number of frames executed; cancellation
// is a normal stop, not an error.
func runHeadless(ctx context.Context, scene *sceneContext, sched frameScheduler, maxFrames int, sweep *pointerSweep) (int, error) {
	start := time.Now()
	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if err := sched.WaitFrame(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return n, nil
			}
			return n, err
		}
		if sweep != nil {
			x, y := sweep.next()
			scene.onPointerMove(x, y)
		}
		if err := scene.frame(time.Since(start)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
