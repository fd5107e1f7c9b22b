// Package driver runs sched.Schedule's frontier solver to completion
// over a caller-sized block arena, reporting progress on a background
// goroutine the way the chess engine's search loop reports depth/nodes
// while it runs.
package driver

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hailam/schedsolver/internal/sched"
	"github.com/hailam/schedsolver/internal/word"
)

// Progress is one status snapshot, delivered to OnProgress roughly every
// ReportInterval while Run is searching.
type Progress struct {
	Steps     uint64
	Depth     int
	BestDepth int
}

// Limits bounds one Run call. MaxSteps of 0 means unlimited.
type Limits struct {
	MaxSteps       uint64
	ReportInterval time.Duration
	OnProgress     func(Progress)
}

// Result is what Run returns once the search stops, one way or
// another.
type Result struct {
	Solved   bool
	Schedule [][]int
	Steps    uint64
}

// Run drives sc's frontier solver to either a solution or exhaustion,
// using a depth-indexed stack of blocks carved out of one flat arena
// sized (maxDepth+1)*sc.BlockSize(). ctx cancellation stops the search
// early and returns Solved=false with the step count so far, together
// with ctx.Err().
func Run[W word.Word[W]](ctx context.Context, sc *sched.Schedule[W], maxDepth int, limits Limits) (Result, error) {
	blockSize := sc.BlockSize()
	arena := make([]W, (maxDepth+1)*blockSize)
	frame := func(depth int) []W {
		return arena[depth*blockSize : (depth+1)*blockSize]
	}

	if !sc.InitialiseBuffer(frame(0)) {
		return Result{}, sched.ErrTooSmallBuffer
	}

	var steps uint64
	var bestDepth int64
	var liveDepth int64 // mirrors depth for the reporting goroutine
	depth := 0

	var wg sync.WaitGroup
	done := make(chan struct{})
	if limits.OnProgress != nil {
		interval := limits.ReportInterval
		if interval <= 0 {
			interval = 300 * time.Millisecond
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					limits.OnProgress(Progress{
						Steps:     atomic.LoadUint64(&steps),
						Depth:     int(atomic.LoadInt64(&liveDepth)),
						BestDepth: int(atomic.LoadInt64(&bestDepth)),
					})
				}
			}
		}()
	}
	defer func() {
		close(done)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return Result{Steps: atomic.LoadUint64(&steps)}, ctx.Err()
		default:
		}

		if depth+1 > maxDepth {
			return Result{}, fmt.Errorf("driver: search exceeded maxDepth %d", maxDepth)
		}

		outcome := sc.Step(frame(depth), frame(depth+1))
		atomic.AddUint64(&steps, 1)

		switch outcome {
		case sched.Solved:
			return Result{Solved: true, Schedule: sc.GetSchedule(frame(depth)), Steps: atomic.LoadUint64(&steps)}, nil
		case sched.Child:
			depth++
			atomic.StoreInt64(&liveDepth, int64(depth))
			if int64(depth) > atomic.LoadInt64(&bestDepth) {
				atomic.StoreInt64(&bestDepth, int64(depth))
			}
		case sched.Dead:
			if depth == 0 {
				return Result{Steps: atomic.LoadUint64(&steps)}, nil
			}
			depth--
			atomic.StoreInt64(&liveDepth, int64(depth))
		}

		if limits.MaxSteps != 0 && atomic.LoadUint64(&steps) >= limits.MaxSteps {
			return Result{Steps: atomic.LoadUint64(&steps)}, nil
		}
	}
}
