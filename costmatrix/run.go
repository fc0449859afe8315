// SPDX-License-Identifier: MIT

package costmatrix

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/timeline"
)

// RunAll scores every window with the operation and blocks until all
// evaluations finish.
//
// Implementation:
//   - Stage 1: refuse overlapping calls (ErrRunning), then matrices a
//     previous run already populated (ErrAlreadyPopulated).
//   - Stage 2: launch one task per window on an errgroup limited to the
//     configured width; each task slices its frames, calls Calculate and
//     writes its own cell.
//   - Stage 3: Wait is the barrier. On the first failure the group context
//     is cancelled, tasks not yet started return early, every cell is reset
//     to pending and the failure is returned wrapped with its window.
//
// No retries. ctx cancellation aborts the batch the same way.
//
// Complexity: O(n²) Calculate calls, at most `workers` at a time.
func (cm *CostMatrix) RunAll(ctx context.Context) error {
	if !cm.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer cm.running.Store(false)
	if cm.populated.Load() {
		return ErrAlreadyPopulated
	}

	windows := cm.anim.Timeline.Permutations()
	log := cm.logger.With().Int("windows", len(windows)).Int("workers", cm.workers).Logger()
	log.Info().Msg("evaluating cost matrix")

	start := time.Now()
	cm.metrics.runStarted()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cm.workers)
	for _, w := range windows {
		w := w
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error { return cm.evaluate(gctx, w) })
	}
	err := g.Wait()
	if err == nil {
		// Loop may have stopped on a parent cancellation without any task failing.
		err = ctx.Err()
	}

	elapsed := time.Since(start)
	cm.metrics.runFinished(elapsed, err)
	if err != nil {
		cm.reset()
		log.Error().Err(err).Dur("duration", elapsed).Msg("cost matrix evaluation failed")

		return err
	}
	cm.populated.Store(true)
	log.Info().Dur("duration", elapsed).Msg("cost matrix evaluated")

	return nil
}

// evaluate scores a single window and writes its cell.
func (cm *CostMatrix) evaluate(ctx context.Context, w timeline.Timeline) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t0 := time.Now()
	frames, err := cm.anim.GetFrames(w)
	if err == nil {
		var (
			errValue float64
			index    int
		)
		errValue, index, err = cm.op.Calculate(frames)
		if err != nil {
			err = fmt.Errorf("costmatrix: window %v: %w", w, err)
		} else {
			err = cm.write(w, errValue, index)
		}
	}
	cm.metrics.observeWindow(time.Since(t0), err)
	if err != nil {
		cm.failed.Add(1)
		cm.logger.Debug().Err(err).Stringer("window", w).Msg("window failed")

		return err
	}
	cm.evaluated.Add(1)

	return nil
}

// FromAnimation builds a matrix over anim and runs it.
func FromAnimation(ctx context.Context, anim *animation.Animation, op Operation, opts ...Option) (*CostMatrix, error) {
	cm, err := New(anim, op, opts...)
	if err != nil {
		return nil, err
	}
	if err = cm.RunAll(ctx); err != nil {
		return nil, err
	}

	return cm, nil
}
