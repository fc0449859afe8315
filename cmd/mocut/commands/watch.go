package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/store"
	"github.com/katalvlaran/mocut/telemetry"
)

func newWatchCommand(a *app) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Compute cost matrices for animations as they appear",
		Long: `Watch a directory and compute the cost matrix of every animation CSV that
is created or rewritten there. Files ending in .costmatrix.csv are ignored.

With metrics.enabled the prometheus endpoint is served on metrics.addr for
as long as the watch runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0], delay)
		},
	}

	cmd.Flags().DurationVar(&delay, "debounce", 500*time.Millisecond, "quiet period before a changed file is processed")

	return cmd
}

func (a *app) watch(ctx context.Context, dir string, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	if err = watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var st store.Store
	if a.cfg.Store.Enabled {
		s, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		defer s.Close()
		st = s
	}

	g, gctx := errgroup.WithContext(ctx)

	var metrics *costmatrix.Metrics
	if a.cfg.Metrics.Enabled {
		reg := telemetry.NewRegistry()
		if metrics, err = a.newMetrics(reg); err != nil {
			return err
		}
		g.Go(func() error { return telemetry.Serve(gctx, a.cfg.Metrics.Addr, reg, a.log) })
	}

	a.log.Info().Str("dir", dir).Dur("debounce", delay).Msg("Watching for animations")

	g.Go(func() error {
		processEvents(gctx, watcher.Events, watcher.Errors, delay, a.log, func(ctx context.Context, path string) {
			res, err := a.computeFile(ctx, path, "", st, metrics)
			if err != nil {
				a.log.Error().Err(err).Str("file", path).Msg("Failed to compute cost matrix")
				return
			}
			a.log.Info().Str("file", path).Str("output", res.Output).Msg("Cost matrix written")
		})

		return nil
	})

	return g.Wait()
}

// processEvents debounces Write/Create events on animation CSVs and calls
// handle for each settled path, one at a time, until ctx ends or a channel
// closes.
func processEvents(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, delay time.Duration, logger zerolog.Logger, handle func(context.Context, string)) {
	d := newDebouncer(delay)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !isAnimationCSV(event.Name) {
				continue
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Animation changed")
			d.schedule(ctx, event.Name)

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("Watcher error")

		case s := <-d.ready:
			if d.settle(s) {
				handle(ctx, s.path)
			}
		}
	}
}

// settled is a fired debounce timer. seq identifies the timer so a fire
// that lost the race against a newer event for the same path is dropped.
type settled struct {
	path string
	seq  uint64
}

type pendingTimer struct {
	timer *time.Timer
	seq   uint64
}

// debouncer keeps one timer per path. It is owned by the processEvents loop.
type debouncer struct {
	delay  time.Duration
	seq    uint64
	timers map[string]pendingTimer
	ready  chan settled
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]pendingTimer),
		ready:  make(chan settled),
	}
}

// schedule (re)starts the timer of path.
func (d *debouncer) schedule(ctx context.Context, path string) {
	if p, ok := d.timers[path]; ok {
		p.timer.Stop()
	}
	d.seq++
	s := settled{path: path, seq: d.seq}
	d.timers[path] = pendingTimer{
		seq: s.seq,
		timer: time.AfterFunc(d.delay, func() {
			select {
			case d.ready <- s:
			case <-ctx.Done():
			}
		}),
	}
}

// settle reports whether s is the current timer of its path and forgets it.
func (d *debouncer) settle(s settled) bool {
	p, ok := d.timers[s.path]
	if !ok || p.seq != s.seq {
		return false
	}
	delete(d.timers, s.path)

	return true
}

func (d *debouncer) stop() {
	for _, p := range d.timers {
		p.timer.Stop()
	}
}
