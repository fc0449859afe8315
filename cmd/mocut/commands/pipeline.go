package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/dtw"
	"github.com/katalvlaran/mocut/interp"
	"github.com/katalvlaran/mocut/keyframe"
	"github.com/katalvlaran/mocut/store"
)

// OutputSuffix marks cost matrix files so watch never feeds them back in.
const OutputSuffix = ".costmatrix.csv"

// operation builds the configured Operation for anim.
func (a *app) operation(anim *animation.Animation) (costmatrix.Operation, error) {
	oc := a.cfg.Operation
	switch oc.Kind {
	case "interp":
		m, err := interp.ParseMetric(oc.Metric)
		if err != nil {
			return nil, err
		}

		return interp.New(m), nil

	case "dtw":
		ref := anim
		if oc.DTW.Reference != "" {
			var err error
			if ref, err = animation.ReadCSVFile(oc.DTW.Reference); err != nil {
				return nil, fmt.Errorf("reference %s: %w", oc.DTW.Reference, err)
			}
		}
		clip, err := dtw.ReferenceFromAnimation(ref, oc.DTW.ReferenceStart, oc.DTW.ReferenceFrames)
		if err != nil {
			return nil, err
		}
		opts := dtw.DefaultOptions()
		opts.Window = oc.DTW.Window
		opts.SlopePenalty = oc.DTW.SlopePenalty

		return dtw.NewOperation(clip, opts), nil

	default:
		return nil, fmt.Errorf("unknown operation kind %q", oc.Kind)
	}
}

// matrixOptions returns the CostMatrix options derived from config.
// metrics may be nil.
func (a *app) matrixOptions(metrics *costmatrix.Metrics) []costmatrix.Option {
	opts := []costmatrix.Option{
		costmatrix.WithWorkers(a.cfg.Workers),
		costmatrix.WithLogger(a.log),
	}
	if metrics != nil {
		opts = append(opts, costmatrix.WithMetrics(metrics))
	}

	return opts
}

// newMetrics registers the cost matrix collectors on reg.
func (a *app) newMetrics(reg prometheus.Registerer) (*costmatrix.Metrics, error) {
	return costmatrix.NewMetrics(reg, a.cfg.Metrics.Namespace)
}

// openStore opens and migrates the configured SQLite store.
func (a *app) openStore(ctx context.Context) (*store.SQLiteStore, error) {
	s, err := store.NewSQLiteStore(store.Config{Path: a.cfg.Store.Path, Logger: a.log})
	if err != nil {
		return nil, err
	}
	if err = s.Init(ctx); err != nil {
		return nil, err
	}
	if err = s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// outputPath is <output.dir>/<name>.costmatrix.csv.
func (a *app) outputPath(anim *animation.Animation) string {
	return filepath.Join(a.cfg.Output.Dir, anim.Name+OutputSuffix)
}

// isAnimationCSV reports whether path looks like an animation input.
func isAnimationCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv") && !strings.HasSuffix(path, OutputSuffix)
}

// result is one computed animation.
type result struct {
	Matrix *costmatrix.CostMatrix
	Output string
	Run    *store.Run
}

// computeFile loads path, evaluates its cost matrix, writes the CSV and,
// when st is non-nil, saves the run.
func (a *app) computeFile(ctx context.Context, path, out string, st store.Store, metrics *costmatrix.Metrics) (result, error) {
	anim, err := animation.ReadCSVFile(path)
	if err != nil {
		return result{}, fmt.Errorf("load %s: %w", path, err)
	}
	op, err := a.operation(anim)
	if err != nil {
		return result{}, err
	}

	cm, err := costmatrix.FromAnimation(ctx, anim, op, a.matrixOptions(metrics)...)
	if err != nil {
		return result{}, err
	}

	if out == "" {
		out = a.outputPath(anim)
	}
	if err = os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return result{}, err
	}
	if err = cm.WriteCSVFile(out); err != nil {
		return result{}, fmt.Errorf("write %s: %w", out, err)
	}
	res := result{Matrix: cm, Output: out}

	if st != nil {
		run, err := st.SaveMatrix(ctx, store.SaveRequest{Operation: a.cfg.OperationLabel(), Matrix: cm})
		if err != nil {
			return res, err
		}
		res.Run = &run
	}

	return res, nil
}

// printBest writes the best window of at least minFrames frames.
func printBest(w io.Writer, cm *costmatrix.CostMatrix, minFrames int) error {
	best, err := cm.Best(minFrames)
	if errors.Is(err, costmatrix.ErrNoCandidate) {
		_, err = fmt.Fprintf(w, "best: no computed window spans %d frames\n", minFrames)
		return err
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "best: %v error=%.8f index=%d\n", best.Window, best.Error, best.Index)

	return err
}

// printKeyframes writes the minimal key set within tolerance.
func printKeyframes(w io.Writer, cm *costmatrix.CostMatrix, tolerance float64) error {
	plan, err := keyframe.Plan(cm, tolerance)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "keyframes: %d %v total_error=%.8f\n", len(plan.Keys), plan.Keys, plan.TotalError)

	return err
}
