package store

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
)

var (
	// ErrNotInitialized is returned before Init or after Close.
	ErrNotInitialized = errors.New("store: database not initialized")

	// ErrRunNotFound indicates no run with the requested id.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrTimelineMismatch indicates the run covers a different timeline or
	// animation than the one it is loaded against.
	ErrTimelineMismatch = errors.New("store: run does not match animation")

	// ErrNilMatrix indicates SaveMatrix was called without a matrix.
	ErrNilMatrix = errors.New("store: nil cost matrix")
)

// Run describes one saved cost matrix.
type Run struct {
	ID        string
	Animation string
	Operation string
	StartTime int
	EndTime   int
	Windows   int // computed entries stored
	CreatedAt time.Time
}

// SaveRequest is the input of SaveMatrix.
type SaveRequest struct {
	// Animation overrides the matrix animation name when non-empty.
	Animation string
	// Operation labels the scoring operation, e.g. "interp/euclidean".
	Operation string
	Matrix    *costmatrix.CostMatrix
}

// Store is the persistence contract used by the CLI.
type Store interface {
	Init(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
	HealthCheck(ctx context.Context) error

	SaveMatrix(ctx context.Context, req SaveRequest) (Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	LoadMatrix(ctx context.Context, runID string, anim *animation.Animation, op costmatrix.Operation, opts ...costmatrix.Option) (*costmatrix.CostMatrix, error)
	ListRuns(ctx context.Context, animName string) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
}

var _ Store = (*SQLiteStore)(nil)
