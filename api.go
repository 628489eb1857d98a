package astar

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout is the wall-clock deadline applied when no WithTimeout is given.
const DefaultTimeout = 4 * time.Second

// Status tags how a search ended.
type Status int

const (
	// StatusPending means the search has not finished yet.
	StatusPending Status = iota
	StatusFound
	StatusNotFound
	StatusTimeout
	StatusExpansionLimit
	StatusCanceled
)

func (status Status) String() string {
	switch status {
	case StatusPending:
		return "pending"
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusTimeout:
		return "timeout"
	case StatusExpansionLimit:
		return "expansion_limit"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a search.
// Path is only meaningful when Status is StatusFound.
type Result[StateType any] struct {
	Status        Status
	Path          Path[StateType]
	ExpandedNodes int
	Elapsed       time.Duration
	RunID         string
}

// Found reports whether the search reached a goal state.
func (result Result[StateType]) Found() bool { return result.Status == StatusFound }

// Options defines parameters for the search.
type Options struct {
	// Timeout bounds the wall-clock time of a search. Zero disables it.
	Timeout time.Duration
	// MaxExpansions bounds the number of dequeued paths. Zero disables it.
	MaxExpansions int
	// ClosedSet skips states that were already expanded. States must be comparable.
	ClosedSet bool

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *Metrics
}

// DefaultOptions returns the options a search runs with when none are given.
func DefaultOptions() Options {
	return Options{Timeout: DefaultTimeout}
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithTimeout sets the wall-clock deadline of a search. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(options *Options) { options.Timeout = timeout }
}

// WithMaxExpansions stops the search once n paths were dequeued, goal-tested
// and expanded. The next path is not goal-tested.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithClosedSet skips paths reaching a state that was already expanded at the
// same or a lower cost, keyed by state equality. A cheaper path reopens the
// state, so results stay optimal with inconsistent heuristics. Without it
// cyclic graphs are only cut off by the timeout. A state whose dynamic type is
// not comparable ends the search with ErrInvalidConfig.
func WithClosedSet() Option {
	return func(options *Options) { options.ClosedSet = true }
}

// WithLogger sets the logger for search start and finish lines.
// Searches log nothing without one.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(options *Options) { options.Tracer = tracer }
}

func WithMetrics(metrics *Metrics) Option {
	return func(options *Options) { options.Metrics = metrics }
}

// Search runs A* from root until a state satisfying goal is dequeued.
//
// The frontier is ranked by path cost plus the heuristic of the path's last
// node. The returned path has minimal cost when the heuristic never
// overestimates. Every outcome other than StatusFound comes with a non-nil
// *Error: ErrNoPath when the frontier runs dry, ErrTimeout past the
// deadline, ErrExpansionLimit, or ErrCanceled when ctx is done.
func Search[StateType any](
	ctx context.Context,
	root Node[StateType],
	goal Goal[StateType],
	options ...Option,
) (Result[StateType], error) {
	stepper, err := NewStepper(ctx, root, goal, options...)
	if err != nil {
		return Result[StateType]{}, err
	}
	defer stepper.Close()

	for {
		snapshot, err := stepper.Step()
		if snapshot.Done {
			return stepper.Result(), err
		}
	}
}
