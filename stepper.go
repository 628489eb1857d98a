package astar

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[StateType any] struct {
	// Current is the path dequeued in this step.
	Current      Path[StateType]
	FrontierSize int
	// Pushed is the number of extended paths added to the frontier.
	Pushed    int
	Done      bool
	Status    Status
	StepIndex int
}

// Stepper runs the search one dequeue/expand cycle at a time.
// Search is a Stepper driven to completion.
type Stepper[StateType any] struct {
	ctx      context.Context
	goal     Goal[StateType]
	options  Options
	observer searchObserver
	span     trace.Span

	frontier *PriorityQueue[Path[StateType]]
	// closed maps an expanded state to the cheapest cost it was expanded at.
	closed map[any]float64

	runID        string
	startedAt    time.Time
	stepCount    int
	expanded     int
	frontierPeak int

	done   bool
	result Result[StateType]
	err    error
	last   StepSnapshot[StateType]
}

// searchSummary is what the observer reports once a search ends.
type searchSummary struct {
	runID        string
	status       Status
	expanded     int
	frontierPeak int
	elapsed      time.Duration
	pathCost     float64
	pathLength   int
}

// NewStepper validates the options and seeds the frontier with root.
// The deadline starts counting here.
func NewStepper[StateType any](
	ctx context.Context,
	root Node[StateType],
	goal Goal[StateType],
	options ...Option,
) (*Stepper[StateType], error) {
	// --- Apply options ---
	searchOptions := DefaultOptions()
	for _, option := range options {
		option(&searchOptions)
	}
	if err := validateSearch(root, goal, searchOptions); err != nil {
		return nil, err
	}

	// --- Initialize state ---
	s := &Stepper[StateType]{
		goal:     goal,
		options:  searchOptions,
		observer: newSearchObserver(searchOptions),
		frontier: NewPriorityQueue(compareEstimatedTotal[StateType]),
		runID:    uuid.NewString(),
	}
	if searchOptions.ClosedSet {
		s.closed = make(map[any]float64)
	}
	s.ctx, s.span = s.observer.start(ctx, s.runID, searchOptions)
	s.frontier.Add(NewPath(root))
	s.frontierPeak = 1
	s.startedAt = time.Now()
	return s, nil
}

func validateSearch[StateType any](root Node[StateType], goal Goal[StateType], options Options) error {
	if root == nil {
		return newError(KindInvalidConfig, "root node is nil", nil)
	}
	if goal == nil {
		return newError(KindInvalidConfig, "goal is nil", nil)
	}
	if options.Timeout < 0 {
		return newError(KindInvalidConfig, fmt.Sprintf("negative timeout %s", options.Timeout), nil)
	}
	if options.MaxExpansions < 0 {
		return newError(KindInvalidConfig, fmt.Sprintf("negative max expansions %d", options.MaxExpansions), nil)
	}
	if options.ClosedSet {
		if _, err := closedKey(root.State()); err != nil {
			return err
		}
	}
	return nil
}

// closedKey returns state as a map key, or ErrInvalidConfig when its dynamic
// type cannot be compared.
func closedKey[StateType any](state StateType) (any, error) {
	key := any(state)
	if keyType := reflect.TypeOf(key); keyType != nil && !keyType.Comparable() {
		return nil, newError(KindInvalidConfig, fmt.Sprintf("closed set needs comparable states, got %s", keyType), nil)
	}
	return key, nil
}

// RunID identifies the search in logs and spans.
func (s *Stepper[StateType]) RunID() string { return s.runID }

// Close ends the search span if the search was abandoned before finishing.
func (s *Stepper[StateType]) Close() {
	if s.done {
		return
	}
	s.finish(StatusCanceled, Path[StateType]{}, newError(KindCanceled, "stepper closed", nil))
}

// Frontier lists the last state of every queued path, in no particular order.
// A state reached by several paths is listed once per path.
func (s *Stepper[StateType]) Frontier() []StateType {
	paths := s.frontier.Values()
	states := make([]StateType, 0, len(paths))
	for _, path := range paths {
		if node, err := path.Peek(); err == nil {
			states = append(states, node.State())
		}
	}
	return states
}

// Closed lists the expanded states. It is empty unless WithClosedSet is on.
func (s *Stepper[StateType]) Closed() []StateType {
	states := make([]StateType, 0, len(s.closed))
	for key := range s.closed {
		state, _ := key.(StateType)
		states = append(states, state)
	}
	return states
}

// Result returns the outcome so far. Status is StatusPending until Done.
func (s *Stepper[StateType]) Result() Result[StateType] {
	if s.done {
		return s.result
	}
	return Result[StateType]{
		Status:        StatusPending,
		ExpandedNodes: s.expanded,
		Elapsed:       time.Since(s.startedAt),
		RunID:         s.runID,
	}
}

// Step advances the search by one expansion and returns a snapshot.
// Once Done, every further call returns the final snapshot and error.
func (s *Stepper[StateType]) Step() (StepSnapshot[StateType], error) {
	if s.done {
		return s.last, s.err
	}
	if s.options.MaxExpansions > 0 && s.expanded >= s.options.MaxExpansions {
		return s.finish(StatusExpansionLimit, Path[StateType]{}, ErrExpansionLimit)
	}

	path, ok, err := s.nextOpen()
	if err != nil {
		return s.fail(err)
	}
	if !ok {
		return s.finish(StatusNotFound, Path[StateType]{}, ErrNoPath)
	}
	s.stepCount++
	s.expanded++

	current, err := path.Peek()
	if err != nil {
		return s.fail(err)
	}

	// Goal check
	if s.goal(current.State()) {
		return s.finish(StatusFound, path, nil)
	}

	if s.options.Timeout > 0 && time.Since(s.startedAt) > s.options.Timeout {
		return s.finish(StatusTimeout, Path[StateType]{}, ErrTimeout)
	}

	pushed := 0
	for _, edge := range current.Children() {
		if edge.End == nil {
			continue
		}
		next := path.Push(edge)
		if s.closed != nil {
			dominated, err := s.dominated(edge.End.State(), next.Weight())
			if err != nil {
				return s.fail(err)
			}
			if dominated {
				continue
			}
		}
		s.frontier.Add(next)
		pushed++
	}
	if size := s.frontier.Len(); size > s.frontierPeak {
		s.frontierPeak = size
	}

	s.last = StepSnapshot[StateType]{
		Current:      path,
		FrontierSize: s.frontier.Len(),
		Pushed:       pushed,
		Status:       StatusPending,
		StepIndex:    s.stepCount,
	}
	return s.last, nil
}

// nextOpen dequeues the best path whose last state is not closed.
// ok is false when the frontier is exhausted.
func (s *Stepper[StateType]) nextOpen() (Path[StateType], bool, error) {
	for {
		if err := s.ctx.Err(); err != nil {
			return Path[StateType]{}, false, newError(KindCanceled, "search canceled", err)
		}
		if s.frontier.IsEmpty() {
			return Path[StateType]{}, false, nil
		}
		path, err := s.frontier.Dequeue()
		if err != nil {
			return Path[StateType]{}, false, err
		}
		if s.closed == nil {
			return path, true, nil
		}
		last, err := path.Peek()
		if err != nil {
			return Path[StateType]{}, false, err
		}
		key, err := closedKey(last.State())
		if err != nil {
			return Path[StateType]{}, false, err
		}
		if best, seen := s.closed[key]; seen && path.Weight() >= best {
			continue
		}
		s.closed[key] = path.Weight()
		return path, true, nil
	}
}

// dominated reports whether state was already expanded at cost or cheaper.
// A cheaper path reopens the state, which keeps the result optimal for
// admissible heuristics that are not consistent.
func (s *Stepper[StateType]) dominated(state StateType, cost float64) (bool, error) {
	key, err := closedKey(state)
	if err != nil {
		return false, err
	}
	best, seen := s.closed[key]
	return seen && cost >= best, nil
}

// fail ends the search on an error from the frontier or the closed set.
func (s *Stepper[StateType]) fail(err error) (StepSnapshot[StateType], error) {
	status := StatusNotFound
	if errors.Is(err, ErrCanceled) {
		status = StatusCanceled
	}
	return s.finish(status, Path[StateType]{}, err)
}

func (s *Stepper[StateType]) finish(status Status, path Path[StateType], err error) (StepSnapshot[StateType], error) {
	s.done = true
	s.err = err
	s.result = Result[StateType]{
		Status:        status,
		Path:          path,
		ExpandedNodes: s.expanded,
		Elapsed:       time.Since(s.startedAt),
		RunID:         s.runID,
	}
	s.last = StepSnapshot[StateType]{
		Current:      path,
		FrontierSize: s.frontier.Len(),
		Done:         true,
		Status:       status,
		StepIndex:    s.stepCount,
	}

	s.observer.finish(s.ctx, s.span, searchSummary{
		runID:        s.runID,
		status:       status,
		expanded:     s.expanded,
		frontierPeak: s.frontierPeak,
		elapsed:      s.result.Elapsed,
		pathCost:     path.Weight(),
		pathLength:   path.Len(),
	}, err)
	return s.last, err
}
