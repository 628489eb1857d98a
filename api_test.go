package astar_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/fixtures"
)

func never[StateType any](StateType) bool { return false }

func TestSearch_Triangle(t *testing.T) {
	result, err := astar.Search[int](context.Background(), fixtures.Triangle(),
		func(state int) bool { return state == 3 })
	require.NoError(t, err)

	assert.Equal(t, astar.StatusFound, result.Status)
	assert.True(t, result.Found())
	assert.Equal(t, []int{0, 3}, result.Path.States())
	assert.Equal(t, 1.0, result.Path.Weight())
	assert.Len(t, result.Path.Labels(), 1)
	assert.NotEmpty(t, result.RunID)
	assert.Positive(t, result.ExpandedNodes)
}

func TestSearch_DisconnectedGoalReportsNoPath(t *testing.T) {
	root := astar.NewStaticNode[string]("alone", nil)

	result, err := astar.Search[string](context.Background(), root, never[string])
	require.Error(t, err)
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Equal(t, "AStar.Error: no path found", err.Error())
	assert.Equal(t, astar.StatusNotFound, result.Status)
	assert.False(t, result.Found())
	assert.Equal(t, 1, result.ExpandedNodes)
	assert.Zero(t, result.Path.Len())
}

func TestSearch_CycleWithoutClosedSetTimesOut(t *testing.T) {
	timeout := 20 * time.Millisecond

	result, err := astar.Search[string](context.Background(), fixtures.Cycle(), never[string],
		astar.WithTimeout(timeout))
	require.Error(t, err)
	assert.ErrorIs(t, err, astar.ErrTimeout)
	assert.Equal(t, "AStar.Error: Request timeout", err.Error())
	assert.Equal(t, astar.StatusTimeout, result.Status)
	assert.GreaterOrEqual(t, result.Elapsed, timeout)
	assert.Zero(t, result.Path.Len(), "no partial path on timeout")
	assert.Greater(t, result.ExpandedNodes, 2, "cycle states are re-expanded")
}

func TestSearch_CycleWithClosedSetExhausts(t *testing.T) {
	result, err := astar.Search[string](context.Background(), fixtures.Cycle(), never[string],
		astar.WithClosedSet())
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Equal(t, astar.StatusNotFound, result.Status)
	assert.Equal(t, 2, result.ExpandedNodes)
}

func TestSearch_CitiesOptimalRoute(t *testing.T) {
	cities := fixtures.Cities()

	result, err := astar.Search[string](context.Background(), cities[fixtures.Gothenburg],
		func(state string) bool { return state == fixtures.Stockholm })
	require.NoError(t, err)

	assert.Equal(t,
		[]string{fixtures.Gothenburg, fixtures.Boras, fixtures.Jonkoping, fixtures.Stockholm},
		result.Path.States())
	assert.Equal(t, 28.0, result.Path.Weight())
	assert.Equal(t, []string{"gothenburg-boras", "boras-jonkoping", "jonkoping-stockholm"}, result.Path.Labels())
}

func TestSearch_ClosedSetKeepsOptimalCost(t *testing.T) {
	cities := fixtures.Cities()

	result, err := astar.Search[string](context.Background(), cities[fixtures.Gothenburg],
		func(state string) bool { return state == fixtures.Stockholm },
		astar.WithClosedSet())
	require.NoError(t, err)
	assert.Equal(t, 28.0, result.Path.Weight())
}

func TestSearch_CheaperDetourBeatsGreedyFirstHop(t *testing.T) {
	// a -1-> b -10-> d and a -3-> c -3-> d: the optimal route starts with the dearer hop.
	zero := astar.ZeroHeuristic[string]{}
	d := astar.NewStaticNode[string]("d", zero)
	b := astar.NewStaticNode[string]("b", zero, astar.Edge[string]{Cost: 10, End: d})
	c := astar.NewStaticNode[string]("c", zero, astar.Edge[string]{Cost: 3, End: d})
	a := astar.NewStaticNode[string]("a", zero,
		astar.Edge[string]{Cost: 1, End: b},
		astar.Edge[string]{Cost: 3, End: c},
	)

	result, err := astar.Search[string](context.Background(), a,
		func(state string) bool { return state == "d" })
	require.NoError(t, err)
	assert.Equal(t, 6.0, result.Path.Weight())
	assert.Equal(t, []string{"a", "c", "d"}, result.Path.States())
}

func TestSearch_EqualCostRoutesAgreeOnCost(t *testing.T) {
	zero := astar.ZeroHeuristic[string]{}
	goal := astar.NewStaticNode[string]("goal", zero)
	left := astar.NewStaticNode[string]("left", zero, astar.Edge[string]{Cost: 2, End: goal})
	right := astar.NewStaticNode[string]("right", zero, astar.Edge[string]{Cost: 1, End: goal})
	root := astar.NewStaticNode[string]("root", zero,
		astar.Edge[string]{Cost: 1, End: left},
		astar.Edge[string]{Cost: 2, End: right},
	)

	result, err := astar.Search[string](context.Background(), root,
		func(state string) bool { return state == "goal" })
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Path.Weight())
	assert.Equal(t, "goal", result.Path.States()[result.Path.Len()-1])
}

func TestSearch_GoalAtRootIgnoresDeadline(t *testing.T) {
	root := astar.NewStaticNode[int](7, nil)

	result, err := astar.Search[int](context.Background(), root,
		func(state int) bool { return state == 7 },
		astar.WithTimeout(time.Nanosecond))
	require.NoError(t, err)
	assert.Equal(t, []int{7}, result.Path.States())
	assert.Zero(t, result.Path.Weight())
}

// S -1-> A -1-> C, S -2-> B -1-> C, C -3-> G with h(A) = 4 and zero elsewhere.
// h is admissible but not consistent, so C is first expanded through B.
func inconsistentHeuristicGraph() *astar.StaticNode[string] {
	heuristic := astar.HeuristicFunc[string](func(state string) float64 {
		if state == "A" {
			return 4
		}
		return 0
	})
	g := astar.NewStaticNode[string]("G", heuristic)
	c := astar.NewStaticNode[string]("C", heuristic, astar.Edge[string]{Cost: 3, End: g})
	a := astar.NewStaticNode[string]("A", heuristic, astar.Edge[string]{Cost: 1, End: c})
	b := astar.NewStaticNode[string]("B", heuristic, astar.Edge[string]{Cost: 1, End: c})
	return astar.NewStaticNode[string]("S", heuristic,
		astar.Edge[string]{Cost: 1, End: a},
		astar.Edge[string]{Cost: 2, End: b},
	)
}

func TestSearch_ClosedSetReopensCheaperPath(t *testing.T) {
	tests := []struct {
		name    string
		options []astar.Option
	}{
		{name: "without closed set"},
		{name: "with closed set", options: []astar.Option{astar.WithClosedSet()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := astar.Search[string](context.Background(), inconsistentHeuristicGraph(),
				func(state string) bool { return state == "G" }, tt.options...)
			require.NoError(t, err)
			assert.Equal(t, []string{"S", "A", "C", "G"}, result.Path.States())
			assert.Equal(t, 5.0, result.Path.Weight())
		})
	}
}

func TestSearch_ClosedSetRejectsIncomparableChild(t *testing.T) {
	child := astar.NewStaticNode[any]([]int{1}, nil)
	root := astar.NewStaticNode[any]("root", nil, astar.Edge[any]{Cost: 1, End: child})

	var result astar.Result[any]
	var err error
	require.NotPanics(t, func() {
		result, err = astar.Search[any](context.Background(), root,
			func(any) bool { return false }, astar.WithClosedSet())
	})
	assert.ErrorIs(t, err, astar.ErrInvalidConfig)
	assert.Equal(t, astar.StatusNotFound, result.Status)
}

func TestSearch_MaxExpansionsExpandsBudget(t *testing.T) {
	b := astar.NewStaticNode[string]("b", nil)
	a := astar.NewStaticNode[string]("a", nil, astar.Edge[string]{Cost: 1, End: b})
	isB := func(state string) bool { return state == "b" }

	result, err := astar.Search[string](context.Background(), a, isB, astar.WithMaxExpansions(1))
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)
	assert.Equal(t, 1, result.ExpandedNodes)

	result, err = astar.Search[string](context.Background(), a, isB, astar.WithMaxExpansions(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, result.Path.States())
	assert.Equal(t, 2, result.ExpandedNodes)
}

func TestSearch_MaxExpansions(t *testing.T) {
	result, err := astar.Search[string](context.Background(), fixtures.Cycle(), never[string],
		astar.WithTimeout(0), astar.WithMaxExpansions(5))
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)
	assert.Equal(t, astar.StatusExpansionLimit, result.Status)
	assert.Equal(t, 5, result.ExpandedNodes)
}

func TestSearch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := astar.Search[int](ctx, fixtures.Triangle(),
		func(state int) bool { return state == 3 })
	assert.ErrorIs(t, err, astar.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, astar.StatusCanceled, result.Status)
	assert.Zero(t, result.ExpandedNodes)
}

func TestSearch_InvalidArguments(t *testing.T) {
	root := astar.NewStaticNode[int](0, nil)
	tests := []struct {
		name    string
		root    astar.Node[int]
		goal    astar.Goal[int]
		options []astar.Option
	}{
		{name: "nil root", root: nil, goal: never[int]},
		{name: "nil goal", root: root, goal: nil},
		{name: "negative timeout", root: root, goal: never[int], options: []astar.Option{astar.WithTimeout(-time.Second)}},
		{name: "negative max expansions", root: root, goal: never[int], options: []astar.Option{astar.WithMaxExpansions(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := astar.Search[int](context.Background(), tt.root, tt.goal, tt.options...)
			assert.ErrorIs(t, err, astar.ErrInvalidConfig)
		})
	}
}

func TestSearch_ClosedSetRejectsIncomparableStates(t *testing.T) {
	root := astar.NewStaticNode[[]int]([]int{1}, nil)

	_, err := astar.Search[[]int](context.Background(), root, never[[]int], astar.WithClosedSet())
	assert.ErrorIs(t, err, astar.ErrInvalidConfig)
}

func TestSearch_IncomparableStatesWithoutClosedSet(t *testing.T) {
	goal := astar.NewStaticNode[[]int]([]int{1, 2}, nil)
	root := astar.NewStaticNode[[]int]([]int{1}, nil, astar.Edge[[]int]{Cost: 1, End: goal})

	result, err := astar.Search[[]int](context.Background(), root,
		func(state []int) bool { return len(state) == 2 })
	require.NoError(t, err)
	assert.Equal(t, 2, result.Path.Len())
}
