package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_PushAccumulatesCostWithoutMutating(t *testing.T) {
	a := NewStaticNode[string]("a", nil)
	b := NewStaticNode[string]("b", nil)
	c := NewStaticNode[string]("c", nil)

	root := NewPath[string](a)
	ab := root.Push(Edge[string]{Cost: 2.5, Label: "ab", End: b})
	abc := ab.Push(Edge[string]{Cost: 4, End: c})

	assert.Equal(t, 0.0, root.Weight())
	assert.Equal(t, 2.5, ab.Weight())
	assert.Equal(t, 6.5, abc.Weight())

	assert.Equal(t, []string{"a"}, root.States())
	assert.Equal(t, []string{"a", "b"}, ab.States())
	assert.Equal(t, []string{"a", "b", "c"}, abc.States())
	assert.Equal(t, []string{"ab", ""}, abc.Labels())
}

func TestPath_LabelsAreOneShorterThanNodes(t *testing.T) {
	node := NewStaticNode[int](0, nil)
	path := NewPath[int](node)
	for i := 0; i < 10; i++ {
		assert.Len(t, path.Labels(), path.Len()-1)
		path = path.Push(Edge[int]{Cost: 1, End: node})
	}
	assert.Equal(t, 11, path.Len())
	assert.Equal(t, 10.0, path.Weight())
}

func TestPath_BranchesDoNotShareHistory(t *testing.T) {
	a := NewStaticNode[string]("a", nil)
	b := NewStaticNode[string]("b", nil)
	c := NewStaticNode[string]("c", nil)

	base := NewPath[string](a).Push(Edge[string]{Cost: 1, Label: "ab", End: b})
	left := base.Push(Edge[string]{Cost: 1, Label: "left", End: c})
	right := base.Push(Edge[string]{Cost: 2, Label: "right", End: a})

	assert.Equal(t, []string{"ab", "left"}, left.Labels())
	assert.Equal(t, []string{"ab", "right"}, right.Labels())
	assert.Equal(t, []string{"a", "b"}, base.States())
}

func TestPath_Peek(t *testing.T) {
	a := NewStaticNode[string]("a", nil)
	b := NewStaticNode[string]("b", nil)
	path := NewPath[string](a).Push(Edge[string]{Cost: 1, End: b})

	last, err := path.Peek()
	require.NoError(t, err)
	assert.Equal(t, "b", last.State())

	var empty Path[string]
	_, err = empty.Peek()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPath_NodesReturnsCopy(t *testing.T) {
	a := NewStaticNode[string]("a", nil)
	b := NewStaticNode[string]("b", nil)
	path := NewPath[string](a)

	nodes := path.Nodes()
	nodes[0] = b
	assert.Equal(t, []string{"a"}, path.States())
}

func TestPath_RankingKeyAddsHeuristic(t *testing.T) {
	h := HeuristicFunc[string](func(state string) float64 {
		if state == "b" {
			return 10
		}
		return 0
	})
	a := NewStaticNode[string]("a", h)
	b := NewStaticNode[string]("b", h)
	c := NewStaticNode[string]("c", h)

	viaB := NewPath[string](a).Push(Edge[string]{Cost: 1, End: b})
	viaC := NewPath[string](a).Push(Edge[string]{Cost: 5, End: c})

	assert.Equal(t, 11.0, viaB.estimatedTotal())
	assert.Equal(t, 5.0, viaC.estimatedTotal())
	assert.Equal(t, 1, compareEstimatedTotal(viaB, viaC))
	assert.Equal(t, -1, compareEstimatedTotal(viaC, viaB))
}
