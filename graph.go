package astar

// Node is one vertex of a search graph carrying a state of type StateType.
//
// Heuristic must be deterministic for a fixed state and cheap enough to be
// called every time the node is ranked.
type Node[StateType any] interface {
	Children() []Edge[StateType]
	State() StateType
	Heuristic() float64
}

// Edge is a directed, weighted transition to End.
// Cost should be non-negative for the optimality guarantee; it is not checked.
// Label is diagnostic only. An empty label is still recorded on the path.
// Edges with a nil End are skipped during expansion.
type Edge[StateType any] struct {
	Cost  float64
	Label string
	End   Node[StateType]
}

// Heuristic estimates the remaining cost from a state to the nearest goal.
type Heuristic[StateType any] interface {
	Estimate(state StateType) float64
}

// HeuristicFunc adapts a plain function to Heuristic.
type HeuristicFunc[StateType any] func(state StateType) float64

func (estimate HeuristicFunc[StateType]) Estimate(state StateType) float64 {
	return estimate(state)
}

// ZeroHeuristic turns the search into uniform-cost search.
type ZeroHeuristic[StateType any] struct{}

func (ZeroHeuristic[StateType]) Estimate(StateType) float64 { return 0 }

// Goal reports whether a state ends the search.
type Goal[StateType any] func(state StateType) bool

// StaticNode is a Node with an explicit, appendable edge list.
//
// Nodes are shared by reference between edges and in-flight paths, so an
// AddEdge during a search is visible to that search the next time the node
// is expanded. StaticNode does no locking; build the graph before searching
// or serialize mutation with the searches yourself.
type StaticNode[StateType any] struct {
	edges     []Edge[StateType]
	heuristic Heuristic[StateType]
	state     StateType
}

// NewStaticNode creates a node for state. A nil heuristic estimates zero.
func NewStaticNode[StateType any](
	state StateType,
	heuristic Heuristic[StateType],
	edges ...Edge[StateType],
) *StaticNode[StateType] {
	return &StaticNode[StateType]{
		edges:     append([]Edge[StateType](nil), edges...),
		heuristic: heuristic,
		state:     state,
	}
}

func (node *StaticNode[StateType]) Children() []Edge[StateType] { return node.edges }

func (node *StaticNode[StateType]) State() StateType { return node.state }

// Heuristic evaluates the shared heuristic on the node's own state.
func (node *StaticNode[StateType]) Heuristic() float64 {
	if node.heuristic == nil {
		return 0
	}
	return node.heuristic.Estimate(node.state)
}

// AddEdge appends edge to the node's outgoing edges.
func (node *StaticNode[StateType]) AddEdge(edge Edge[StateType]) {
	node.edges = append(node.edges, edge)
}

// Connect is shorthand for AddEdge(Edge{Cost: cost, Label: label, End: to}).
func (node *StaticNode[StateType]) Connect(to Node[StateType], cost float64, label string) {
	node.AddEdge(Edge[StateType]{Cost: cost, Label: label, End: to})
}
