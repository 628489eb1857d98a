package astar

// Path is an immutable route from the search root to its last node.
// The zero value is an empty path; the search never produces one.
type Path[StateType any] struct {
	nodes  []Node[StateType]
	cost   float64
	labels []string
}

// NewPath returns the one-node path holding root, with cost 0.
func NewPath[StateType any](root Node[StateType]) Path[StateType] {
	return Path[StateType]{nodes: []Node[StateType]{root}}
}

// Push returns a new path extended by one hop along edge.
// The receiver is left untouched; the full history is copied.
func (path Path[StateType]) Push(edge Edge[StateType]) Path[StateType] {
	nodes := make([]Node[StateType], len(path.nodes), len(path.nodes)+1)
	copy(nodes, path.nodes)
	labels := make([]string, len(path.labels), len(path.labels)+1)
	copy(labels, path.labels)
	return Path[StateType]{
		nodes:  append(nodes, edge.End),
		cost:   path.cost + edge.Cost,
		labels: append(labels, edge.Label),
	}
}

// Weight returns the accumulated edge cost.
func (path Path[StateType]) Weight() float64 { return path.cost }

// Peek returns the most recently visited node.
func (path Path[StateType]) Peek() (Node[StateType], error) {
	if len(path.nodes) == 0 {
		return nil, ErrInvalidState
	}
	return path.nodes[len(path.nodes)-1], nil
}

// Len is the number of visited nodes.
func (path Path[StateType]) Len() int { return len(path.nodes) }

// Nodes returns a copy of the visited nodes, root first.
func (path Path[StateType]) Nodes() []Node[StateType] {
	return append([]Node[StateType](nil), path.nodes...)
}

// Labels returns a copy of the traversed edge labels.
func (path Path[StateType]) Labels() []string {
	return append([]string(nil), path.labels...)
}

// States projects the visited nodes onto their states.
func (path Path[StateType]) States() []StateType {
	states := make([]StateType, 0, len(path.nodes))
	for _, node := range path.nodes {
		states = append(states, node.State())
	}
	return states
}

// estimatedTotal is the A* ranking key: cost so far plus heuristic of the last node.
func (path Path[StateType]) estimatedTotal() float64 {
	last, err := path.Peek()
	if err != nil {
		return path.cost
	}
	return path.cost + last.Heuristic()
}

func compareEstimatedTotal[StateType any](a, b Path[StateType]) int {
	fa, fb := a.estimatedTotal(), b.estimatedTotal()
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}
