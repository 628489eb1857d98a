// Package fixtures holds the small sample graphs used by tests and the demo command.
package fixtures

import (
	"math"

	astar "github.com/pdrpinto/astar/v2"
)

// Triangle returns the root (state 0) of a three-node graph:
// 0 -> 4 and 0 -> 3 at cost 1, and 4 -> 0 at cost 1. The heuristic is zero.
func Triangle() *astar.StaticNode[int] {
	zero := astar.ZeroHeuristic[int]{}
	four := astar.NewStaticNode[int](4, zero)
	three := astar.NewStaticNode[int](3, zero)
	root := astar.NewStaticNode[int](0, zero,
		astar.Edge[int]{Cost: 1, End: four},
		astar.Edge[int]{Cost: 1, End: three},
	)
	four.AddEdge(astar.Edge[int]{Cost: 1, End: root})
	return root
}

// Swedish city names used by Cities.
const (
	Gothenburg = "gothenburg"
	Boras      = "boras"
	Jonkoping  = "jonkoping"
	Stockholm  = "stockholm"
	Malmo      = "malmo"
	Varnamo    = "varnamo"
	Mellerud   = "mellerud"
)

// CityHeuristic estimates the remaining distance to Stockholm. It never overestimates.
var CityHeuristic = astar.HeuristicFunc[string](func(city string) float64 {
	switch city {
	case Gothenburg:
		return math.Sqrt(4*4 + 15*15)
	case Malmo:
		return math.Sqrt(16*16 + 15*15)
	case Varnamo:
		return 32
	case Mellerud:
		return 42 - 16
	case Boras:
		return 14
	case Jonkoping:
		return 15
	default:
		return 0
	}
})

// Cities builds the city graph and returns its nodes by name.
// The cheapest route from Gothenburg to Stockholm costs 28.
func Cities() map[string]*astar.StaticNode[string] {
	nodes := make(map[string]*astar.StaticNode[string])
	for _, city := range []string{Gothenburg, Boras, Jonkoping, Stockholm, Malmo, Varnamo, Mellerud} {
		nodes[city] = astar.NewStaticNode[string](city, CityHeuristic)
	}
	roads := []struct {
		from, to string
		cost     float64
	}{
		{Gothenburg, Boras, 4},
		{Boras, Jonkoping, 8},
		{Stockholm, Boras, 15},
		{Jonkoping, Stockholm, 16},
		{Jonkoping, Gothenburg, 23},
		{Boras, Stockholm, 42},
		{Gothenburg, Malmo, 4},
		{Gothenburg, Varnamo, 8},
		{Jonkoping, Mellerud, 15},
		{Malmo, Boras, 16},
		{Varnamo, Jonkoping, 23},
		{Mellerud, Jonkoping, 42},
	}
	for _, road := range roads {
		nodes[road.from].Connect(nodes[road.to], road.cost, road.from+"-"+road.to)
	}
	return nodes
}

// Cycle returns node "a" of the two-node cycle a <-> b with unit costs.
func Cycle() *astar.StaticNode[string] {
	a := astar.NewStaticNode[string]("a", nil)
	b := astar.NewStaticNode[string]("b", nil)
	a.Connect(b, 1, "a-b")
	b.Connect(a, 1, "b-a")
	return a
}
