// Package graphfile loads string-state search graphs from YAML.
//
// A graph file lists nodes with a precomputed heuristic and their outgoing edges:
//
//	nodes:
//	  - state: gothenburg
//	    heuristic: 15.5
//	    edges:
//	      - {to: boras, cost: 4, label: rv40}
//	  - state: boras
//	    heuristic: 14
package graphfile

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/astar/v2"
)

var (
	ErrDuplicateState = errors.New("graphfile: duplicate state")
	ErrUnknownState   = errors.New("graphfile: unknown state")
)

// File is the on-disk shape of a graph.
type File struct {
	Nodes []NodeSpec `yaml:"nodes" validate:"required,min=1,dive"`
}

type NodeSpec struct {
	State     string     `yaml:"state" validate:"required"`
	Heuristic float64    `yaml:"heuristic" validate:"gte=0"`
	Edges     []EdgeSpec `yaml:"edges" validate:"dive"`
}

type EdgeSpec struct {
	To    string  `yaml:"to" validate:"required"`
	Cost  float64 `yaml:"cost" validate:"gte=0"`
	Label string  `yaml:"label"`
}

var fileValidate = validator.New()

// tableHeuristic looks estimates up by state; unknown states estimate zero.
type tableHeuristic map[string]float64

func (table tableHeuristic) Estimate(state string) float64 { return table[state] }

// Graph is a built graph, indexed by state.
type Graph struct {
	nodes map[string]*astar.StaticNode[string]
}

// Node returns the node holding state.
func (g *Graph) Node(state string) (*astar.StaticNode[string], error) {
	node, ok := g.nodes[state]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	return node, nil
}

// States lists every state in the graph, sorted.
func (g *Graph) States() []string {
	states := make([]string, 0, len(g.nodes))
	for state := range g.nodes {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// Load reads and builds the graph file at path.
func Load(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, validates and builds a graph from YAML.
func Parse(data []byte) (*Graph, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse graph file: %w", err)
	}
	return Build(file)
}

// Build links the nodes of file. All nodes share one heuristic table.
func Build(file File) (*Graph, error) {
	if err := fileValidate.Struct(file); err != nil {
		return nil, fmt.Errorf("validate graph file: %w", err)
	}

	heuristic := make(tableHeuristic, len(file.Nodes))
	g := &Graph{nodes: make(map[string]*astar.StaticNode[string], len(file.Nodes))}
	for _, spec := range file.Nodes {
		if _, exists := g.nodes[spec.State]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateState, spec.State)
		}
		heuristic[spec.State] = spec.Heuristic
		g.nodes[spec.State] = astar.NewStaticNode[string](spec.State, heuristic)
	}

	for _, spec := range file.Nodes {
		from := g.nodes[spec.State]
		for _, edge := range spec.Edges {
			to, ok := g.nodes[edge.To]
			if !ok {
				return nil, fmt.Errorf("%w: edge %q -> %q", ErrUnknownState, spec.State, edge.To)
			}
			from.Connect(to, edge.Cost, edge.Label)
		}
	}
	return g, nil
}
