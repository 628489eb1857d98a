package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/graphfile"
)

func newRunCmd(configPath *string) *cobra.Command {
	var (
		graphPath  string
		from       string
		to         string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search a YAML graph file from one state to another",
		Example: `  astar run --graph cities.yaml --from gothenburg --to stockholm
  astar run --graph cities.yaml --from gothenburg --to stockholm --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = env.shutdown(cmd.Context()) }()

			g, err := graphfile.Load(graphPath)
			if err != nil {
				return err
			}
			root, err := g.Node(from)
			if err != nil {
				return err
			}
			if _, err := g.Node(to); err != nil {
				return err
			}

			result, searchErr := astar.Search[string](cmd.Context(), root,
				func(state string) bool { return state == to },
				env.options()...)
			if err := writeResult(cmd.OutOrStdout(), result, jsonOutput); err != nil {
				return err
			}
			return searchErr
		},
	}
	cmd.Flags().StringVar(&graphPath, "graph", "", "path to the YAML graph file")
	cmd.Flags().StringVar(&from, "from", "", "start state")
	cmd.Flags().StringVar(&to, "to", "", "goal state")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	_ = cmd.MarkFlagRequired("graph")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

type resultOutput struct {
	RunID     string   `json:"run_id"`
	Status    string   `json:"status"`
	States    []string `json:"states,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Cost      float64  `json:"cost"`
	Expanded  int      `json:"expanded"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

func writeResult[StateType any](w io.Writer, result astar.Result[StateType], asJSON bool) error {
	out := resultOutput{
		RunID:     result.RunID,
		Status:    result.Status.String(),
		Expanded:  result.ExpandedNodes,
		ElapsedMS: result.Elapsed.Milliseconds(),
	}
	if result.Found() {
		for _, state := range result.Path.States() {
			out.States = append(out.States, fmt.Sprint(state))
		}
		out.Labels = result.Path.Labels()
		out.Cost = result.Path.Weight()
	}

	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if !result.Found() {
		_, err := fmt.Fprintf(w, "%s after %d expansions (%dms)\n", out.Status, out.Expanded, out.ElapsedMS)
		return err
	}
	_, err := fmt.Fprintf(w, "path: %s\ncost: %g\nexpanded: %d\nelapsed: %dms\n",
		strings.Join(out.States, " -> "), out.Cost, out.Expanded, out.ElapsedMS)
	return err
}
