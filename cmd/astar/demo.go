package main

import (
	"fmt"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/fixtures"
)

func newDemoCmd(configPath *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:       "demo triangle|geo",
		Short:     "Search one of the bundled sample graphs",
		Long:      "triangle searches state 3 from state 0; geo searches Stockholm from Gothenburg.",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"triangle", "geo"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = env.shutdown(cmd.Context()) }()

			switch args[0] {
			case "triangle":
				result, searchErr := astar.Search[int](cmd.Context(), fixtures.Triangle(),
					func(state int) bool { return state == 3 },
					env.options()...)
				if err := writeResult(cmd.OutOrStdout(), result, jsonOutput); err != nil {
					return err
				}
				return searchErr
			case "geo":
				cities := fixtures.Cities()
				result, searchErr := astar.Search[string](cmd.Context(), cities[fixtures.Gothenburg],
					func(state string) bool { return state == fixtures.Stockholm },
					env.options()...)
				if err := writeResult(cmd.OutOrStdout(), result, jsonOutput); err != nil {
					return err
				}
				return searchErr
			default:
				return fmt.Errorf("unknown demo %q", args[0])
			}
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	return cmd
}
