// Command astar runs A* searches over YAML graph files and sample graphs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	astar "github.com/pdrpinto/astar/v2"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "astar",
		Short: "Run A* searches over state graphs",
		Long: `Runs A* best-first searches over graphs described in YAML files,
over the bundled sample graphs, or step by step behind an HTTP endpoint.

Search limits and observability come from --config (YAML) and are
overridden by ASTAR_* environment variables.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(
		newRunCmd(&configPath),
		newDemoCmd(&configPath),
		newServeCmd(&configPath),
	)
	return root
}

// environment is what every subcommand needs to run searches.
type environment struct {
	config   astar.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *astar.Metrics
	shutdown func(context.Context) error
}

func loadEnvironment(configPath string, stderr io.Writer) (*environment, error) {
	config, err := astar.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	env := &environment{
		config:   config,
		logger:   slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: config.Observability.Level()})),
		registry: prometheus.NewRegistry(),
		shutdown: func(context.Context) error { return nil },
	}
	if config.Observability.MetricsEnabled {
		env.metrics = astar.NewMetrics(env.registry)
	}
	if config.Observability.TracingEnabled {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create trace exporter: %w", err)
		}
		provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		otel.SetTracerProvider(provider)
		env.shutdown = provider.Shutdown
	}
	return env, nil
}

func (env *environment) options(extra ...astar.Option) []astar.Option {
	return append(env.config.Options(env.logger, env.metrics), extra...)
}
