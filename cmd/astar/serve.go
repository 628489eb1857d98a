package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	astar "github.com/pdrpinto/astar/v2"
)

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Step a grid search over HTTP",
		Long: `Serves a random walled grid and steps an A* search over it.

  GET /                                                  grid viewer
  GET /init?w=40&h=24&clusters=8&steps=200&density=0.25  new grid and search
  GET /next                                              one expansion, as JSON
  GET /metrics                                           Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnvironment(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = env.shutdown(context.Background()) }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "grid stepper: http://%s\n", listener.Addr())
			return serveGrid(ctx, listener, newGridServer(env))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

func serveGrid(ctx context.Context, listener net.Listener, grid *gridServer) error {
	srv := &http.Server{Handler: grid.routes(), ReadHeaderTimeout: 5 * time.Second}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	err := group.Wait()
	grid.close()
	return err
}

type point = [2]int

type grid struct {
	W, H  int
	Walls map[point]bool
}

var directions = []struct {
	delta point
	label string
}{
	{point{1, 0}, "E"}, {point{-1, 0}, "W"}, {point{0, 1}, "S"}, {point{0, -1}, "N"},
}

// build turns every free cell into a node with unit-cost edges to its free neighbours.
func (g grid) build(goal point) map[point]*astar.StaticNode[point] {
	heuristic := astar.HeuristicFunc[point](func(p point) float64 { return manhattan(p, goal) })
	nodes := make(map[point]*astar.StaticNode[point], g.W*g.H)
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if p := (point{x, y}); !g.Walls[p] {
				nodes[p] = astar.NewStaticNode[point](p, heuristic)
			}
		}
	}
	for p, node := range nodes {
		for _, d := range directions {
			if next, ok := nodes[point{p[0] + d.delta[0], p[1] + d.delta[1]}]; ok {
				node.Connect(next, 1, d.label)
			}
		}
	}
	return nodes
}

func manhattan(a, b point) float64 {
	dx := a[0] - b[0]
	if dx < 0 {
		dx = -dx
	}
	dy := a[1] - b[1]
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// clustered random walls via random walks
func genWalls(r *rand.Rand, w, h, clusters, steps int, density float64, start, goal point) map[point]bool {
	walls := map[point]bool{}
	for c := 0; c < clusters; c++ {
		p := point{r.Intn(w), r.Intn(h)}
		for s := 0; s < steps; s++ {
			if r.Float64() < density && p != start && p != goal {
				walls[p] = true
			}
			d := directions[r.Intn(len(directions))].delta
			np := point{p[0] + d[0], p[1] + d[1]}
			if np[0] >= 0 && np[0] < w && np[1] >= 0 && np[1] < h {
				p = np
			}
		}
	}
	return walls
}

type snapshot struct {
	Step     int      `json:"step"`
	W        int      `json:"w"`
	H        int      `json:"h"`
	Walls    [][2]int `json:"walls"`
	Current  [][2]int `json:"current,omitempty"`
	Open     [][2]int `json:"open,omitempty"`
	Closed   [][2]int `json:"closed,omitempty"`
	Frontier int      `json:"frontier"`
	Start    [2]int   `json:"start"`
	Goal     [2]int   `json:"goal"`
	Done     bool     `json:"done"`
	Status   string   `json:"status"`
	Found    bool     `json:"found"`
	Cost     float64  `json:"cost"`
}

type gridServer struct {
	env  *environment
	rand *rand.Rand

	mu      sync.Mutex
	grid    grid
	start   point
	goal    point
	stepper *astar.Stepper[point]
}

func newGridServer(env *environment) *gridServer {
	return &gridServer{env: env, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

//go:embed static/index.html
var indexHTML []byte

func (s *gridServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleStatic)
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/next", s.handleNext)
	mux.Handle("/metrics", promhttp.HandlerFor(s.env.registry, promhttp.HandlerOpts{}))
	return mux
}

func (s *gridServer) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepper != nil {
		s.stepper.Close()
	}
}

func queryInt(r *http.Request, key string, fallback, floor int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(key)); err == nil && v > floor {
		return v
	}
	return fallback
}

func (s *gridServer) handleInit(w http.ResponseWriter, r *http.Request) {
	wVal := queryInt(r, "w", 40, 4)
	hVal := queryInt(r, "h", 24, 4)
	clusters := queryInt(r, "clusters", 8, 0)
	steps := queryInt(r, "steps", 200, 0)
	density := 0.25
	if v, err := strconv.ParseFloat(r.URL.Query().Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		density = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// random start/goal not on walls
	var start, goal point
	for {
		start = point{s.rand.Intn(wVal), s.rand.Intn(hVal)}
		goal = point{s.rand.Intn(wVal), s.rand.Intn(hVal)}
		if start != goal {
			break
		}
	}
	g := grid{W: wVal, H: hVal, Walls: genWalls(s.rand, wVal, hVal, clusters, steps, density, start, goal)}
	nodes := g.build(goal)

	if s.stepper != nil {
		s.stepper.Close()
	}
	// A grid is full of cycles and is stepped by a human, so expand each
	// cell once and never time out.
	stepper, err := astar.NewStepper[point](context.Background(), nodes[start],
		func(p point) bool { return p == goal },
		s.env.options(astar.WithClosedSet(), astar.WithTimeout(0))...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.grid, s.start, s.goal, s.stepper = g, start, goal, stepper
	s.env.logger.Info("grid initialized",
		slog.String("run_id", stepper.RunID()),
		slog.Int("w", wVal), slog.Int("h", hVal), slog.Int("walls", len(g.Walls)))

	writeJSON(w, map[string]any{"ok": true, "w": wVal, "h": hVal, "run_id": stepper.RunID()})
}

func (s *gridServer) handleNext(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepper == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	st, err := s.stepper.Step()
	if err != nil && !st.Done {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := snapshot{
		Step:     st.StepIndex,
		W:        s.grid.W,
		H:        s.grid.H,
		Walls:    make([][2]int, 0, len(s.grid.Walls)),
		Frontier: st.FrontierSize,
		Start:    s.start,
		Goal:     s.goal,
		Done:     st.Done,
		Status:   st.Status.String(),
		Found:    st.Status == astar.StatusFound,
		Cost:     st.Current.Weight(),
	}
	for p := range s.grid.Walls {
		out.Walls = append(out.Walls, p)
	}
	out.Current = append(out.Current, st.Current.States()...)
	out.Open = uniqueCells(s.stepper.Frontier())
	out.Closed = uniqueCells(s.stepper.Closed())
	writeJSON(w, out)
}

// uniqueCells drops repeated cells; a cell can sit on several frontier paths.
func uniqueCells(cells []point) [][2]int {
	seen := make(map[point]bool, len(cells))
	out := make([][2]int, 0, len(cells))
	for _, p := range cells {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
