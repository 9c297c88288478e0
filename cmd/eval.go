package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/unionfind/internal/config"
	"github.com/papapumpkin/unionfind/internal/dsu"
	"github.com/papapumpkin/unionfind/internal/graph"
	"github.com/papapumpkin/unionfind/internal/graphfile"
	"github.com/papapumpkin/unionfind/internal/telemetry"
	"github.com/papapumpkin/unionfind/internal/ui"
)

// evaluator carries the per-invocation output, logging and telemetry
// shared by every command that runs an algorithm over a graph file.
type evaluator struct {
	cfg     config.Config
	out     io.Writer
	printer *ui.Printer
	logger  *slog.Logger
	events  *telemetry.Emitter
}

func newEvaluator(cmd *cobra.Command) (*evaluator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	var events *telemetry.Emitter
	if cfg.Telemetry != "" {
		events, err = telemetry.NewEmitter(cfg.Telemetry)
		if err != nil {
			return nil, err
		}
	}

	return &evaluator{
		cfg:     cfg,
		out:     cmd.OutOrStdout(),
		printer: ui.New(cmd.OutOrStdout()),
		logger:  logger,
		events:  events,
	}, nil
}

func (e *evaluator) Close() error {
	return e.events.Close()
}

func (e *evaluator) record(kind, source string, data any) {
	if err := e.events.Record(kind, source, data); err != nil {
		e.logger.Warn("telemetry write failed", "kind", kind, "error", err)
	}
}

func (e *evaluator) load(path string) (*graph.Graph, error) {
	g, err := graphfile.Load(path)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("graph loaded", "path", path, "vertices", g.V(), "edges", g.E())
	e.record(telemetry.KindGraphLoaded, path, map[string]int{"vertices": g.V(), "edges": g.E()})
	return g, nil
}

func (e *evaluator) text() bool {
	return e.cfg.Format == config.FormatText
}

func (e *evaluator) writeJSON(v any) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type cycleResult struct {
	Source   string `json:"source"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Cycle    bool   `json:"cycle"`
}

func (e *evaluator) cycle(path string, g *graph.Graph) error {
	d, err := dsu.New(g.V())
	if err != nil {
		return err
	}
	found, err := graph.HasCycle(g, d)
	if err != nil {
		return fmt.Errorf("cycle check: %w", err)
	}
	e.logger.Debug("cycle check done", "path", path, "cycle", found)
	e.record(telemetry.KindCycleCheck, path, map[string]bool{"cycle": found})

	if !e.text() {
		return e.writeJSON(cycleResult{Source: path, Vertices: g.V(), Edges: g.E(), Cycle: found})
	}
	e.printer.Cycle(path, found)
	return nil
}

type pairsResult struct {
	Source   string `json:"source"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`
	Pairs    int64  `json:"pairs"`
}

func (e *evaluator) pairs(path string, g *graph.Graph) error {
	d, err := dsu.New(g.V())
	if err != nil {
		return err
	}
	n, err := graph.CountCrossComponentPairs(g, d)
	if err != nil {
		return fmt.Errorf("pair count: %w", err)
	}
	e.logger.Debug("pair count done", "path", path, "pairs", n, "components", d.Count())
	e.record(telemetry.KindPairCount, path, map[string]int64{"pairs": n})

	if !e.text() {
		return e.writeJSON(pairsResult{Source: path, Vertices: g.V(), Edges: g.E(), Pairs: n})
	}
	e.printer.Pairs(path, n)
	return nil
}

type componentsResult struct {
	Source string      `json:"source"`
	Count  int         `json:"count"`
	Sets   map[int]int `json:"sets"`
}

func (e *evaluator) components(path string, g *graph.Graph) error {
	d, err := dsu.New(g.V())
	if err != nil {
		return err
	}
	sizes, err := graph.ComponentSizes(g, d)
	if err != nil {
		return fmt.Errorf("components: %w", err)
	}
	e.record(telemetry.KindComponents, path, map[string]int{"count": len(sizes)})

	if !e.text() {
		return e.writeJSON(componentsResult{Source: path, Count: len(sizes), Sets: sizes})
	}
	e.printer.Components(path, sizes)
	return nil
}

// evalFunc is one algorithm run against a loaded graph.
type evalFunc func(e *evaluator, path string, g *graph.Graph) error

// runOnFile is the RunE body shared by the single-shot commands.
func runOnFile(run evalFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newEvaluator(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		g, err := e.load(args[0])
		if err != nil {
			return err
		}
		return run(e, args[0], g)
	}
}
