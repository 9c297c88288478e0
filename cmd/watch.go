package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/unionfind/internal/graph"
	"github.com/papapumpkin/unionfind/internal/graphfile"
	"github.com/papapumpkin/unionfind/internal/telemetry"
)

var watchCmd = &cobra.Command{
	Use:   "watch <graph.toml>",
	Short: "Re-run the cycle check and pair count whenever the graph file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	e, err := newEvaluator(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	g, err := e.load(path)
	if err != nil {
		return err
	}
	if err := e.both(path, g); err != nil {
		return err
	}

	w, err := graphfile.NewWatcher(path)
	if err != nil {
		return err
	}
	w.Debounce = e.cfg.WatchDebounce
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return e.watchLoop(ctx, w.Changes)
}

// watchLoop evaluates every change until ctx is done or changes closes.
// A file that fails to load is reported and the loop keeps going.
func (e *evaluator) watchLoop(ctx context.Context, changes <-chan graphfile.Change) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			if c.Err != nil {
				e.logger.Warn("graph reload failed", "path", c.Path, "error", c.Err)
				e.record(telemetry.KindWatchError, c.Path, map[string]string{"error": c.Err.Error()})
				if e.text() {
					e.printer.Error(c.Err)
				}
				continue
			}
			e.logger.Info("graph reloaded", "path", c.Path, "vertices", c.Graph.V(), "edges", c.Graph.E())
			e.record(telemetry.KindWatchReload, c.Path, map[string]int{"vertices": c.Graph.V(), "edges": c.Graph.E()})
			if e.text() {
				e.printer.Reloaded(c.Path)
			}
			if err := e.both(c.Path, c.Graph); err != nil {
				return err
			}
		}
	}
}

// both runs the cycle check and the pair count, each on its own set.
func (e *evaluator) both(path string, g *graph.Graph) error {
	if err := e.cycle(path, g); err != nil {
		return err
	}
	return e.pairs(path, g)
}
