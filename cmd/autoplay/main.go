// Command autoplay runs headless automatic-mode simulations and prints
// quick, human-readable statistics. It is useful for eyeballing how far the
// built-in pilot gets on different board sizes and seeds.
package main

import (
	"flag"
	"fmt"

	"github.com/wricardo/mcp-training/snakesim/game/engine"
)

var (
	width    = flag.Int("width", 24, "Board width in cells")
	height   = flag.Int("height", 24, "Board height in cells")
	runs     = flag.Int("runs", 10, "Number of runs")
	maxTicks = flag.Int("max-ticks", 10000, "Tick budget per run")
	baseSeed = flag.Int64("seed", 1, "Seed of the first run; each run increments it")
)

// runStats captures the outcome of a single headless run.
type runStats struct {
	seed   int64
	score  int
	length int
	ticks  uint64
	ended  bool
}

func main() {
	flag.Parse()

	fmt.Printf("Autoplay: %dx%d board, %d runs, %d ticks budget\n\n", *width, *height, *runs, *maxTicks)

	var total int
	best := runStats{}
	for i := 0; i < *runs; i++ {
		stats := playOne(*baseSeed + int64(i))

		status := "budget exhausted"
		if stats.ended {
			status = "run ended"
		}
		fmt.Printf("seed=%-6d score=%-4d length=%-4d ticks=%-6d %s\n",
			stats.seed, stats.score, stats.length, stats.ticks, status)

		total += stats.score
		if stats.score > best.score {
			best = stats
		}
	}

	fmt.Printf("\nAverage score: %.1f\n", float64(total)/float64(*runs))
	fmt.Printf("Best run: seed=%d score=%d length=%d\n", best.seed, best.score, best.length)
}

// playOne drives a single automatic-mode engine until the run ends or the
// tick budget is spent.
func playOne(seed int64) runStats {
	cfg := &engine.Config{
		Name:      "autoplay",
		Width:     *width,
		Height:    *height,
		Seed:      seed,
		StartMode: engine.ModeAutomatic,
	}

	e, err := engine.NewEngine(cfg)
	if err != nil {
		fmt.Printf("seed=%d failed to create engine: %v\n", seed, err)
		return runStats{seed: seed}
	}

	for i := 0; i < *maxTicks; i++ {
		if e.Phase() == engine.PhaseEnded {
			break
		}
		e.Update()
	}

	snapshot := e.Render()
	return runStats{
		seed:   seed,
		score:  snapshot.Score,
		length: len(snapshot.Actor),
		ticks:  snapshot.Tick,
		ended:  snapshot.Phase == engine.PhaseEnded,
	}
}
