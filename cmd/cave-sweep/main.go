package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"cavegen/pkg/grid"
	"cavegen/pkg/sims/caves"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type runResult struct {
	seed      int64
	width     int
	height    int
	gens      int
	stableAt  int
	liveRatio float64
	final     *grid.Grid
}

func main() {
	preset := flag.String("sim", "caves", "preset to sweep")
	seeds := flag.Int("seeds", 16, "number of seeds to run")
	firstSeed := flag.Int64("seed", 1, "first seed; the rest follow consecutively")
	steps := flag.Int("steps", 200, "maximum ticks per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	configFile := flag.String("config", "", "JSON file with simulation settings")
	dump := flag.Bool("dump", false, "print the map with the largest open area")
	var overrides kvList
	flag.Var(&overrides, "set", "parameter override in key=value form (repeatable)")
	flag.Parse()

	base, ok := caves.Presets()[*preset]
	if !ok {
		log.Fatalf("unknown preset %q", *preset)
	}
	cfg := base()
	if *configFile != "" {
		loaded, err := caves.LoadConfig(*configFile, cfg)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		cfg = loaded
	}
	kv := map[string]string{}
	for _, item := range overrides {
		k, v, ok := strings.Cut(item, "=")
		if !ok {
			log.Fatalf("override %q is not in key=value form", item)
		}
		kv[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	if v, ok := kv["schedule"]; ok {
		if _, err := caves.ParseSchedule(v); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	cfg = cfg.With(kv)

	log.Printf("sweeping %d seeds of %s: %dx%d density=%d schedule=%q", *seeds, *preset, cfg.Width, cfg.Height, cfg.Density, cfg.Schedule)

	results := make([]runResult, *seeds)
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(max(1, *workers))
	for i := range results {
		seed := *firstSeed + int64(i)
		eg.Go(func() error {
			res, err := runSeed(ctx, *preset, cfg, seed, *steps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].liveRatio < results[j].liveRatio })

	fmt.Printf("%-8s %-11s %-6s %-8s %s\n", "seed", "size", "gens", "stable", "alive")
	var total float64
	for _, r := range results {
		stable := "-"
		if r.stableAt >= 0 {
			stable = fmt.Sprint(r.stableAt)
		}
		fmt.Printf("%-8d %-11s %-6d %-8s %.3f\n", r.seed, fmt.Sprintf("%dx%d", r.width, r.height), r.gens, stable, r.liveRatio)
		total += r.liveRatio
	}
	if len(results) > 0 {
		fmt.Printf("mean alive fraction %.3f\n", total/float64(len(results)))
	}

	if *dump && len(results) > 0 {
		best := results[0]
		fmt.Printf("\nseed %d\n", best.seed)
		render(os.Stdout, best.final, cfg.Invert)
	}
}

// runSeed steps one independent sim until its schedule finishes or the step
// budget runs out. stableAt is the first generation identical to the one
// before it, or -1.
func runSeed(ctx context.Context, name string, cfg caves.Config, seed int64, steps int) (runResult, error) {
	sim := caves.NewWithConfig(name, cfg)
	sim.Reset(seed)

	res := runResult{seed: seed, stableAt: -1}
	prev := sim.Grid().Clone()
	for i := 0; i < steps && !sim.Finished(); i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		sim.Step()
		cur := sim.Grid()
		if res.stableAt < 0 && cur.Equal(prev) {
			res.stableAt = sim.Generation()
		}
		prev = cur.Clone()
	}

	g := sim.Grid()
	res.width, res.height = g.Width(), g.Height()
	res.gens = sim.Generation()
	res.liveRatio = float64(g.Population()) / float64(g.Width()*g.Height())
	res.final = g.Clone()
	return res, nil
}

func render(out *os.File, g *grid.Grid, invert bool) {
	if invert {
		g = g.Invert()
	}
	// Rows are indexed by x; transpose so the dump matches the window.
	lines := make([][]byte, g.Height())
	for y := range lines {
		lines[y] = make([]byte, g.Width())
	}
	for x, row := range g.Rows() {
		for y, c := range row {
			ch := byte(' ')
			if c == grid.Alive {
				ch = '#'
			}
			lines[y][x] = ch
		}
	}
	for _, line := range lines {
		fmt.Fprintln(out, string(line))
	}
}
