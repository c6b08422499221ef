// Command pcbroute runs the probabilistic auto-router over a PCB routing
// problem loaded from disk, optionally visualizing the A* search live
// through a Fyne window or a tcell terminal screen.
package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"pcbroute/internal/config"
	"pcbroute/internal/observer"
	"pcbroute/internal/pcbmodel"
	"pcbroute/internal/problemio"
	"pcbroute/internal/solver"
	"pcbroute/internal/version"
	"pcbroute/ui/fyneobserver"
	"pcbroute/ui/tcellobserver"
)

const appTitle = "pcbroute"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		problemPath = flag.String("problem", "", "path to a problem JSON file (required)")
		configPath  = flag.String("config", "", "path to a config JSON file overriding the defaults")
		outPath     = flag.String("out", "solution.json", "path to write the solution JSON file")
		uiKind      = flag.String("ui", "none", "visualization: none, fyne, tcell")
		seed        = flag.Int64("seed", time.Now().UnixNano(), "RNG seed for reproducible routing runs")
		showVersion = flag.Bool("version", false, "print version information and exit")
	)
	flag.Parse()

	if *showVersion {
		log.Printf("%s %s (built %s, commit %s)", appTitle, version.Version, version.BuildTime, version.GitCommit)
		return
	}

	if *problemPath == "" {
		log.Fatal("pcbroute: -problem is required")
	}

	problem, err := problemio.Load(*problemPath)
	if err != nil {
		log.Fatalf("pcbroute: loading problem: %v", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("pcbroute: loading config: %v", err)
		}
	}
	if *uiKind != "none" {
		cfg.DisplayAStar = true
	}

	rng := rand.New(rand.NewSource(*seed))
	log.Printf("pcbroute: routing %d net(s), seed=%d", len(problem.Nets), *seed)

	switch *uiKind {
	case "none":
		runHeadless(problem, cfg, rng, observer.Null{}, *outPath)
	case "fyne":
		runWithFyne(problem, cfg, rng, *outPath)
	case "tcell":
		runWithTcell(problem, cfg, rng, *outPath)
	default:
		log.Fatalf("pcbroute: unknown -ui value %q", *uiKind)
	}
}

func runHeadless(problem *pcbmodel.PcbProblem, cfg config.Config, rng *rand.Rand, obs observer.Observer, outPath string) {
	solution, err := solver.New(problem, cfg, rng, obs).Solve()
	if err != nil {
		log.Fatalf("pcbroute: solve failed: %v", err)
	}
	if err := problemio.SaveSolution(outPath, solution); err != nil {
		log.Fatalf("pcbroute: writing solution: %v", err)
	}
	log.Printf("pcbroute: solved %d connection(s), wrote %s", len(solution.DeterminedTraces), outPath)
}

func runWithFyne(problem *pcbmodel.PcbProblem, cfg config.Config, rng *rand.Rand, outPath string) {
	cfg.BlockThread = true
	fyneApp := app.New()
	win := fyneApp.NewWindow(appTitle)

	obs := fyneobserver.New()
	win.SetContent(obs.Container())
	win.Resize(fyne.NewSize(900, 700))

	go func() {
		solution, err := solver.New(problem, cfg, rng, obs).Solve()
		if err != nil {
			log.Printf("pcbroute: solve failed: %v", err)
			return
		}
		if err := problemio.SaveSolution(outPath, solution); err != nil {
			log.Printf("pcbroute: writing solution: %v", err)
			return
		}
		log.Printf("pcbroute: solved %d connection(s), wrote %s", len(solution.DeterminedTraces), outPath)
	}()

	win.ShowAndRun()
}

func runWithTcell(problem *pcbmodel.PcbProblem, cfg config.Config, rng *rand.Rand, outPath string) {
	obs, err := tcellobserver.New()
	if err != nil {
		log.Fatalf("pcbroute: initializing terminal: %v", err)
	}
	defer obs.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		solution, err := solver.New(problem, cfg, rng, obs).Solve()
		if err != nil {
			log.Printf("pcbroute: solve failed: %v", err)
			return
		}
		if err := problemio.SaveSolution(outPath, solution); err != nil {
			log.Printf("pcbroute: writing solution: %v", err)
			return
		}
		log.Printf("pcbroute: solved %d connection(s), wrote %s", len(solution.DeterminedTraces), outPath)
	}()

	select {
	case <-done:
	case <-obs.Quit:
	}
}
