// Package main provides the beggar CLI for checking, dealing and searching
// games of Beggar-my-neighbour.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/signalnine/beggar/gosim/config"
	"github.com/signalnine/beggar/gosim/logging"
	"github.com/signalnine/beggar/gosim/report"
	"github.com/signalnine/beggar/gosim/simulation"
)

// Version information (set by build flags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// CLI flags
var (
	configPath  string
	envPath     string
	mode        string
	p1Text      string
	p2Text      string
	games       int
	workers     int
	seed        uint64
	maxDeals    int
	logLevel    string
	logFormat   string
	verbose     bool
	showVersion bool
)

func init() {
	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&envPath, "env", ".env", "Environment file loaded before the config")
	flag.StringVar(&mode, "mode", "", "check, random, search or batch (empty = ask)")
	flag.StringVar(&p1Text, "p1", "", "Player 1's deck for check mode, top card first")
	flag.StringVar(&p2Text, "p2", "", "Player 2's deck for check mode, top card first")
	flag.IntVar(&games, "games", 10000, "Number of deals in batch mode")
	flag.IntVar(&workers, "workers", 0, "Number of worker goroutines (0 = auto-detect CPU count)")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = use current time)")
	flag.IntVar(&maxDeals, "max-deals", 0, "Deals per worker in search mode (0 = until interrupted)")
	flag.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&logFormat, "log-format", "", "pterm, text or json")
	flag.BoolVar(&verbose, "verbose", false, "Enable debug logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("beggar %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if err := config.LoadEnvFile(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg, setFlags())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interactive := mode == ""
	if interactive {
		mode, err = selectMode()
		if err != nil {
			logger.Error("mode selection failed", "err", err)
			os.Exit(1)
		}
	}

	printer := report.NewPrinter(os.Stdout)

	switch mode {
	case modeCheck:
		err = runCheck(printer)
	case modeRandom:
		res := simulation.RunSingleGame(resolveSeed(cfg.Search.Seed))
		logger.Debug("random deal", "seed", res.Seed, "duration_ns", res.DurationNs)
		printer.Result(res.Result)
	case modeSearch:
		if interactive && !setFlags()["workers"] && cfg.Search.Workers == 0 {
			cfg.Search.Workers, err = promptWorkers(pterm.DefaultInteractiveTextInput.Show)
			if err != nil {
				break
			}
		}
		err = runSearch(ctx, cfg.Search, printer, logger)
	case modeBatch:
		err = runBatch(cfg.Search, printer, logger)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Println("\nInterrupted!")
		os.Exit(130)
	case err != nil:
		logger.Error("beggar failed", "mode", mode, "err", err)
		os.Exit(1)
	}
}

func runCheck(printer *report.Printer) error {
	prompt := pterm.DefaultInteractiveTextInput.Show
	if p1Text == "" || p2Text == "" {
		pterm.Info.Println("Deck format is the cards in the order they will be played. " +
			"A/K/Q/J represents Ace, King, Queen, and Jack respectively. - represents a number card")
	}

	p1, err := deckOrPrompt(p1Text, "What is Player 1's deck?", prompt)
	if err != nil {
		return err
	}
	p2, err := deckOrPrompt(p2Text, "What is Player 2's deck?", prompt)
	if err != nil {
		return err
	}

	res := simulation.RunDeal(p1, p2)
	slog.Debug("deal checked", "duration_ns", res.DurationNs)
	printer.Result(res.Result)
	return nil
}

func runSearch(ctx context.Context, sc config.SearchConfig, printer *report.Printer, logger *slog.Logger) error {
	ex := simulation.NewExplorer(simulation.ExploreConfig{
		Workers:  sc.Workers,
		Seed:     sc.Seed,
		MaxDeals: sc.MaxDeals,
		Buffer:   sc.Buffer,
	}, printer, logger)

	printBanner(ex.Config())
	summary, err := ex.Run(ctx)
	fmt.Println()
	if perr := printer.Summary(summary); perr != nil {
		logger.Warn("summary render failed", "err", perr)
	}
	return err
}

func runBatch(sc config.SearchConfig, printer *report.Printer, logger *slog.Logger) error {
	if games <= 0 {
		return fmt.Errorf("games must be positive, got %d", games)
	}
	n := sc.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	s := resolveSeed(sc.Seed)

	start := time.Now()
	stats := simulation.RunBatchParallelN(games, s, n)
	logger.Info("batch finished", "games", games, "workers", n, "seed", s, "elapsed", time.Since(start))
	return printer.Stats(stats)
}

func resolveSeed(s uint64) uint64 {
	if s == 0 {
		return uint64(time.Now().UnixNano())
	}
	return s
}

func printBanner(cfg simulation.ExploreConfig) {
	fmt.Println()
	fmt.Println("╔════════════════════════════════════════════════════════════╗")
	fmt.Println("║           Beggar-my-neighbour Search                       ║")
	fmt.Println("╚════════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Workers:        %d\n", cfg.Workers)
	fmt.Printf("  Seed:           %d\n", cfg.Seed)
	if cfg.MaxDeals > 0 {
		fmt.Printf("  Deals/worker:   %d\n", cfg.MaxDeals)
	} else {
		fmt.Printf("  Deals/worker:   until interrupted (Ctrl+C)\n")
	}
	fmt.Println()
}
