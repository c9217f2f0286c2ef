package simulation

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/signalnine/beggar/gosim/engine"
)

// Reporter receives the results the aggregator decides to surface.
type Reporter interface {
	// NewBest is called for a finite deal that beats every deal reported so far.
	NewBest(res engine.Result)
	// InfiniteFound is called for every infinite deal, duplicates included.
	InfiniteFound(res engine.Result)
}

type nopReporter struct{}

func (nopReporter) NewBest(engine.Result)       {}
func (nopReporter) InfiniteFound(engine.Result) {}

// ExploreConfig controls an exploration run
type ExploreConfig struct {
	Workers  int    // 0 = runtime.NumCPU()
	Seed     uint64 // 0 = derive from the clock
	MaxDeals int    // per worker; 0 = run until the context is cancelled
	// Buffer is the result channel capacity; 0 = 64. Workers block on a
	// full channel, so a slow Reporter can stall them.
	Buffer int
}

// Summary describes a finished (or interrupted) exploration run
type Summary struct {
	RunID    uuid.UUID
	Seed     uint64
	Workers  int
	Deals    uint64
	Infinite uint64
	Best     *engine.Result
	Elapsed  time.Duration
}

// Explorer searches random deals in parallel for infinite games and for
// the longest finite game. Workers share nothing; each sends only the
// results that beat its own best (or are infinite) to a single
// aggregator, which reports global improvements.
type Explorer struct {
	cfg      ExploreConfig
	reporter Reporter
	logger   *slog.Logger
}

// NewExplorer creates an explorer. A nil reporter discards results and a
// nil logger uses slog.Default().
func NewExplorer(cfg ExploreConfig, reporter Reporter, logger *slog.Logger) *Explorer {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Explorer{cfg: cfg, reporter: reporter, logger: logger}
}

// Config returns the effective configuration after defaults
func (e *Explorer) Config() ExploreConfig {
	return e.cfg
}

// Run starts the workers and the aggregator and blocks until every worker
// has stopped. With MaxDeals == 0 that only happens when ctx is cancelled,
// in which case the returned error is ctx's error and the summary covers
// the work done so far.
func (e *Explorer) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{
		RunID:   uuid.New(),
		Seed:    e.cfg.Seed,
		Workers: e.cfg.Workers,
	}
	log := e.logger.With("run", summary.RunID.String())
	log.Info("exploration started",
		"workers", e.cfg.Workers, "seed", e.cfg.Seed, "max_deals", e.cfg.MaxDeals)

	results := make(chan engine.Result, e.cfg.Buffer)
	deals := make([]uint64, e.cfg.Workers)

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.aggregate(results, &summary, log)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < e.cfg.Workers; w++ {
		g.Go(func() error {
			return e.explore(gctx, w, results, &deals[w])
		})
	}
	err := g.Wait()
	close(results)
	<-done

	for _, n := range deals {
		summary.Deals += n
	}
	summary.Elapsed = time.Since(start)

	attrs := []any{"deals", summary.Deals, "infinite", summary.Infinite, "elapsed", summary.Elapsed}
	if summary.Best != nil {
		attrs = append(attrs, "best_cards", summary.Best.Cards)
	}
	if err != nil {
		log.Warn("exploration stopped", append(attrs, "err", err)...)
	} else {
		log.Info("exploration finished", attrs...)
	}
	return summary, err
}

// explore is one worker: deal, simulate, forward improvements
func (e *Explorer) explore(ctx context.Context, id int, results chan<- engine.Result, deals *uint64) error {
	rng := newWorkerRNG(e.cfg.Seed, id)
	best := uint64(0)

	for e.cfg.MaxDeals == 0 || *deals < uint64(e.cfg.MaxDeals) {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := engine.NewRandomGame(rng).Simulate()
		*deals++

		if !res.Infinite && !res.Better(best) {
			continue
		}
		if !res.Infinite {
			best = res.Cards
		}

		select {
		case results <- res:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// newWorkerRNG gives every worker its own stream for the run seed
func newWorkerRNG(seed uint64, id int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(id)))
}

// aggregate consumes worker results until the channel is closed
func (e *Explorer) aggregate(results <-chan engine.Result, summary *Summary, log *slog.Logger) {
	best := uint64(0)
	for res := range results {
		switch {
		case res.Infinite:
			summary.Infinite++
			log.Info("infinite deal found", "deal", res.String())
			e.reporter.InfiniteFound(res)
		case res.Better(best):
			best = res.Cards
			found := res
			summary.Best = &found
			log.Debug("new best", "cards", res.Cards, "tricks", res.Tricks)
			e.reporter.NewBest(res)
		}
	}
}
