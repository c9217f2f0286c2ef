package simulation

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/signalnine/beggar/gosim/engine"
)

// GameResult holds the outcome of a single simulated deal
type GameResult struct {
	engine.Result
	SimID      int
	Seed       uint64
	DurationNs uint64
}

// AggregatedStats summarizes multiple game results
type AggregatedStats struct {
	TotalGames    uint32
	Player1Wins   uint32
	Player2Wins   uint32
	Infinite      uint32
	AvgCards      float32
	MedianCards   uint64
	MaxCards      uint64
	MaxTricks     uint64
	AvgDurationNs uint64

	// Longest finite game, nil if every game was infinite or none ran
	Best *engine.Result
	// Infinite deals found, in the order they were simulated
	InfiniteDeals []engine.Result
}

// newRNG builds the per-seed generator used for a single deal
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RunBatch simulates numGames random deals serially. Deal seeds are
// drawn from seed, so the batch is reproducible.
func RunBatch(numGames int, seed uint64) AggregatedStats {
	results := make([]GameResult, numGames)

	rng := newRNG(seed)
	for i := 0; i < numGames; i++ {
		results[i] = RunSingleGame(rng.Uint64())
		results[i].SimID = i
	}

	return aggregateResults(results)
}

// RunSingleGame deals from seed and plays the game to termination
func RunSingleGame(seed uint64) GameResult {
	start := time.Now()
	res := engine.NewRandomGame(newRNG(seed)).Simulate()
	return GameResult{
		Result:     res,
		Seed:       seed,
		DurationNs: uint64(time.Since(start).Nanoseconds()),
	}
}

// RunDeal plays an explicit deal to termination
func RunDeal(p1, p2 engine.Deck) GameResult {
	start := time.Now()
	res := engine.Simulate(p1, p2)
	return GameResult{
		Result:     res,
		DurationNs: uint64(time.Since(start).Nanoseconds()),
	}
}

// aggregateResults computes summary statistics
func aggregateResults(results []GameResult) AggregatedStats {
	stats := AggregatedStats{
		TotalGames: uint32(len(results)),
	}

	cardCounts := make([]uint64, 0, len(results))
	totalDuration := uint64(0)

	for i := range results {
		result := &results[i]
		totalDuration += result.DurationNs

		if result.Infinite {
			stats.Infinite++
			stats.InfiniteDeals = append(stats.InfiniteDeals, result.Result)
			continue
		}

		if winner, _ := result.Winner(); winner == engine.PlayerOne {
			stats.Player1Wins++
		} else {
			stats.Player2Wins++
		}

		cardCounts = append(cardCounts, result.Cards)
		if result.Tricks > stats.MaxTricks {
			stats.MaxTricks = result.Tricks
		}
		if result.Better(stats.MaxCards) {
			stats.MaxCards = result.Cards
			best := result.Result
			stats.Best = &best
		}
	}

	if len(cardCounts) > 0 {
		sum := uint64(0)
		for _, c := range cardCounts {
			sum += c
		}
		stats.AvgCards = float32(sum) / float32(len(cardCounts))
		stats.MedianCards = median(cardCounts)
	}

	if stats.TotalGames > 0 {
		stats.AvgDurationNs = totalDuration / uint64(stats.TotalGames)
	}

	return stats
}

func median(values []uint64) uint64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
