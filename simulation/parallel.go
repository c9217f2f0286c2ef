package simulation

import (
	"cmp"
	"runtime"
	"slices"
	"sync"
)

// GameJob represents a single simulation job
type GameJob struct {
	SimID int
	Seed  uint64
}

// RunBatchParallelN executes a batch of random deals using a specified
// number of workers. Deal seeds are drawn up front from seed, so the
// aggregate matches RunBatch with the same arguments.
func RunBatchParallelN(numGames int, seed uint64, numWorkers int) AggregatedStats {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	jobs := make(chan GameJob, numGames)
	results := make(chan GameResult, numGames)

	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, jobs, results)
	}

	rng := newRNG(seed)
	for i := 0; i < numGames; i++ {
		jobs <- GameJob{
			SimID: i,
			Seed:  rng.Uint64(),
		}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	return aggregateParallelResults(results, numGames)
}

// RunBatchParallel executes a batch using one worker per CPU
func RunBatchParallel(numGames int, seed uint64) AggregatedStats {
	return RunBatchParallelN(numGames, seed, 0)
}

// worker processes simulation jobs from the jobs channel
func worker(wg *sync.WaitGroup, jobs <-chan GameJob, results chan<- GameResult) {
	defer wg.Done()

	for job := range jobs {
		result := RunSingleGame(job.Seed)
		result.SimID = job.SimID
		results <- result
	}
}

// aggregateParallelResults collects all results and computes aggregate
// statistics. Results are put back in job order so that ties on the best
// deal resolve the same way as in RunBatch.
func aggregateParallelResults(results <-chan GameResult, numGames int) AggregatedStats {
	allResults := make([]GameResult, 0, numGames)

	for result := range results {
		allResults = append(allResults, result)
	}

	slices.SortFunc(allResults, func(a, b GameResult) int {
		return cmp.Compare(a.SimID, b.SimID)
	})
	return aggregateResults(allResults)
}
