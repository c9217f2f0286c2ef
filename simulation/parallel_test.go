package simulation

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestRunBatchParallel_ProducesSameResultsAsSerial verifies correctness.
// Deal seeds are drawn up front, so everything but timing must match.
func TestRunBatchParallel_ProducesSameResultsAsSerial(t *testing.T) {
	numGames := 300
	seed := uint64(42)

	serialStats := RunBatch(numGames, seed)
	parallelStats := RunBatchParallelN(numGames, seed, 4)

	assert.Equal(t, serialStats.TotalGames, parallelStats.TotalGames)
	assert.Equal(t, serialStats.Player1Wins, parallelStats.Player1Wins)
	assert.Equal(t, serialStats.Player2Wins, parallelStats.Player2Wins)
	assert.Equal(t, serialStats.Infinite, parallelStats.Infinite)
	assert.Equal(t, serialStats.MaxCards, parallelStats.MaxCards)
	assert.Equal(t, serialStats.MedianCards, parallelStats.MedianCards)
	assert.Equal(t, serialStats.AvgCards, parallelStats.AvgCards)
	assert.Equal(t, serialStats.Best, parallelStats.Best)

	t.Logf("Serial:   P1=%d P2=%d inf=%d max=%d avg=%.1f",
		serialStats.Player1Wins, serialStats.Player2Wins, serialStats.Infinite,
		serialStats.MaxCards, serialStats.AvgCards)
}

func TestRunBatchParallel_DefaultWorkers(t *testing.T) {
	stats := RunBatchParallel(20, 1)
	assert.Equal(t, uint32(20), stats.TotalGames)
}

// TestRunBatchParallel_IsFasterThanSerial verifies performance improvement
func TestRunBatchParallel_IsFasterThanSerial(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping performance test in short mode")
	}
	if runtime.NumCPU() < 4 {
		t.Skip("Skipping performance test on fewer than 4 CPUs")
	}

	numGames := 4000
	seed := uint64(12345)

	serialStart := time.Now()
	RunBatch(numGames, seed)
	serialDuration := time.Since(serialStart)

	parallelStart := time.Now()
	RunBatchParallel(numGames, seed)
	parallelDuration := time.Since(parallelStart)

	speedup := float64(serialDuration) / float64(parallelDuration)

	t.Logf("Serial time: %v", serialDuration)
	t.Logf("Parallel time: %v", parallelDuration)
	t.Logf("Speedup: %.2fx", speedup)

	if speedup < 1.3 {
		t.Logf("Warning: speedup %.2fx lower than expected", speedup)
	}
}

func BenchmarkParallel_Batch100(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RunBatchParallel(100, 42)
	}
}
