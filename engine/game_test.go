package engine

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCards(t testing.TB, s string) Deck {
	t.Helper()
	d, err := ParseCards(s)
	require.NoError(t, err)
	return d
}

func TestSimulate_AllNumberCards(t *testing.T) {
	p1 := mustCards(t, strings.Repeat("-", HandSize))
	p2 := mustCards(t, strings.Repeat("-", HandSize))

	res := Simulate(p1, p2)

	assert.False(t, res.Infinite)
	assert.Equal(t, uint64(0), res.Tricks)
	assert.Equal(t, uint64(52), res.Cards)
	assert.Equal(t, PlayerOne, res.Loser)
}

func TestStep_NumberLeadPassesControl(t *testing.T) {
	g := NewGame(mustCards(t, "--"), mustCards(t, "--"))

	_, over := g.Step()
	require.False(t, over)

	s := g.State()
	assert.Equal(t, PlayerTwo, s.Player)
	assert.Equal(t, uint8(0), s.Penalty)
	assert.Equal(t, Deck{Number}, s.Pile)
}

func TestStep_FaceCardSetsPenalty(t *testing.T) {
	tests := []struct {
		lead    string
		penalty uint8
	}{
		{"J", 1},
		{"Q", 2},
		{"K", 3},
		{"A", 4},
	}
	for _, tt := range tests {
		t.Run(tt.lead, func(t *testing.T) {
			g := NewGame(mustCards(t, tt.lead+"-"), mustCards(t, "----"))
			_, over := g.Step()
			require.False(t, over)

			s := g.State()
			assert.Equal(t, PlayerTwo, s.Player)
			assert.Equal(t, tt.penalty, s.Penalty)
		})
	}
}

func TestStep_PayingKeepsControl(t *testing.T) {
	g := NewGame(mustCards(t, "K-"), mustCards(t, "---"))
	g.Step() // K
	g.Step() // P2 pays one

	s := g.State()
	assert.Equal(t, PlayerTwo, s.Player)
	assert.Equal(t, uint8(2), s.Penalty)
}

func TestStep_FaceCardCountersPenalty(t *testing.T) {
	// P1 leads K, P2 pays one then counters with Q; P1 has nothing left.
	g := NewGame(mustCards(t, "K"), mustCards(t, "-Q"))

	res := g.Simulate()

	assert.False(t, res.Infinite)
	assert.Equal(t, uint64(3), res.Cards)
	assert.Equal(t, uint64(0), res.Tricks)
	assert.Equal(t, PlayerOne, res.Loser)
	winner, ok := res.Winner()
	assert.True(t, ok)
	assert.Equal(t, PlayerTwo, winner)
}

func TestStep_TrickGoesToFacePlayer(t *testing.T) {
	g := NewGame(mustCards(t, "J-"), mustCards(t, "-"))
	g.Step() // J
	_, over := g.Step()
	require.False(t, over)

	s := g.State()
	// P2 paid its only card, so P1 takes the pile and leads.
	assert.Equal(t, PlayerOne, s.Player)
	assert.Equal(t, uint8(0), s.Penalty)
	assert.Empty(t, s.Pile)
	assert.Empty(t, s.P2)
	// remaining card stays on top, pile goes underneath in play order
	assert.Equal(t, "-J-", s.P1.String())
	assert.Equal(t, uint64(1), g.Result().Tricks)
}

func TestSimulate_SingleTrick(t *testing.T) {
	res := Simulate(mustCards(t, "J"), mustCards(t, "-"))

	assert.False(t, res.Infinite)
	assert.Equal(t, uint64(1), res.Tricks)
	assert.Equal(t, uint64(3), res.Cards)
	assert.Equal(t, PlayerTwo, res.Loser)
}

func TestSimulate_DetectsCycle(t *testing.T) {
	res := Simulate(mustCards(t, "J--"), mustCards(t, "-J-"))

	assert.True(t, res.Infinite)
	assert.Equal(t, uint64(8), res.Cards)
	assert.Equal(t, uint64(3), res.Tricks)
	_, ok := res.Winner()
	assert.False(t, ok)
	assert.Equal(t, "∞ tricks, ∞ cards: 1. J-- 2. -J-", res.String())
}

func TestSimulate_KnownInfiniteDeal(t *testing.T) {
	p1, err := ParseDeck("---K---Q-KQAJ-----AAJ--J--")
	require.NoError(t, err)
	p2, err := ParseDeck("----------Q----KQ-J-----KA")
	require.NoError(t, err)

	res := Simulate(p1, p2)
	assert.True(t, res.Infinite)
	assert.Equal(t, uint64(474), res.Cards)
	assert.Equal(t, uint64(66), res.Tricks)

	// with the hands swapped the game ends
	swapped := Simulate(p2, p1)
	assert.False(t, swapped.Infinite)
	assert.Equal(t, uint64(157), swapped.Cards)
	assert.Equal(t, uint64(21), swapped.Tricks)
	assert.Equal(t, PlayerOne, swapped.Loser)
}

func TestSimulate_CycleStateWasSeenBefore(t *testing.T) {
	g := NewGame(mustCards(t, "J--"), mustCards(t, "-J-"))

	var history []State
	for {
		res, over := g.Step()
		if over {
			require.True(t, res.Infinite)
			break
		}
		history = append(history, g.State())
	}

	final := g.State()
	found := false
	for i := range history {
		if history[i].Equal(&final) {
			found = true
			break
		}
	}
	assert.True(t, found, "terminating state %+v not in history", final)
}

func TestStep_AfterFinishIsStable(t *testing.T) {
	g := NewGame(mustCards(t, "J"), mustCards(t, "-"))
	first := g.Simulate()
	require.True(t, g.Done())

	again, over := g.Step()
	assert.True(t, over)
	assert.Equal(t, first, again)
}

func TestSimulate_DoesNotMutateInputs(t *testing.T) {
	p1 := mustCards(t, "J-")
	p2 := mustCards(t, "-J")
	Simulate(p1, p2)
	assert.Equal(t, "J-", p1.String())
	assert.Equal(t, "-J", p2.String())
}

func TestSimulate_ConservesCards(t *testing.T) {
	rng := rand.New(rand.NewPCG(2024, 1))
	for deal := 0; deal < 25; deal++ {
		g := NewRandomGame(rng)
		steps := uint64(0)
		for {
			before := g.State()
			res, over := g.Step()
			after := g.State()
			require.Equal(t, FullDeckSize, after.TotalCards())
			if over {
				if !res.Infinite {
					// the finishing step draws nothing
					assert.Equal(t, before, after)
					assert.Equal(t, steps, res.Cards)
				}
				break
			}
			steps++
		}
	}
}

func TestSimulate_RandomDealsTerminate(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 3))
	for i := 0; i < 200; i++ {
		res := NewRandomGame(rng).Simulate()
		assert.Len(t, res.P1Start, HandSize)
		assert.Len(t, res.P2Start, HandSize)
		if !res.Infinite {
			assert.GreaterOrEqual(t, res.Cards, uint64(HandSize))
		}
	}
}

func TestResultString(t *testing.T) {
	res := Result{
		P1Start: mustCards(t, "AK--"),
		P2Start: mustCards(t, "-QJ-"),
		Tricks:  7,
		Cards:   120,
	}
	assert.Equal(t, "7 tricks, 120 cards: 1. AK-- 2. -QJ-", res.String())
}

func TestResultBetter(t *testing.T) {
	assert.True(t, Result{Cards: 10}.Better(9))
	assert.False(t, Result{Cards: 10}.Better(10))
	assert.False(t, Result{Cards: 10, Infinite: true}.Better(0))
}

func TestVisitedSet(t *testing.T) {
	v := NewVisitedSet()
	defer v.Release()

	s := State{P1: Deck{Jack}, P2: Deck{Number}}
	assert.True(t, v.Insert(&s))
	assert.False(t, v.Insert(&s))
	assert.True(t, v.Contains(&s))

	// same cards, different split between the decks
	moved := State{P1: Deck{Jack, Number}}
	assert.True(t, v.Insert(&moved))

	// same decks, different penalty
	owing := State{Penalty: 1, P1: Deck{Jack}, P2: Deck{Number}}
	assert.True(t, v.Insert(&owing))

	// same decks, other player to move
	other := State{Player: PlayerTwo, P1: Deck{Jack}, P2: Deck{Number}}
	assert.True(t, v.Insert(&other))

	assert.Equal(t, 4, v.Len())
}

func TestVisitedSet_PooledMapStartsEmpty(t *testing.T) {
	v := NewVisitedSet()
	s := State{P1: Deck{Ace}}
	v.Insert(&s)
	v.Release()

	w := NewVisitedSet()
	defer w.Release()
	assert.Equal(t, 0, w.Len())
	assert.False(t, w.Contains(&s))
}

func TestStateClone(t *testing.T) {
	s := State{P1: Deck{Jack}, P2: Deck{Queen}, Pile: Deck{King}}
	c := s.Clone()
	c.P1[0] = Ace
	c.Pile.Push(Number)

	assert.Equal(t, Jack, s.P1[0])
	assert.Len(t, s.Pile, 1)
	assert.False(t, s.Equal(&c))
}

func BenchmarkSimulateRandom(b *testing.B) {
	rng := rand.New(rand.NewPCG(42, 42))
	for i := 0; i < b.N; i++ {
		NewRandomGame(rng).Simulate()
	}
}
