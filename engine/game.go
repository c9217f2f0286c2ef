package engine

import (
	"math/rand/v2"
	"slices"
)

// Game owns the mutable state of one simulation together with its
// statistics and the states it has already visited.
type Game struct {
	state   State
	result  Result
	visited *VisitedSet
	done    bool
}

// NewGame creates a game from explicit starting decks. Player one moves
// first. The decks are copied.
func NewGame(p1, p2 Deck) *Game {
	return &Game{
		state: State{
			Player: PlayerOne,
			P1:     p1.Clone(),
			P2:     p2.Clone(),
			Pile:   make(Deck, 0, FullDeckSize),
		},
		result: Result{
			P1Start: p1.Clone(),
			P2Start: p2.Clone(),
		},
		visited: NewVisitedSet(),
	}
}

// NewRandomGame deals a shuffled standard deck
func NewRandomGame(rng *rand.Rand) *Game {
	return NewGame(Deal(rng))
}

// State returns a deep copy of the current state
func (g *Game) State() State {
	return g.state.Clone()
}

// Result returns the statistics accumulated so far
func (g *Game) Result() Result {
	return g.result
}

// Done reports whether the game has terminated
func (g *Game) Done() bool {
	return g.done
}

// Step plays one card. It returns the final result and true once the
// game is over, either because the player to move has no cards or
// because the state after the move was already visited.
func (g *Game) Step() (Result, bool) {
	if g.done {
		return g.result, true
	}

	s := &g.state
	card, ok := s.Active().Pop()
	if !ok {
		g.result.Loser = s.Player
		return g.finish()
	}
	g.result.Cards++
	s.Pile.Push(card)

	switch {
	case card.IsFace():
		// Leading or countering with a face card: opponent now owes.
		s.Penalty = card.Penalty()
		s.Player = s.Player.Other()
	case s.Penalty == 0:
		s.Player = s.Player.Other()
	default:
		s.Penalty--
		if s.Penalty == 0 {
			g.result.Tricks++
			g.collectPile(s.Player.Other())
			s.Player = s.Player.Other()
		}
	}

	if !g.visited.Insert(s) {
		g.result.Infinite = true
		return g.finish()
	}
	return Result{}, false
}

// collectPile moves the pile beneath the winner's deck, keeping the
// order the cards were played in.
func (g *Game) collectPile(winner Player) {
	s := &g.state
	deck := s.DeckOf(winner)
	pile := s.Pile
	slices.Reverse(pile)
	pile = append(pile, *deck...)
	s.Pile = (*deck)[:0]
	*deck = pile
}

func (g *Game) finish() (Result, bool) {
	g.done = true
	g.visited.Release()
	return g.result, true
}

// Simulate runs the game to completion
func (g *Game) Simulate() Result {
	for {
		if res, over := g.Step(); over {
			return res
		}
	}
}

// Simulate plays the deal p1 vs p2 to completion
func Simulate(p1, p2 Deck) Result {
	return NewGame(p1, p2).Simulate()
}
