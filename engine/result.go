package engine

import (
	"fmt"
	"strings"
)

// Result is the outcome of a finished game. The starting decks are
// captured before the first card is played.
type Result struct {
	P1Start  Deck
	P2Start  Deck
	Tricks   uint64
	Cards    uint64
	Infinite bool
	// Loser is the player whose deck ran out; meaningless when Infinite.
	Loser Player
}

// Winner returns the player left holding cards, or false for an
// infinite game.
func (r Result) Winner() (Player, bool) {
	if r.Infinite {
		return 0, false
	}
	return r.Loser.Other(), true
}

// Clone deep-copies the starting decks so the result can cross goroutines.
func (r Result) Clone() Result {
	r.P1Start = r.P1Start.Clone()
	r.P2Start = r.P2Start.Clone()
	return r
}

// Better reports whether r is a finite game with strictly more cards
// played than best.
func (r Result) Better(best uint64) bool {
	return !r.Infinite && r.Cards > best
}

// String renders "{tricks} tricks, {cards} cards: 1. {p1} 2. {p2}",
// with ∞ counts for an infinite game.
func (r Result) String() string {
	var sb strings.Builder
	if r.Infinite {
		sb.WriteString("∞ tricks, ∞ cards: ")
	} else {
		fmt.Fprintf(&sb, "%d tricks, %d cards: ", r.Tricks, r.Cards)
	}
	sb.WriteString("1. ")
	sb.WriteString(r.P1Start.String())
	sb.WriteString(" 2. ")
	sb.WriteString(r.P2Start.String())
	return sb.String()
}
