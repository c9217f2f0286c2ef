package engine

import (
	"sync"
)

// Card is one of the five card kinds that matter to the game (1 byte).
// Face cards are encoded by their penalty weight.
type Card uint8

const (
	Number Card = iota
	Jack
	Queen
	King
	Ace
)

// FullDeckSize is the number of cards in a standard deal.
const FullDeckSize = 52

// HandSize is the number of cards each player starts with.
const HandSize = FullDeckSize / 2

// FaceCards is the number of face cards in a standard deal.
const FaceCards = 16

// Player identifies whose turn it is
type Player uint8

const (
	PlayerOne Player = iota
	PlayerTwo
)

// Other returns the opponent
func (p Player) Other() Player {
	return p ^ 1
}

// String returns "1" or "2"
func (p Player) String() string {
	if p == PlayerTwo {
		return "2"
	}
	return "1"
}

// State is the part of a game that takes part in cycle detection.
// Statistics live in Result.
type State struct {
	Player  Player
	Penalty uint8 // number cards still owed; 0 = no pending penalty
	P1      Deck
	P2      Deck
	Pile    Deck
}

// Active returns the deck of the player to move
func (s *State) Active() *Deck {
	if s.Player == PlayerTwo {
		return &s.P2
	}
	return &s.P1
}

// DeckOf returns the deck belonging to p
func (s *State) DeckOf(p Player) *Deck {
	if p == PlayerTwo {
		return &s.P2
	}
	return &s.P1
}

// TotalCards counts every card in play. It never changes during a game.
func (s *State) TotalCards() int {
	return len(s.P1) + len(s.P2) + len(s.Pile)
}

// Clone creates a deep copy
func (s *State) Clone() State {
	return State{
		Player:  s.Player,
		Penalty: s.Penalty,
		P1:      s.P1.Clone(),
		P2:      s.P2.Clone(),
		Pile:    s.Pile.Clone(),
	}
}

// Equal reports structural equality over every cycle-relevant field.
func (s *State) Equal(o *State) bool {
	return s.Player == o.Player &&
		s.Penalty == o.Penalty &&
		s.P1.Equal(o.P1) &&
		s.P2.Equal(o.P2) &&
		s.Pile.Equal(o.Pile)
}

// AppendKey appends a compact, unambiguous encoding of the state to buf.
// Pile length is implied by the two deck lengths.
func (s *State) AppendKey(buf []byte) []byte {
	buf = append(buf, byte(s.Player), s.Penalty, byte(len(s.P1)))
	buf = appendCards(buf, s.P1)
	buf = append(buf, byte(len(s.P2)))
	buf = appendCards(buf, s.P2)
	return appendCards(buf, s.Pile)
}

// statePool recycles visited-set maps between simulations
var statePool = sync.Pool{
	New: func() interface{} {
		return make(map[string]struct{}, 1024)
	},
}

func getSeen() map[string]struct{} {
	seen := statePool.Get().(map[string]struct{})
	clear(seen)
	return seen
}

func putSeen(seen map[string]struct{}) {
	statePool.Put(seen)
}
