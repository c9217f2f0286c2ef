package engine

import (
	"math/rand/v2"
	"slices"
	"strings"
)

// Deck is an ordered pile of cards. The last element is the top,
// i.e. the next card to be played.
type Deck []Card

// StandardDeck returns the 52-card multiset: four of each face card and
// 36 number cards.
func StandardDeck() Deck {
	deck := make(Deck, 0, FullDeckSize)
	for i := 0; i < 4; i++ {
		deck = append(deck, Ace, King, Queen, Jack)
	}
	for len(deck) < FullDeckSize {
		deck = append(deck, Number)
	}
	return deck
}

// Deal shuffles a standard deck and splits it into two 26-card halves.
func Deal(rng *rand.Rand) (p1, p2 Deck) {
	deck := StandardDeck()
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck[:HandSize:HandSize], deck[HandSize:]
}

// ParseCards parses a deck description of any length. The leftmost
// character is the top of the deck (played first).
func ParseCards(s string) (Deck, error) {
	runes := []rune(strings.TrimSpace(s))
	deck := make(Deck, 0, len(runes))
	for i := len(runes) - 1; i >= 0; i-- {
		c, err := CardFromChar(runes[i])
		if err != nil {
			return nil, err
		}
		deck = append(deck, c)
	}
	return deck, nil
}

// ParseDeck parses a player's starting deck, which must hold exactly
// HandSize cards.
func ParseDeck(s string) (Deck, error) {
	deck, err := ParseCards(s)
	if err != nil {
		return nil, err
	}
	if len(deck) != HandSize {
		return nil, &DeckError{Err: ErrCardCount, Want: HandSize, Got: len(deck)}
	}
	return deck, nil
}

// DeckFromBytes decodes the wire form (bottom card first)
func DeckFromBytes(b []byte) (Deck, error) {
	deck := make(Deck, len(b))
	for i, v := range b {
		c, err := CardFromByte(v)
		if err != nil {
			return nil, err
		}
		deck[i] = c
	}
	return deck, nil
}

// Bytes encodes the deck bottom card first
func (d Deck) Bytes() []byte {
	return appendCards(make([]byte, 0, len(d)), d)
}

func appendCards(buf []byte, d Deck) []byte {
	for _, c := range d {
		buf = append(buf, byte(c))
	}
	return buf
}

// String renders the deck top card first, the same form ParseCards reads.
func (d Deck) String() string {
	var sb strings.Builder
	sb.Grow(len(d))
	for i := len(d) - 1; i >= 0; i-- {
		sb.WriteString(d[i].String())
	}
	return sb.String()
}

// Push places c on top
func (d *Deck) Push(c Card) {
	*d = append(*d, c)
}

// Pop removes and returns the top card
func (d *Deck) Pop() (Card, bool) {
	n := len(*d)
	if n == 0 {
		return 0, false
	}
	c := (*d)[n-1]
	*d = (*d)[:n-1]
	return c, true
}

// Len returns the number of cards
func (d Deck) Len() int {
	return len(d)
}

// Clone creates a copy with full deal capacity so later pushes never
// touch the original backing array.
func (d Deck) Clone() Deck {
	out := make(Deck, len(d), max(len(d), FullDeckSize))
	copy(out, d)
	return out
}

// Equal reports whether both decks hold the same cards in the same order
func (d Deck) Equal(o Deck) bool {
	return slices.Equal(d, o)
}

// Counts returns how many number cards and face cards the deck holds
func (d Deck) Counts() (numbers, faces int) {
	for _, c := range d {
		if c.IsFace() {
			faces++
		} else {
			numbers++
		}
	}
	return numbers, faces
}
