package engine

import (
	"fmt"
	"unicode"
)

// cardSymbols maps a card to its one-character text form
var cardSymbols = [...]byte{
	Number: '-',
	Jack:   'J',
	Queen:  'Q',
	King:   'K',
	Ace:    'A',
}

// charToCard is used for parsing; keys are lower case
var charToCard = map[rune]Card{
	'-': Number,
	'j': Jack,
	'q': Queen,
	'k': King,
	'a': Ace,
}

// IsFace reports whether the card sets a penalty when played
func (c Card) IsFace() bool {
	return c != Number && c <= Ace
}

// Penalty is the number of number cards the opponent owes after c is played.
func (c Card) Penalty() uint8 {
	if !c.IsFace() {
		return 0
	}
	return uint8(c)
}

// Valid reports whether c is one of the five known cards
func (c Card) Valid() bool {
	return c <= Ace
}

func (c Card) String() string {
	if !c.Valid() {
		return "?"
	}
	return string(cardSymbols[c])
}

// CardFromChar parses one character of a deck description (case-insensitive).
func CardFromChar(r rune) (Card, error) {
	if c, ok := charToCard[unicode.ToLower(r)]; ok {
		return c, nil
	}
	return 0, &DeckError{Err: ErrUnexpectedCard, Char: r}
}

// CardFromByte decodes the wire form of a card
func CardFromByte(b byte) (Card, error) {
	c := Card(b)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: byte %d", ErrUnexpectedCard, b)
	}
	return c, nil
}
