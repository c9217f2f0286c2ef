package engine

import (
	"errors"
	"fmt"
)

// Deck parsing errors
var (
	ErrUnexpectedCard = errors.New("unexpected card")
	ErrCardCount      = errors.New("wrong card count")
)

// DeckError describes why a deck description was rejected.
// It unwraps to ErrUnexpectedCard or ErrCardCount.
type DeckError struct {
	Err  error
	Char rune // offending character, for ErrUnexpectedCard
	Want int  // for ErrCardCount
	Got  int
}

func (e *DeckError) Error() string {
	if errors.Is(e.Err, ErrCardCount) {
		return fmt.Sprintf("Expected %d cards. Got %d.", e.Want, e.Got)
	}
	return fmt.Sprintf("Unexpected character: \"%c\"", e.Char)
}

func (e *DeckError) Unwrap() error {
	return e.Err
}
