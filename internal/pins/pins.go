package pins

import (
	"errors"
	"math/rand/v2"
	"strconv"
)

var (
	ErrDuplicatePin = errors.New("duplicate pin")
	letterRunes     = []rune("abcdefghijklmnopqrstuvwxyz1234567890")
)

// GamePinLength is the length of the public identifier assigned to every game.
const GamePinLength = 6

// Pin is the public, human-friendly identifier a game is addressed by in the API.
type Pin string

func (p Pin) MarshalJSON() ([]byte, error) {
	jsonValue := strconv.Quote(string(p))
	return []byte(jsonValue), nil
}

func Generate(l int) Pin {
	b := make([]rune, l)
	for i := range b {
		b[i] = letterRunes[rand.IntN(len(letterRunes))]
	}
	return Pin(b)
}
