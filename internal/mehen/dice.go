package mehen

import (
	crand "crypto/rand"
	"encoding/binary"
	"math"
	"math/rand"
	"time"
)

// Source - supplies uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource - returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed)) //nolint: gosec // dice do not need crypto strength
}

func defaultSource() Source {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return NewSource(time.Now().UnixNano())
	}

	return NewSource(int64(binary.LittleEndian.Uint64(b[:])))
}

// RollDice - rolls for the current player and stores the value.
// A roll is rejected while a previous roll is still pending or after the game
// has ended: the state is left untouched and the pending value is returned with false.
func (that *Game) RollDice() (int, bool) {
	if that.gameOver || that.diceValue != 0 {
		return that.diceValue, false
	}

	that.diceValue = dieFace(that.source.Float64())

	return that.diceValue, true
}

// dieFace maps r in [0, 1) onto 1..DiceSides.
func dieFace(r float64) int {
	face := int(math.Floor(r*DiceSides)) + 1

	switch {
	case face < 1:
		return 1
	case face > DiceSides:
		return DiceSides
	default:
		return face
	}
}
