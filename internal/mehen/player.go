package mehen

import (
	"errors"
	"fmt"
)

var ErrUnknownPlayer = errors.New("unknown player")

// Player - identifies the owner of a set of pieces.
type Player uint8

const (
	Light Player = iota
	Dark
)

func (that Player) String() string {
	switch that {
	case Light:
		return "Light"
	case Dark:
		return "Dark"
	default:
		return fmt.Sprintf("Player(%d)", uint8(that))
	}
}

// Opponent - returns the other side.
func (that Player) Opponent() Player {
	if that == Light {
		return Dark
	}
	return Light
}

func (that Player) MarshalText() ([]byte, error) {
	switch that {
	case Light:
		return []byte("light"), nil
	case Dark:
		return []byte("dark"), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, uint8(that))
	}
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "light":
		*that = Light
	case "dark":
		*that = Dark
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, text)
	}
	return nil
}
