// Package layout places the Mehen board squares on three concentric rings.
package layout

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSquare = errors.New("invalid square index")

// Squares is the number of drawn squares, outer ring first.
const Squares = 36

// Ring - one concentric group of squares.
type Ring struct {
	Name          string
	Squares       int
	RadiusFactor  float64 // share of half the board size
	Step          float64 // degrees between neighbours
	Offset        float64 // degrees added to the previous ring's last angle
	DisplayRadius int
}

// Rings are laid out outward-in. The outer ring starts at 0°, each inner ring
// starts at the previous ring's last angle plus its Offset.
var Rings = [3]Ring{
	{Name: "outer", Squares: 18, RadiusFactor: 0.85, Step: 360.0 / 18, Offset: 0, DisplayRadius: 85},
	{Name: "middle", Squares: 12, RadiusFactor: 0.55, Step: 360.0 / 12, Offset: 15, DisplayRadius: 55},
	{Name: "inner", Squares: 6, RadiusFactor: 0.25, Step: 360.0 / 6, Offset: 30, DisplayRadius: 25},
}

// Position - where a square is drawn.
type Position struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	Radius int     `json:"radius"`
}

// Spiral - coordinates of all squares for a board of the given diameter.
// Index i holds track position i+1; the last index is the snake's head.
func Spiral(boardSize float64) []Position {
	half := boardSize / 2
	positions := make([]Position, 0, Squares)

	var lastAngle float64
	for ringIndex, ring := range Rings {
		start := 0.0
		if ringIndex > 0 {
			start = normalize(lastAngle + ring.Offset)
		}

		radius := ring.RadiusFactor * half
		for i := 0; i < ring.Squares; i++ {
			angle := normalize(start + float64(i)*ring.Step)
			theta := angle * math.Pi / 180

			positions = append(positions, Position{
				Index:  len(positions),
				X:      half + radius*math.Cos(theta),
				Y:      half + radius*math.Sin(theta),
				Angle:  angle,
				Radius: ring.DisplayRadius,
			})

			lastAngle = angle
		}
	}

	return positions
}

// RingOf - the ring a square index belongs to.
func RingOf(index int) (Ring, error) {
	if index < 0 || index >= Squares {
		return Ring{}, fmt.Errorf("%w: %d", ErrInvalidSquare, index)
	}

	for _, ring := range Rings {
		if index < ring.Squares {
			return ring, nil
		}
		index -= ring.Squares
	}

	return Ring{}, fmt.Errorf("%w: %d", ErrInvalidSquare, index)
}

func normalize(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}
