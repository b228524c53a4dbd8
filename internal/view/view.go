// Package view derives the plain data a renderer needs from a Mehen game.
// It never mutates the game.
package view

import (
	"fmt"
	"slices"

	"github.com/azuree0/Mehen/internal/layout"
	"github.com/azuree0/Mehen/internal/mehen"
)

const (
	StatusColorInfo  = "#667eea"
	StatusColorAlert = "#ff6347"

	MessageSelectPiece = "Select a piece to move"
	MessageNoMoves     = "No valid moves. Turn passes."

	noDice = "-"
)

type game interface {
	CurrentPlayer() mehen.Player
	DiceValue() int
	GameOver() bool
	Winner() (mehen.Player, bool)
	Pieces() mehen.Pieces
	Board() [mehen.BoardSquares]mehen.Square
	ValidMoves() []int
}

// SquareData - contents and highlight state of one drawn square.
type SquareData struct {
	SquareType  mehen.Square `json:"square_type"`
	Ring        string       `json:"ring"`
	IsValidMove bool         `json:"is_valid_move"`
	IsCenter    bool         `json:"is_center"`
}

// StartPiece - a current-player piece still waiting off the board.
type StartPiece struct {
	Index       int  `json:"index"`
	IsValidMove bool `json:"is_valid_move"`
}

// CenterPiece - a piece that reached the snake's head.
type CenterPiece struct {
	Player mehen.Player `json:"player"`
}

type StatusDisplay struct {
	Message string `json:"message"`
	Color   string `json:"color"`
}

type UIState struct {
	PlayerName         string `json:"player_name"`
	DiceDisplay        string `json:"dice_display"`
	RollButtonDisabled bool   `json:"roll_button_disabled"`
}

// Squares - data for the 36 drawn squares.
func Squares(g game) []SquareData {
	board := g.Board()
	squares := make([]SquareData, len(board))

	for i, square := range board {
		squares[i] = SquareData{
			SquareType: square,
			IsCenter:   i == mehen.BoardSquares-1,
		}
		if ring, err := layout.RingOf(i); err == nil {
			squares[i].Ring = ring.Name
		}
	}

	if g.GameOver() || g.DiceValue() == 0 {
		return squares
	}

	own := g.Pieces().Of(g.CurrentPlayer())
	for _, piece := range g.ValidMoves() {
		if slot, ok := mehen.SlotForPosition(own[piece]); ok {
			squares[slot].IsValidMove = true
		}
	}

	return squares
}

// StartPieces - the current player's pieces still at the start.
func StartPieces(g game) []StartPiece {
	if g.GameOver() {
		return []StartPiece{}
	}

	validMoves := g.ValidMoves()
	own := g.Pieces().Of(g.CurrentPlayer())

	pieces := make([]StartPiece, 0, len(own))
	for i, pos := range own {
		if pos != mehen.StartPosition {
			continue
		}

		pieces = append(pieces, StartPiece{
			Index:       i,
			IsValidMove: slices.Contains(validMoves, i),
		})
	}

	return pieces
}

// CenterPieces - every finished piece, Light first.
func CenterPieces(g game) []CenterPiece {
	pieces := g.Pieces()
	center := make([]CenterPiece, 0, 2*mehen.PiecesPerPlayer)

	for _, player := range []mehen.Player{mehen.Light, mehen.Dark} {
		for _, pos := range pieces.Of(player) {
			if pos == mehen.FinishPosition {
				center = append(center, CenterPiece{Player: player})
			}
		}
	}

	return center
}

// Status - the status line shown under the board.
func Status(g game) StatusDisplay {
	if winner, ok := g.Winner(); ok {
		return StatusDisplay{
			Message: fmt.Sprintf("Game Over! %s Player Wins!", winner),
			Color:   StatusColorAlert,
		}
	}

	switch {
	case g.DiceValue() == 0:
		return StatusDisplay{Color: StatusColorInfo}
	case len(g.ValidMoves()) == 0:
		return StatusDisplay{Message: MessageNoMoves, Color: StatusColorInfo}
	default:
		return StatusDisplay{Message: MessageSelectPiece, Color: StatusColorInfo}
	}
}

func UI(g game) UIState {
	dice := noDice
	if value := g.DiceValue(); value != 0 {
		dice = fmt.Sprint(value)
	}

	return UIState{
		PlayerName:         g.CurrentPlayer().String(),
		DiceDisplay:        dice,
		RollButtonDisabled: g.DiceValue() != 0 || g.GameOver(),
	}
}

// SquareClick - resolves a click on a drawn square to the current player's
// movable piece standing there.
func SquareClick(g game, square int) (int, bool) {
	if g.GameOver() || g.DiceValue() == 0 || square < 0 || square >= mehen.BoardSquares {
		return 0, false
	}

	own := g.Pieces().Of(g.CurrentPlayer())
	for _, piece := range g.ValidMoves() {
		if slot, ok := mehen.SlotForPosition(own[piece]); ok && slot == square {
			return piece, true
		}
	}

	return 0, false
}

// ShouldAutoPass - true when the pending roll cannot be used.
func ShouldAutoPass(g game) bool {
	return !g.GameOver() && g.DiceValue() != 0 && len(g.ValidMoves()) == 0
}

// Frame - everything a renderer needs for one redraw.
type Frame struct {
	Squares      []SquareData  `json:"squares"`
	StartPieces  []StartPiece  `json:"start_pieces"`
	CenterPieces []CenterPiece `json:"center_pieces"`
	Status       StatusDisplay `json:"status"`
	UI           UIState       `json:"ui"`
	AutoPass     bool          `json:"auto_pass"`
}

func NewFrame(g game) Frame {
	return Frame{
		Squares:      Squares(g),
		StartPieces:  StartPieces(g),
		CenterPieces: CenterPieces(g),
		Status:       Status(g),
		UI:           UI(g),
		AutoPass:     ShouldAutoPass(g),
	}
}
