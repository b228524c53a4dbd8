package mehen

// BoardSquares is the number of drawn squares: 35 track squares plus the head.
const BoardSquares = 36

// Square - what occupies a drawn square.
type Square uint8

const (
	Empty Square = iota
	LightPiece
	DarkPiece
)

// Pieces - positions of both sides.
type Pieces struct {
	Light [PiecesPerPlayer]int `json:"light"`
	Dark  [PiecesPerPlayer]int `json:"dark"`
}

// Of - positions of the given side.
func (that Pieces) Of(player Player) [PiecesPerPlayer]int {
	if player == Dark {
		return that.Dark
	}
	return that.Light
}

// State - one consistent read of the whole game.
type State struct {
	CurrentPlayer Player               `json:"current_player"`
	DiceValue     int                  `json:"dice_value"`
	GameOver      bool                 `json:"game_over"`
	Winner        *Player              `json:"winner"`
	Pieces        Pieces               `json:"pieces"`
	Board         [BoardSquares]Square `json:"board"`
	ValidMoves    []int                `json:"valid_moves"`
}

// Pieces - a copy of both sides' positions.
func (that *Game) Pieces() Pieces {
	return Pieces{Light: that.light, Dark: that.dark}
}

// Board - occupancy of the 36 drawn squares. Pieces at the start are not drawn.
func (that *Game) Board() [BoardSquares]Square {
	var board [BoardSquares]Square

	for _, pos := range that.light {
		if slot, ok := SlotForPosition(pos); ok {
			board[slot] = LightPiece
		}
	}

	for _, pos := range that.dark {
		if slot, ok := SlotForPosition(pos); ok {
			board[slot] = DarkPiece
		}
	}

	return board
}

// Snapshot - reads every query in one batch.
func (that *Game) Snapshot() State {
	state := State{
		CurrentPlayer: that.currentPlayer,
		DiceValue:     that.diceValue,
		GameOver:      that.gameOver,
		Pieces:        that.Pieces(),
		Board:         that.Board(),
		ValidMoves:    that.ValidMoves(),
	}

	if winner, ok := that.Winner(); ok {
		state.Winner = &winner
	}

	return state
}

// SlotForPosition - maps a track position onto a drawn square.
// Positions 1..35 use slot position-1, the head uses the last slot.
func SlotForPosition(position int) (int, bool) {
	switch {
	case position == FinishPosition:
		return BoardSquares - 1, true
	case position > StartPosition && position < FinishPosition:
		return position - 1, true
	default:
		return 0, false
	}
}
