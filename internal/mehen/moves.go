package mehen

// NoCapture marks a move that did not send an opponent piece home.
const NoCapture = -1

// MoveResult - describes an applied move.
type MoveResult struct {
	Player     Player `json:"player"`
	PieceIndex int    `json:"piece_index"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	Dice       int    `json:"dice"`
	Captured   int    `json:"captured"`
	Won        bool   `json:"won"`
}

// CanMove - reports whether the current player may move the given piece with the pending roll.
func (that *Game) CanMove(piece int) bool {
	if that.gameOver || that.diceValue == 0 {
		return false
	}

	own := that.pieces(that.currentPlayer)
	if piece < 0 || piece >= len(own) {
		return false
	}

	from := own[piece]
	if from >= FinishPosition {
		return false
	}

	to := from + that.diceValue
	if to > FinishPosition {
		return false
	}

	// the head holds any number of finished pieces
	if to < FinishPosition {
		for _, pos := range own {
			if pos == to {
				return false
			}
		}
	}

	return true
}

// ValidMoves - indices of the current player's movable pieces, ascending.
func (that *Game) ValidMoves() []int {
	moves := make([]int, 0, PiecesPerPlayer)
	for i := 0; i < PiecesPerPlayer; i++ {
		if that.CanMove(i) {
			moves = append(moves, i)
		}
	}

	return moves
}

// MakeMove - moves the piece by the pending roll. Returns false and leaves the
// state untouched when the move is not allowed.
func (that *Game) MakeMove(piece int) bool {
	_, ok := that.Play(piece)
	return ok
}

// Play - same as MakeMove, but also reports what happened.
func (that *Game) Play(piece int) (MoveResult, bool) {
	if !that.CanMove(piece) {
		return MoveResult{}, false
	}

	mover := that.currentPlayer
	own := that.pieces(mover)

	result := MoveResult{
		Player:     mover,
		PieceIndex: piece,
		From:       own[piece],
		To:         own[piece] + that.diceValue,
		Dice:       that.diceValue,
		Captured:   NoCapture,
	}

	own[piece] = result.To

	if result.To < FinishPosition {
		result.Captured = that.capture(mover.Opponent(), result.To)
	}

	that.diceValue = 0
	that.checkWinCondition()

	if that.gameOver {
		result.Won = that.winner == mover
		return result, true
	}

	that.switchPlayer()

	return result, true
}

// capture sends the first opponent piece found on the square back to the start.
func (that *Game) capture(opponent Player, square int) int {
	pieces := that.pieces(opponent)
	for i, pos := range pieces {
		if pos == square {
			pieces[i] = StartPosition
			return i
		}
	}

	return NoCapture
}

// PassTurn - gives up the pending roll. Without a pending roll nothing happens
// and false is returned.
func (that *Game) PassTurn() bool {
	if that.gameOver || that.diceValue == 0 {
		return false
	}

	that.diceValue = 0
	that.switchPlayer()

	return true
}
