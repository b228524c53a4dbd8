package mehen

// checkWinCondition ends the game once every piece of a side reached the head.
func (that *Game) checkWinCondition() {
	switch {
	case allFinished(that.light):
		that.gameOver = true
		that.winner = Light
	case allFinished(that.dark):
		that.gameOver = true
		that.winner = Dark
	}
}

func allFinished(pieces [PiecesPerPlayer]int) bool {
	for _, pos := range pieces {
		if pos != FinishPosition {
			return false
		}
	}
	return true
}
