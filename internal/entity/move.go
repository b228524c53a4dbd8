package entity

import "github.com/azuree0/Mehen/internal/mehen"

// Move - one applied move of a recorded game.
type Move struct {
	GameID     string       `json:"game_id"`
	Number     int          `json:"move_number"`
	Player     mehen.Player `json:"player"`
	PieceIndex int          `json:"piece_index"`
	From       int          `json:"position_from"`
	To         int          `json:"position_to"`
	Dice       int          `json:"dice_value"`
	Captured   int          `json:"captured"`
}

func NewMove(gameID string, number int, result mehen.MoveResult) *Move {
	return &Move{
		GameID:     gameID,
		Number:     number,
		Player:     result.Player,
		PieceIndex: result.PieceIndex,
		From:       result.From,
		To:         result.To,
		Dice:       result.Dice,
		Captured:   result.Captured,
	}
}
