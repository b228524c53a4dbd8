package entity

import (
	"time"

	"github.com/azuree0/Mehen/internal/mehen"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
)

// Record - the history entry of one played game.
type Record struct {
	ID         string        `json:"id"`
	Status     string        `json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Winner     *mehen.Player `json:"winner,omitempty"`
	MoveCount  int           `json:"move_count"`
}

func NewRecord(id string, startedAt time.Time) *Record {
	return &Record{
		ID:        id,
		Status:    StatusOngoing,
		StartedAt: startedAt.UTC(),
	}
}

// Finish - marks the record as won by winner after moveCount moves.
func (that *Record) Finish(winner mehen.Player, moveCount int, finishedAt time.Time) {
	at := finishedAt.UTC()

	that.Status = StatusFinished
	that.Winner = &winner
	that.MoveCount = moveCount
	that.FinishedAt = &at
}
