package repository

import (
	"context"

	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
)

// RecordRepository - append-only history of played games.
type RecordRepository interface {
	Create(ctx context.Context, record *entity.Record) error
	AppendMove(ctx context.Context, move *entity.Move) error
	Finish(ctx context.Context, id string, winner mehen.Player, moveCount int) error

	GetByID(ctx context.Context, id string) (*entity.Record, error)
	ListMoves(ctx context.Context, id string) ([]*entity.Move, error)

	DeleteByID(ctx context.Context, id string) error
}
