package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
)

type RecordService interface {
	StartGame(ctx context.Context) (*entity.Record, error)
	RecordMove(ctx context.Context, gameID string, number int, result mehen.MoveResult) error
	FinishGame(ctx context.Context, gameID string, winner mehen.Player, moveCount int) error

	GetGame(ctx context.Context, gameID string) (*entity.Record, error)
	GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error)

	DiscardGame(ctx context.Context, gameID string) error
}

type recordRepo interface {
	Create(ctx context.Context, record *entity.Record) error
	AppendMove(ctx context.Context, move *entity.Move) error
	Finish(ctx context.Context, id string, winner mehen.Player, moveCount int) error

	GetByID(ctx context.Context, id string) (*entity.Record, error)
	ListMoves(ctx context.Context, id string) ([]*entity.Move, error)

	DeleteByID(ctx context.Context, id string) error
}

type recordService struct {
	recordRepo recordRepo
	now        func() time.Time
	newID      func() string
}

func NewRecordService(recordRepo recordRepo) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

func (that *recordService) StartGame(ctx context.Context) (*entity.Record, error) {
	record := entity.NewRecord(that.newID(), that.now())

	if err := that.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	return record, nil
}

func (that *recordService) RecordMove(ctx context.Context, gameID string, number int, result mehen.MoveResult) error {
	if err := that.recordRepo.AppendMove(ctx, entity.NewMove(gameID, number, result)); err != nil {
		return fmt.Errorf("failed to record move %d: %w", number, err)
	}

	return nil
}

func (that *recordService) FinishGame(ctx context.Context, gameID string, winner mehen.Player, moveCount int) error {
	if err := that.recordRepo.Finish(ctx, gameID, winner, moveCount); err != nil {
		return fmt.Errorf("failed to finish record: %w", err)
	}

	return nil
}

func (that *recordService) GetGame(ctx context.Context, gameID string) (*entity.Record, error) {
	record, err := that.recordRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve record from storage: %w", err)
	}

	return record, nil
}

func (that *recordService) GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error) {
	moves, err := that.recordRepo.ListMoves(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve moves from storage: %w", err)
	}

	return moves, nil
}

// DiscardGame - removes the record and all of its moves.
func (that *recordService) DiscardGame(ctx context.Context, gameID string) error {
	if err := that.recordRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}
