package repository

import (
	"context"
	"sync"
	"time"

	"github.com/azuree0/Mehen/internal/apperror"
	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
)

type memoryRecord struct {
	mu      sync.RWMutex
	records map[string]entity.Record
	moves   map[string][]entity.Move
	now     func() time.Time
}

// NewMemoryRecordRepository - keeps records for the lifetime of the process.
func NewMemoryRecordRepository() RecordRepository {
	return &memoryRecord{
		records: make(map[string]entity.Record),
		moves:   make(map[string][]entity.Move),
		now:     time.Now,
	}
}

func (that *memoryRecord) Create(_ context.Context, record *entity.Record) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.records[record.ID]; ok {
		return apperror.ErrRecordExists
	}

	that.records[record.ID] = *record

	return nil
}

func (that *memoryRecord) AppendMove(_ context.Context, move *entity.Move) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.records[move.GameID]; !ok {
		return apperror.ErrRecordNotFound
	}

	that.moves[move.GameID] = append(that.moves[move.GameID], *move)

	return nil
}

func (that *memoryRecord) Finish(_ context.Context, id string, winner mehen.Player, moveCount int) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.records[id]
	if !ok {
		return apperror.ErrRecordNotFound
	}

	record.Finish(winner, moveCount, that.now())
	that.records[id] = record

	return nil
}

func (that *memoryRecord) GetByID(_ context.Context, id string) (*entity.Record, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	record, ok := that.records[id]
	if !ok {
		return nil, apperror.ErrRecordNotFound
	}

	return &record, nil
}

func (that *memoryRecord) ListMoves(_ context.Context, id string) ([]*entity.Move, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if _, ok := that.records[id]; !ok {
		return nil, apperror.ErrRecordNotFound
	}

	stored := that.moves[id]
	moves := make([]*entity.Move, len(stored))
	for i := range stored {
		move := stored[i]
		moves[i] = &move
	}

	return moves, nil
}

func (that *memoryRecord) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.records[id]; !ok {
		return apperror.ErrRecordNotFound
	}

	delete(that.records, id)
	delete(that.moves, id)

	return nil
}
