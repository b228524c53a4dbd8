package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/azuree0/Mehen/internal/apperror"
	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
)

type redisRecord struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRecordRepository(client *redis.Client) RecordRepository {
	return &redisRecord{
		client: client,
		now:    time.Now,
	}
}

func recordKey(id string) string {
	return "record:" + id
}

func movesKey(id string) string {
	return "record:" + id + ":moves"
}

func (that *redisRecord) Create(ctx context.Context, record *entity.Record) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}

	created, err := that.client.SetNX(ctx, recordKey(record.ID), recordJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set record: %w", err)
	}

	if !created {
		return apperror.ErrRecordExists
	}

	return nil
}

func (that *redisRecord) AppendMove(ctx context.Context, move *entity.Move) error {
	if err := that.ensureExists(ctx, move.GameID); err != nil {
		return err
	}

	moveJSON, err := json.Marshal(move)
	if err != nil {
		return fmt.Errorf("could not marshal move: %w", err)
	}

	if err = that.client.RPush(ctx, movesKey(move.GameID), moveJSON).Err(); err != nil {
		return fmt.Errorf("failed to push move: %w", err)
	}

	return nil
}

func (that *redisRecord) Finish(ctx context.Context, id string, winner mehen.Player, moveCount int) error {
	record, err := that.GetByID(ctx, id)
	if err != nil {
		return err
	}

	record.Finish(winner, moveCount, that.now())

	return that.Create(ctx, record)
}

func (that *redisRecord) GetByID(ctx context.Context, id string) (*entity.Record, error) {
	response, err := that.client.Get(ctx, recordKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record by id: %w", err)
	}

	var record entity.Record
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

func (that *redisRecord) ListMoves(ctx context.Context, id string) ([]*entity.Move, error) {
	if err := that.ensureExists(ctx, id); err != nil {
		return nil, err
	}

	items, err := that.client.LRange(ctx, movesKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read moves: %w", err)
	}

	moves := make([]*entity.Move, 0, len(items))
	for _, item := range items {
		var move entity.Move
		if err = json.Unmarshal([]byte(item), &move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %w", err)
		}

		moves = append(moves, &move)
	}

	return moves, nil
}

func (that *redisRecord) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, recordKey(id), movesKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete record by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrRecordNotFound
	}

	return nil
}

func (that *redisRecord) ensureExists(ctx context.Context, id string) error {
	exists, err := that.client.Exists(ctx, recordKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to check record: %w", err)
	}

	if exists == 0 {
		return apperror.ErrRecordNotFound
	}

	return nil
}
