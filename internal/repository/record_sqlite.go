package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/azuree0/Mehen/internal/apperror"
	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
)

type sqliteRecord struct {
	conn *sql.DB
	now  func() time.Time
}

// NewSQLiteRecordRepository - expects the schema created by storage.SQLiteStorage.Init.
func NewSQLiteRecordRepository(conn *sql.DB) RecordRepository {
	return &sqliteRecord{
		conn: conn,
		now:  time.Now,
	}
}

func (that *sqliteRecord) Create(ctx context.Context, record *entity.Record) error {
	query := `INSERT INTO records (id, status, started_at, move_count) VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`

	res, err := that.conn.ExecContext(ctx, query, record.ID, record.Status, record.StartedAt.UnixMilli(), record.MoveCount)
	if err != nil {
		return fmt.Errorf("can't save record: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't read affected rows: %w", err)
	}

	if affected == 0 {
		return apperror.ErrRecordExists
	}

	return nil
}

func (that *sqliteRecord) AppendMove(ctx context.Context, move *entity.Move) error {
	if _, err := that.GetByID(ctx, move.GameID); err != nil {
		return err
	}

	player, err := move.Player.MarshalText()
	if err != nil {
		return fmt.Errorf("can't encode player: %w", err)
	}

	query := `INSERT INTO moves (game_id, move_number, player, piece_index, position_from, position_to, dice_value, captured)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = that.conn.ExecContext(ctx, query,
		move.GameID, move.Number, string(player), move.PieceIndex, move.From, move.To, move.Dice, move.Captured)
	if err != nil {
		return fmt.Errorf("can't save move: %w", err)
	}

	return nil
}

func (that *sqliteRecord) Finish(ctx context.Context, id string, winner mehen.Player, moveCount int) error {
	name, err := winner.MarshalText()
	if err != nil {
		return fmt.Errorf("can't encode winner: %w", err)
	}

	query := `UPDATE records SET status = ?, winner = ?, move_count = ?, finished_at = ? WHERE id = ?`

	res, err := that.conn.ExecContext(ctx, query, entity.StatusFinished, string(name), moveCount, that.now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("can't finish record: %w", err)
	}

	return affectedOne(res)
}

func (that *sqliteRecord) GetByID(ctx context.Context, id string) (*entity.Record, error) {
	query := `SELECT id, status, started_at, finished_at, winner, move_count FROM records WHERE id = ?`

	var (
		record     entity.Record
		startedAt  int64
		finishedAt sql.NullInt64
		winner     sql.NullString
	)

	err := that.conn.QueryRowContext(ctx, query, id).
		Scan(&record.ID, &record.Status, &startedAt, &finishedAt, &winner, &record.MoveCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find record: %w", err)
	}

	record.StartedAt = time.UnixMilli(startedAt).UTC()

	if finishedAt.Valid {
		at := time.UnixMilli(finishedAt.Int64).UTC()
		record.FinishedAt = &at
	}

	if winner.Valid {
		var player mehen.Player
		if err = player.UnmarshalText([]byte(winner.String)); err != nil {
			return nil, fmt.Errorf("can't decode winner: %w", err)
		}
		record.Winner = &player
	}

	return &record, nil
}

func (that *sqliteRecord) ListMoves(ctx context.Context, id string) ([]*entity.Move, error) {
	if _, err := that.GetByID(ctx, id); err != nil {
		return nil, err
	}

	query := `SELECT game_id, move_number, player, piece_index, position_from, position_to, dice_value, captured
		FROM moves WHERE game_id = ? ORDER BY move_number`

	rows, err := that.conn.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}
	defer rows.Close()

	moves := make([]*entity.Move, 0)
	for rows.Next() {
		var (
			move   entity.Move
			player string
		)

		if err = rows.Scan(&move.GameID, &move.Number, &player, &move.PieceIndex,
			&move.From, &move.To, &move.Dice, &move.Captured); err != nil {
			return nil, fmt.Errorf("can't scan move: %w", err)
		}

		if err = move.Player.UnmarshalText([]byte(player)); err != nil {
			return nil, fmt.Errorf("can't decode player: %w", err)
		}

		moves = append(moves, &move)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't list moves: %w", err)
	}

	return moves, nil
}

func (that *sqliteRecord) DeleteByID(ctx context.Context, id string) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM moves WHERE game_id = ?`, id); err != nil {
		return fmt.Errorf("can't delete moves: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("can't delete record: %w", err)
	}

	if err = affectedOne(res); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit: %w", err)
	}

	return nil
}

func affectedOne(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't read affected rows: %w", err)
	}

	if affected == 0 {
		return apperror.ErrRecordNotFound
	}

	return nil
}
