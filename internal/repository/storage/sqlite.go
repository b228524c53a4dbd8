package storage

import (
	"context"
	"database/sql"
	"fmt"

	// register the pure-Go "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		winner TEXT,
		move_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS moves (
		game_id TEXT NOT NULL,
		move_number INTEGER NOT NULL,
		player TEXT NOT NULL,
		piece_index INTEGER NOT NULL,
		position_from INTEGER NOT NULL,
		position_to INTEGER NOT NULL,
		dice_value INTEGER NOT NULL,
		captured INTEGER NOT NULL,
		PRIMARY KEY (game_id, move_number)
	)`,
}

type SQLiteStorage struct {
	Connection *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	// sqlite allows a single writer
	conn.SetMaxOpenConns(1)

	if err = conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &SQLiteStorage{Connection: conn}, nil
}

// Init - creates the record tables when missing.
func (that *SQLiteStorage) Init(ctx context.Context) error {
	for _, query := range schema {
		if _, err := that.Connection.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("can't create table: %w", err)
		}
	}

	return nil
}

func (that *SQLiteStorage) Close() error {
	if err := that.Connection.Close(); err != nil {
		return fmt.Errorf("can't close database: %w", err)
	}

	return nil
}
