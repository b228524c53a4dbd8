package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/azuree0/Mehen/internal/config"
	"github.com/azuree0/Mehen/internal/mehen"
	"github.com/azuree0/Mehen/internal/repository"
	"github.com/azuree0/Mehen/internal/repository/storage"
	"github.com/azuree0/Mehen/internal/service"
	"github.com/azuree0/Mehen/internal/usecase"
	"github.com/azuree0/Mehen/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	recordRepo, closeStorage, err := openRecordRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStorage(); err != nil {
			log.Error("could not close record storage", "error", err)
		}
	}()

	log.Info("Record storage ready", "storage", conf.Record.Storage)

	recordService := service.NewRecordService(recordRepo)
	gameManager := usecase.NewGameManager(logger, recordService, usecase.Options{
		AutoPass:  !conf.DisableAutoPass,
		NewSource: diceSources(conf.DiceSeed),
	})

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	server := rest.New(logger, gameManager, conf.BoardSize)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func openRecordRepository(ctx context.Context, conf *config.Config) (repository.RecordRepository, func() error, error) {
	switch conf.Record.Storage {
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisRecordRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteRecordRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewMemoryRecordRepository(), func() error { return nil }, nil
	}
}

// diceSources - nil keeps the crypto seeded default. A fixed seed gives every
// game its own source, derived from the seed and the game's ordinal.
func diceSources(seed int64) func() mehen.Source {
	if seed == 0 {
		return nil
	}

	var games atomic.Int64
	return func() mehen.Source {
		return mehen.NewSource(seed + games.Add(1) - 1)
	}
}
