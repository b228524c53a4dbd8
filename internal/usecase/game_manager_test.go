package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/azuree0/Mehen/internal/apperror"
	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
	"github.com/azuree0/Mehen/testing/suite"
)

var errStorageDown = errors.New("storage down")

// fixedSource always rolls the same face: 0 gives 1, 0.99 gives 6.
type fixedSource float64

func (that fixedSource) Float64() float64 {
	return float64(that)
}

type mockRecordService struct {
	mock.Mock
}

func (that *mockRecordService) StartGame(ctx context.Context) (*entity.Record, error) {
	args := that.Called(ctx)
	record, _ := args.Get(0).(*entity.Record)
	return record, args.Error(1)
}

func (that *mockRecordService) RecordMove(ctx context.Context, gameID string, number int, result mehen.MoveResult) error {
	return that.Called(ctx, gameID, number, result).Error(0)
}

func (that *mockRecordService) FinishGame(ctx context.Context, gameID string, winner mehen.Player, moveCount int) error {
	return that.Called(ctx, gameID, winner, moveCount).Error(0)
}

func (that *mockRecordService) GetGame(ctx context.Context, gameID string) (*entity.Record, error) {
	args := that.Called(ctx, gameID)
	record, _ := args.Get(0).(*entity.Record)
	return record, args.Error(1)
}

func (that *mockRecordService) DiscardGame(ctx context.Context, gameID string) error {
	return that.Called(ctx, gameID).Error(0)
}

func (that *mockRecordService) GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error) {
	args := that.Called(ctx, gameID)
	moves, _ := args.Get(0).([]*entity.Move)
	return moves, args.Error(1)
}

func newTestManager(records *mockRecordService, source mehen.Source) *GameManager {
	return NewGameManager(suite.NewLogger(), records, Options{
		AutoPass:  true,
		NewSource: func() mehen.Source { return source },
	})
}

func startedRecords(ids ...string) *mockRecordService {
	records := &mockRecordService{}
	for _, id := range ids {
		records.On("StartGame", mock.Anything).Return(&entity.Record{ID: id, Status: entity.StatusOngoing}, nil).Once()
	}
	return records
}

func TestGameManager_NewSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts a fresh game with a record", func(t *testing.T) {
		// Given: a record service
		records := startedRecords("rec-1")
		manager := newTestManager(records, fixedSource(0))

		// When: a session is created
		state, err := manager.NewSession(ctx)

		// Then: Light is to roll and a record is attached
		require.NoError(t, err)
		assert.NotEmpty(t, state.SessionID)
		assert.Equal(t, "rec-1", state.RecordID)
		assert.Equal(t, mehen.Light, state.Game.CurrentPlayer)
		assert.Zero(t, state.Game.DiceValue)
		assert.False(t, state.View.UI.RollButtonDisabled)
		records.AssertExpectations(t)
	})

	t.Run("Plays on without a record when storage fails", func(t *testing.T) {
		// Given: a record service that cannot start records
		records := &mockRecordService{}
		records.On("StartGame", mock.Anything).Return(nil, errStorageDown)
		manager := newTestManager(records, fixedSource(0))

		// When: a session is created and a piece is moved
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Move(ctx, state.SessionID, 0)

		// Then: the game works and nothing is recorded
		require.NoError(t, err)
		assert.Empty(t, state.RecordID)
		records.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGameManager_Roll(t *testing.T) {
	ctx := context.Background()

	t.Run("Rolls for the current player", func(t *testing.T) {
		// Given: a new session with dice fixed on 6
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0.99))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		// When: the dice are rolled
		rolled, err := manager.Roll(ctx, state.SessionID)

		// Then: the roll is pending and every piece can enter
		require.NoError(t, err)
		assert.Equal(t, 6, rolled.LastRoll)
		assert.Equal(t, 6, rolled.Game.DiceValue)
		assert.False(t, rolled.AutoPassed)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rolled.Game.ValidMoves)
	})

	t.Run("Rejects a second roll", func(t *testing.T) {
		// Given: a session with a pending roll
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		// When: the dice are rolled again
		_, err = manager.Roll(ctx, state.SessionID)

		// Then: the command is refused
		require.ErrorIs(t, err, apperror.ErrRollPending)
	})

	t.Run("Unknown session", func(t *testing.T) {
		manager := newTestManager(&mockRecordService{}, fixedSource(0))

		_, err := manager.Roll(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestGameManager_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves a piece and records it", func(t *testing.T) {
		// Given: a rolled 1
		records := startedRecords("rec-1")
		expected := mehen.MoveResult{
			Player:     mehen.Light,
			PieceIndex: 2,
			From:       0,
			To:         1,
			Dice:       1,
			Captured:   mehen.NoCapture,
		}
		records.On("RecordMove", mock.Anything, "rec-1", 1, expected).Return(nil).Once()

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		// When: Light moves piece 2
		moved, err := manager.Move(ctx, state.SessionID, 2)

		// Then: the piece advanced and Dark is to roll
		require.NoError(t, err)
		require.NotNil(t, moved.LastMove)
		assert.Equal(t, expected, *moved.LastMove)
		assert.Equal(t, 1, moved.Game.Pieces.Light[2])
		assert.Equal(t, mehen.Dark, moved.Game.CurrentPlayer)
		assert.Zero(t, moved.Game.DiceValue)
		records.AssertExpectations(t)
	})

	t.Run("Capture is recorded", func(t *testing.T) {
		// Given: Light on square 1 and Dark rolling 1
		records := startedRecords("rec-1")
		records.On("RecordMove", mock.Anything, "rec-1", mock.Anything, mock.Anything).Return(nil)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		for _, step := range []int{0, 0} {
			_, err = manager.Roll(ctx, state.SessionID)
			require.NoError(t, err)
			state, err = manager.Move(ctx, state.SessionID, step)
			require.NoError(t, err)
		}

		// Then: Dark's move sent Light's piece back
		require.NotNil(t, state.LastMove)
		assert.Equal(t, mehen.Dark, state.LastMove.Player)
		assert.Equal(t, 0, state.LastMove.Captured)
		assert.Equal(t, 0, state.Game.Pieces.Light[0])
		records.AssertCalled(t, "RecordMove", mock.Anything, "rec-1", 2, *state.LastMove)
	})

	t.Run("Rejects a move before rolling", func(t *testing.T) {
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.Move(ctx, state.SessionID, 0)

		require.ErrorIs(t, err, apperror.ErrNoRollPending)
	})

	t.Run("Rejects an invalid piece", func(t *testing.T) {
		// Given: a pending roll
		records := startedRecords("rec-1")
		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		// When: a piece index out of range is moved
		_, err = manager.Move(ctx, state.SessionID, 9)

		// Then: nothing changes
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		after, err := manager.State(ctx, state.SessionID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.Game.DiceValue)
		assert.Equal(t, mehen.Light, after.Game.CurrentPlayer)
		records.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Record failure does not fail the move", func(t *testing.T) {
		records := startedRecords("rec-1")
		records.On("RecordMove", mock.Anything, "rec-1", 1, mock.Anything).Return(errStorageDown)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		moved, err := manager.Move(ctx, state.SessionID, 0)

		require.NoError(t, err)
		assert.Equal(t, mehen.Dark, moved.Game.CurrentPlayer)
	})
}

func TestGameManager_MoveFromSquare(t *testing.T) {
	ctx := context.Background()

	t.Run("Moves the piece standing on the square", func(t *testing.T) {
		// Given: Light's piece 0 on position 1, Dark passed and Light to play a 1
		records := startedRecords("rec-1")
		records.On("RecordMove", mock.Anything, "rec-1", mock.Anything, mock.Anything).Return(nil)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Move(ctx, state.SessionID, 0)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Pass(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		// When: the player clicks board slot 0 (position 1)
		moved, err := manager.MoveFromSquare(ctx, state.SessionID, 0)

		// Then: Light's piece 0 moved from 1 to 2
		require.NoError(t, err)
		require.NotNil(t, moved.LastMove)
		assert.Equal(t, 0, moved.LastMove.PieceIndex)
		assert.Equal(t, 1, moved.LastMove.From)
		assert.Equal(t, 2, moved.LastMove.To)
	})

	t.Run("Rejects an empty square", func(t *testing.T) {
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		_, err = manager.MoveFromSquare(ctx, state.SessionID, 20)

		require.ErrorIs(t, err, apperror.ErrInvalidMove)
	})
}

func TestGameManager_Pass(t *testing.T) {
	ctx := context.Background()

	t.Run("Hands the turn over", func(t *testing.T) {
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)

		passed, err := manager.Pass(ctx, state.SessionID)

		require.NoError(t, err)
		assert.Equal(t, mehen.Dark, passed.Game.CurrentPlayer)
		assert.Zero(t, passed.Game.DiceValue)
	})

	t.Run("Rejects a pass without a roll", func(t *testing.T) {
		manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.Pass(ctx, state.SessionID)

		require.ErrorIs(t, err, apperror.ErrNoRollPending)
	})
}

func TestGameManager_Reset(t *testing.T) {
	ctx := context.Background()

	// Given: a session with one move played
	records := startedRecords("rec-1", "rec-2")
	records.On("RecordMove", mock.Anything, "rec-1", 1, mock.Anything).Return(nil)

	manager := newTestManager(records, fixedSource(0))
	state, err := manager.NewSession(ctx)
	require.NoError(t, err)
	_, err = manager.Roll(ctx, state.SessionID)
	require.NoError(t, err)
	_, err = manager.Move(ctx, state.SessionID, 0)
	require.NoError(t, err)

	// When: the session is reset
	reset, err := manager.Reset(ctx, state.SessionID)

	// Then: the same session starts over under a new record
	require.NoError(t, err)
	assert.Equal(t, state.SessionID, reset.SessionID)
	assert.Equal(t, "rec-2", reset.RecordID)
	assert.Equal(t, mehen.Light, reset.Game.CurrentPlayer)
	assert.Equal(t, [mehen.PiecesPerPlayer]int{}, reset.Game.Pieces.Dark)
	assert.Equal(t, [mehen.PiecesPerPlayer]int{}, reset.Game.Pieces.Light)
	records.AssertExpectations(t)
}

func TestGameManager_Moves(t *testing.T) {
	ctx := context.Background()

	t.Run("Lists the current record", func(t *testing.T) {
		records := startedRecords("rec-1")
		expected := []*entity.Move{{GameID: "rec-1", Number: 1}}
		records.On("GetMoves", mock.Anything, "rec-1").Return(expected, nil)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		moves, err := manager.Moves(ctx, state.SessionID)

		require.NoError(t, err)
		assert.Equal(t, expected, moves)
	})

	t.Run("Empty without a record", func(t *testing.T) {
		records := &mockRecordService{}
		records.On("StartGame", mock.Anything).Return(nil, errStorageDown)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		moves, err := manager.Moves(ctx, state.SessionID)

		require.NoError(t, err)
		assert.Empty(t, moves)
	})

	t.Run("Storage error", func(t *testing.T) {
		records := startedRecords("rec-1")
		records.On("GetMoves", mock.Anything, "rec-1").Return(nil, errStorageDown)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.Moves(ctx, state.SessionID)

		require.ErrorIs(t, err, errStorageDown)
	})
}

func TestGameManager_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("Reads the current record", func(t *testing.T) {
		records := startedRecords("rec-1")
		expected := &entity.Record{ID: "rec-1", Status: entity.StatusOngoing}
		records.On("GetGame", mock.Anything, "rec-1").Return(expected, nil)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		record, err := manager.Record(ctx, state.SessionID)

		require.NoError(t, err)
		assert.Equal(t, expected, record)
	})

	t.Run("Not found without a record", func(t *testing.T) {
		records := &mockRecordService{}
		records.On("StartGame", mock.Anything).Return(nil, errStorageDown)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.Record(ctx, state.SessionID)

		require.ErrorIs(t, err, apperror.ErrRecordNotFound)
		records.AssertNotCalled(t, "GetGame", mock.Anything, mock.Anything)
	})
}

func TestGameManager_DiscardRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the history and stops recording", func(t *testing.T) {
		// Given: a session with a record
		records := startedRecords("rec-1")
		records.On("DiscardGame", mock.Anything, "rec-1").Return(nil).Once()

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		// When: the record is discarded and a move is played
		discarded, err := manager.DiscardRecord(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)
		_, err = manager.Move(ctx, state.SessionID, 0)
		require.NoError(t, err)

		// Then: the session has no record and nothing more is written
		assert.Empty(t, discarded.RecordID)
		records.AssertExpectations(t)
		records.AssertNotCalled(t, "RecordMove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		_, err = manager.DiscardRecord(ctx, state.SessionID)
		require.ErrorIs(t, err, apperror.ErrRecordNotFound)
	})

	t.Run("Storage error keeps the record attached", func(t *testing.T) {
		records := startedRecords("rec-1")
		records.On("DiscardGame", mock.Anything, "rec-1").Return(errStorageDown)

		manager := newTestManager(records, fixedSource(0))
		state, err := manager.NewSession(ctx)
		require.NoError(t, err)

		_, err = manager.DiscardRecord(ctx, state.SessionID)
		require.ErrorIs(t, err, errStorageDown)

		after, err := manager.State(ctx, state.SessionID)
		require.NoError(t, err)
		assert.Equal(t, "rec-1", after.RecordID)
	})
}

func TestGameManager_Close(t *testing.T) {
	ctx := context.Background()

	manager := newTestManager(startedRecords("rec-1"), fixedSource(0))
	state, err := manager.NewSession(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.Close(ctx, state.SessionID))

	_, err = manager.State(ctx, state.SessionID)
	require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	require.ErrorIs(t, manager.Close(ctx, state.SessionID), apperror.ErrSessionNotFound)
}

func TestGameManager_PlayToTheEnd(t *testing.T) {
	ctx := context.Background()

	// Given: a seeded game and a record service accepting everything
	records := startedRecords("rec-1")
	records.On("RecordMove", mock.Anything, "rec-1", mock.Anything, mock.Anything).Return(nil)
	records.On("FinishGame", mock.Anything, "rec-1", mock.Anything, mock.Anything).Return(nil).Maybe()

	manager := newTestManager(records, mehen.NewSource(7))
	state, err := manager.NewSession(ctx)
	require.NoError(t, err)

	// When: the first valid piece is always played
	moves := 0
	for turn := 0; turn < 20_000 && !state.Game.GameOver; turn++ {
		state, err = manager.Roll(ctx, state.SessionID)
		require.NoError(t, err)
		if state.AutoPassed {
			continue
		}
		require.NotEmpty(t, state.Game.ValidMoves)

		state, err = manager.Move(ctx, state.SessionID, state.Game.ValidMoves[0])
		require.NoError(t, err)
		moves++
	}

	// Then: a finished game is closed in the record exactly once
	if !state.Game.GameOver {
		records.AssertNotCalled(t, "FinishGame", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		return
	}

	require.NotNil(t, state.Game.Winner)
	records.AssertCalled(t, "FinishGame", mock.Anything, "rec-1", *state.Game.Winner, moves)
	records.AssertNumberOfCalls(t, "FinishGame", 1)

	_, err = manager.Roll(ctx, state.SessionID)
	require.ErrorIs(t, err, apperror.ErrGameFinished)
}
