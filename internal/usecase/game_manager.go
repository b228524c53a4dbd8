package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/azuree0/Mehen/internal/apperror"
	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/mehen"
	"github.com/azuree0/Mehen/internal/view"
)

type recordService interface {
	StartGame(ctx context.Context) (*entity.Record, error)
	RecordMove(ctx context.Context, gameID string, number int, result mehen.MoveResult) error
	FinishGame(ctx context.Context, gameID string, winner mehen.Player, moveCount int) error
	GetGame(ctx context.Context, gameID string) (*entity.Record, error)
	GetMoves(ctx context.Context, gameID string) ([]*entity.Move, error)
	DiscardGame(ctx context.Context, gameID string) error
}

type Options struct {
	// AutoPass passes the turn right after a roll that leaves no valid move.
	AutoPass bool
	// NewSource builds the dice source of every new game. Nil means crypto seeded.
	NewSource func() mehen.Source
}

// session is one game plus the lock every engine call happens under.
type session struct {
	mu       sync.Mutex
	id       string
	game     *mehen.Game
	recordID string
	moves    int
}

type GameManager struct {
	logger  *slog.Logger
	records recordService
	options Options

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, records recordService, options Options) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		records:  records,
		options:  options,
		sessions: make(map[string]*session),
	}
}

// NewSession - starts a fresh game.
func (that *GameManager) NewSession(ctx context.Context) (*SessionState, error) {
	var opts []mehen.Option
	if that.options.NewSource != nil {
		opts = append(opts, mehen.WithSource(that.options.NewSource()))
	}

	sess := &session{
		id:   uuid.NewString(),
		game: mehen.New(opts...),
	}
	sess.recordID = that.startRecord(ctx)

	that.mu.Lock()
	that.sessions[sess.id] = sess
	that.mu.Unlock()

	that.logger.Info("session created", "session", sess.id, "record", sess.recordID)

	return sess.state(), nil
}

func (that *GameManager) State(_ context.Context, sessionID string) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return sess.state(), nil
}

func (that *GameManager) Roll(_ context.Context, sessionID string) (*SessionState, error) {
	log := that.logger.With("method", "Roll", "session", sessionID)

	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.game.GameOver() {
		return nil, apperror.ErrGameFinished
	}

	value, ok := sess.game.RollDice()
	if !ok {
		return nil, apperror.ErrRollPending
	}

	log.Debug("dice rolled", "player", sess.game.CurrentPlayer(), "value", value)

	autoPassed := false
	if that.options.AutoPass && view.ShouldAutoPass(sess.game) {
		autoPassed = sess.game.PassTurn()
		log.Debug("no valid moves, turn passed")
	}

	state := sess.state()
	state.LastRoll = value
	state.AutoPassed = autoPassed

	return state, nil
}

// Move - moves the current player's piece by the pending roll.
func (that *GameManager) Move(ctx context.Context, sessionID string, piece int) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return that.move(ctx, sess, piece)
}

// MoveFromSquare - moves the current player's piece standing on a drawn square.
func (that *GameManager) MoveFromSquare(ctx context.Context, sessionID string, square int) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = checkMovable(sess.game); err != nil {
		return nil, err
	}

	piece, ok := view.SquareClick(sess.game, square)
	if !ok {
		return nil, fmt.Errorf("%w: no movable piece on square %d", apperror.ErrInvalidMove, square)
	}

	return that.move(ctx, sess, piece)
}

func (that *GameManager) Pass(_ context.Context, sessionID string) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err = checkMovable(sess.game); err != nil {
		return nil, err
	}

	sess.game.PassTurn()

	return sess.state(), nil
}

// Reset - starts over in the same session with a new record.
func (that *GameManager) Reset(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.game.Reset()
	sess.moves = 0
	sess.recordID = that.startRecord(ctx)

	that.logger.Info("session reset", "session", sess.id, "record", sess.recordID)

	return sess.state(), nil
}

// Moves - the recorded moves of the session's current game.
func (that *GameManager) Moves(ctx context.Context, sessionID string) ([]*entity.Move, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	recordID := sess.recordID
	sess.mu.Unlock()

	if recordID == "" {
		return []*entity.Move{}, nil
	}

	moves, err := that.records.GetMoves(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}

	return moves, nil
}

// Record - the history record of the session's current game, winner included once finished.
func (that *GameManager) Record(ctx context.Context, sessionID string) (*entity.Record, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	recordID := sess.recordID
	sess.mu.Unlock()

	if recordID == "" {
		return nil, apperror.ErrRecordNotFound
	}

	record, err := that.records.GetGame(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return record, nil
}

// DiscardRecord - deletes the current game's history. The game goes on unrecorded
// until the next reset.
func (that *GameManager) DiscardRecord(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := that.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.recordID == "" {
		return nil, apperror.ErrRecordNotFound
	}

	if err = that.records.DiscardGame(ctx, sess.recordID); err != nil {
		return nil, fmt.Errorf("failed to discard record: %w", err)
	}

	that.logger.Info("record discarded", "session", sess.id, "record", sess.recordID)
	sess.recordID = ""

	return sess.state(), nil
}

// Close - forgets the session. Its record is kept.
func (that *GameManager) Close(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[sessionID]; !ok {
		return apperror.ErrSessionNotFound
	}

	delete(that.sessions, sessionID)
	that.logger.Info("session closed", "session", sessionID)

	return nil
}

func (that *GameManager) move(ctx context.Context, sess *session, piece int) (*SessionState, error) {
	if err := checkMovable(sess.game); err != nil {
		return nil, err
	}

	result, ok := sess.game.Play(piece)
	if !ok {
		return nil, fmt.Errorf("%w: piece %d cannot move", apperror.ErrInvalidMove, piece)
	}

	sess.moves++
	that.recordMove(ctx, sess, result)

	state := sess.state()
	state.LastMove = &result

	return state, nil
}

func checkMovable(game *mehen.Game) error {
	switch {
	case game.GameOver():
		return apperror.ErrGameFinished
	case game.DiceValue() == 0:
		return apperror.ErrNoRollPending
	default:
		return nil
	}
}

func (that *GameManager) getSession(sessionID string) (*session, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	sess, ok := that.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, sessionID)
	}

	return sess, nil
}

// startRecord opens a history record. Games are playable without one.
func (that *GameManager) startRecord(ctx context.Context) string {
	record, err := that.records.StartGame(ctx)
	if err != nil {
		that.logger.Error("failed to start record", "error", err)
		return ""
	}

	return record.ID
}

func (that *GameManager) recordMove(ctx context.Context, sess *session, result mehen.MoveResult) {
	if sess.recordID == "" {
		return
	}

	log := that.logger.With("method", "recordMove", "session", sess.id, "record", sess.recordID)

	if err := that.records.RecordMove(ctx, sess.recordID, sess.moves, result); err != nil {
		log.Error("failed to record move", "error", err)
	}

	if !result.Won {
		return
	}

	if err := that.records.FinishGame(ctx, sess.recordID, result.Player, sess.moves); err != nil {
		log.Error("failed to finish record", "error", err)
		return
	}

	log.Info("game finished", "winner", result.Player, "moves", sess.moves)
}

func (that *session) state() *SessionState {
	return &SessionState{
		SessionID: that.id,
		RecordID:  that.recordID,
		Game:      that.game.Snapshot(),
		View:      view.NewFrame(that.game),
	}
}
