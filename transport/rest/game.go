package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azuree0/Mehen/internal/entity"
	"github.com/azuree0/Mehen/internal/usecase"
)

type GameHandler interface {
	Create(ctx echo.Context) error
	Get(ctx echo.Context) error
	Roll(ctx echo.Context) error
	Move(ctx echo.Context) error
	Square(ctx echo.Context) error
	Pass(ctx echo.Context) error
	Reset(ctx echo.Context) error
	Delete(ctx echo.Context) error
	Moves(ctx echo.Context) error
	Record(ctx echo.Context) error
	DiscardRecord(ctx echo.Context) error
}

type gameManager interface {
	NewSession(ctx context.Context) (*usecase.SessionState, error)
	State(ctx context.Context, sessionID string) (*usecase.SessionState, error)
	Roll(ctx context.Context, sessionID string) (*usecase.SessionState, error)
	Move(ctx context.Context, sessionID string, piece int) (*usecase.SessionState, error)
	MoveFromSquare(ctx context.Context, sessionID string, square int) (*usecase.SessionState, error)
	Pass(ctx context.Context, sessionID string) (*usecase.SessionState, error)
	Reset(ctx context.Context, sessionID string) (*usecase.SessionState, error)
	Moves(ctx context.Context, sessionID string) ([]*entity.Move, error)
	Record(ctx context.Context, sessionID string) (*entity.Record, error)
	DiscardRecord(ctx context.Context, sessionID string) (*usecase.SessionState, error)
	Close(ctx context.Context, sessionID string) error
}

type moveRequest struct {
	Piece *int `json:"piece"`
}

type squareRequest struct {
	Square *int `json:"square"`
}

type gameHandler struct {
	logger  *slog.Logger
	manager gameManager
}

func NewGameHandler(logger *slog.Logger, manager gameManager) GameHandler {
	return &gameHandler{
		logger:  logger.With("component", "game_handler"),
		manager: manager,
	}
}

func (that *gameHandler) Create(ctx echo.Context) error {
	state, err := that.manager.NewSession(ctx.Request().Context())
	if err != nil {
		return that.fail(ctx, "Create", err)
	}

	return ctx.JSON(http.StatusCreated, state)
}

func (that *gameHandler) Get(ctx echo.Context) error {
	state, err := that.manager.State(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Get", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Roll(ctx echo.Context) error {
	state, err := that.manager.Roll(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Roll", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Move(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil || req.Piece == nil {
		return that.fail(ctx, "Move", fmt.Errorf("%w: body must be {\"piece\": n}", ErrBadRequest))
	}

	state, err := that.manager.Move(ctx.Request().Context(), ctx.Param("id"), *req.Piece)
	if err != nil {
		return that.fail(ctx, "Move", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Square(ctx echo.Context) error {
	var req squareRequest
	if err := ctx.Bind(&req); err != nil || req.Square == nil {
		return that.fail(ctx, "Square", fmt.Errorf("%w: body must be {\"square\": n}", ErrBadRequest))
	}

	state, err := that.manager.MoveFromSquare(ctx.Request().Context(), ctx.Param("id"), *req.Square)
	if err != nil {
		return that.fail(ctx, "Square", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Pass(ctx echo.Context) error {
	state, err := that.manager.Pass(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Pass", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Reset(ctx echo.Context) error {
	state, err := that.manager.Reset(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Reset", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) Delete(ctx echo.Context) error {
	if err := that.manager.Close(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.fail(ctx, "Delete", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *gameHandler) Moves(ctx echo.Context) error {
	moves, err := that.manager.Moves(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Moves", err)
	}

	return ctx.JSON(http.StatusOK, moves)
}

func (that *gameHandler) Record(ctx echo.Context) error {
	record, err := that.manager.Record(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "Record", err)
	}

	return ctx.JSON(http.StatusOK, record)
}

func (that *gameHandler) DiscardRecord(ctx echo.Context) error {
	state, err := that.manager.DiscardRecord(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "DiscardRecord", err)
	}

	return ctx.JSON(http.StatusOK, state)
}

func (that *gameHandler) fail(ctx echo.Context, method string, err error) error {
	log := that.logger.With("method", method, "session", ctx.Param("id"))

	if statusOf(err) == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "error", err)
	}

	return writeError(ctx, err)
}
