package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

func New(logger *slog.Logger, manager gameManager, boardSize float64) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	ping := NewPingHandler()
	games := NewGameHandler(logger, manager)
	board := NewLayoutHandler(boardSize)

	e.GET("/ping", ping.Ping)
	e.GET("/layout", board.Get)

	g := e.Group("/games")
	g.POST("", games.Create)
	g.GET("/:id", games.Get)
	g.DELETE("/:id", games.Delete)
	g.POST("/:id/roll", games.Roll)
	g.POST("/:id/move", games.Move)
	g.POST("/:id/square", games.Square)
	g.POST("/:id/pass", games.Pass)
	g.POST("/:id/reset", games.Reset)
	g.GET("/:id/moves", games.Moves)
	g.GET("/:id/record", games.Record)
	g.DELETE("/:id/record", games.DiscardRecord)

	return &Server{
		logger: logger.With("component", "rest_server"),
		echo:   e,
	}
}

func (that *Server) Handler() http.Handler {
	return that.echo
}

// Start - serves until the context is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	errCh := make(chan error, 1)
	go func() {
		if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	that.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
