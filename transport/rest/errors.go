package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/azuree0/Mehen/internal/apperror"
)

var ErrBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound), errors.Is(err, apperror.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrRollPending),
		errors.Is(err, apperror.ErrNoRollPending),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError - answers with the status the error maps to. Internal details stay in the log.
func writeError(ctx echo.Context, err error) error {
	status := statusOf(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	return ctx.JSON(status, errorResponse{Error: message})
}
