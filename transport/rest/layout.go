package rest

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/azuree0/Mehen/internal/layout"
)

type LayoutHandler interface {
	Get(ctx echo.Context) error
}

type layoutResponse struct {
	Size    float64           `json:"size"`
	Squares []layout.Position `json:"squares"`
}

type layoutHandler struct {
	defaultSize float64
}

func NewLayoutHandler(defaultSize float64) LayoutHandler {
	return &layoutHandler{defaultSize: defaultSize}
}

// Get - square coordinates for a board of ?size=N pixels.
func (that *layoutHandler) Get(ctx echo.Context) error {
	size := that.defaultSize

	if raw := ctx.QueryParam("size"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || !validSize(parsed) {
			return writeError(ctx, fmt.Errorf("%w: size must be a positive number", ErrBadRequest))
		}
		size = parsed
	}

	return ctx.JSON(http.StatusOK, layoutResponse{
		Size:    size,
		Squares: layout.Spiral(size),
	})
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 1)
}
