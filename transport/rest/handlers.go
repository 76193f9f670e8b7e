package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

type moveRequest struct {
	Col *int `json:"col"`
	Row *int `json:"row"`
}

type gameResponse struct {
	ID        string           `json:"id"`
	Size      int              `json:"size"`
	WinLength int              `json:"win_length"`
	State     entity.GameState `json:"state"`
	White     []entity.Cell    `json:"white"`
	Black     []entity.Cell    `json:"black"`
	Moves     []entity.Move    `json:"moves"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type errorResponse struct {
	Error string        `json:"error"`
	Game  *gameResponse `json:"game,omitempty"`
}

func newGameResponse(game *entity.Game) *gameResponse {
	moves := game.Moves
	if moves == nil {
		moves = []entity.Move{}
	}

	return &gameResponse{
		ID:        game.ID,
		Size:      game.Size,
		WinLength: game.WinLength,
		State:     game.State,
		White:     game.StonesOf(entity.White).Sorted(),
		Black:     game.StonesOf(entity.Black).Sorted(),
		Moves:     moves,
		CreatedAt: game.CreatedAt,
		UpdatedAt: game.UpdatedAt,
	}
}

type gameHandlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameHandlers(logger *slog.Logger, games gameUseCase) *gameHandlers {
	return &gameHandlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *gameHandlers) CreateGame(ctx echo.Context) error {
	game, err := that.games.CreateGame(ctx.Request().Context())
	if err != nil {
		return that.fail(ctx, "CreateGame", err, nil)
	}

	return ctx.JSON(http.StatusCreated, newGameResponse(game))
}

func (that *gameHandlers) GetGame(ctx echo.Context) error {
	game, err := that.games.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "GetGame", err, nil)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *gameHandlers) MakeMove(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil || req.Col == nil || req.Row == nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "body must be {\"col\": int, \"row\": int}"})
	}

	game, err := that.games.MakeMove(ctx.Request().Context(), ctx.Param("id"), entity.NewCell(*req.Col, *req.Row))
	if err != nil {
		return that.fail(ctx, "MakeMove", err, game)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *gameHandlers) ResetGame(ctx echo.Context) error {
	game, err := that.games.ResetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.fail(ctx, "ResetGame", err, nil)
	}

	return ctx.JSON(http.StatusOK, newGameResponse(game))
}

func (that *gameHandlers) DeleteGame(ctx echo.Context) error {
	if err := that.games.DeleteGame(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.fail(ctx, "DeleteGame", err, nil)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *gameHandlers) History(ctx echo.Context) error {
	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
		}
		limit = parsed
	}

	results, err := that.games.History(ctx.Request().Context(), limit)
	if err != nil {
		return that.fail(ctx, "History", err, nil)
	}

	return ctx.JSON(http.StatusOK, results)
}

// fail - maps use case errors to HTTP statuses. Rejected moves carry the current game.
func (that *gameHandlers) fail(ctx echo.Context, method string, err error, game *entity.Game) error {
	resp := errorResponse{Error: err.Error()}
	if game != nil {
		resp.Game = newGameResponse(game)
	}

	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return ctx.JSON(http.StatusNotFound, resp)
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameAlreadyOver):
		return ctx.JSON(http.StatusConflict, resp)
	case errors.Is(err, apperror.ErrCellOutOfBounds):
		return ctx.JSON(http.StatusUnprocessableEntity, resp)
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}
