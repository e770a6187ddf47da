package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type scoreUseCase interface {
	GetPlayer(ctx context.Context, playerID string) (*entity.Player, error)
	SubmitScore(ctx context.Context, playerID, name string) (*entity.LeaderboardEntry, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type submitScoreRequest struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger  *slog.Logger
	useCase scoreUseCase
}

func newHandlers(logger *slog.Logger, useCase scoreUseCase) *handlers {
	return &handlers{
		logger:  logger.With("component", "rest_handlers"),
		useCase: useCase,
	}
}

// GetLeaderboard - GET /leaderboard?limit=N.
func (that *handlers) GetLeaderboard(ctx echo.Context) error {
	var limit int
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a number"})
		}

		limit = parsed
	}

	entries, err := that.useCase.Leaderboard(ctx.Request().Context(), limit)
	if err != nil {
		that.logger.Error("failed to get leaderboard", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	if entries == nil {
		entries = []entity.LeaderboardEntry{}
	}

	return ctx.JSON(http.StatusOK, entries)
}

// SubmitScore - POST /leaderboard.
func (that *handlers) SubmitScore(ctx echo.Context) error {
	var req submitScoreRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if req.PlayerID == "" {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "player_id is required"})
	}

	entry, err := that.useCase.SubmitScore(ctx.Request().Context(), req.PlayerID, req.Name)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusCreated, entry)
	case errors.Is(err, apperror.ErrEmptyName):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrScoreNotEligible):
		return ctx.JSON(http.StatusForbidden, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrPlayerNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("failed to submit score", "player_id", req.PlayerID, "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

// GetPlayer - GET /players/:id.
func (that *handlers) GetPlayer(ctx echo.Context) error {
	player, err := that.useCase.GetPlayer(ctx.Request().Context(), ctx.Param("id"))
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	}

	if err != nil {
		that.logger.Error("failed to get player", "error", err)
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}

	return ctx.JSON(http.StatusOK, player)
}
