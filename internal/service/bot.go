package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
)

type BotService struct {
	logger *slog.Logger
	delay  time.Duration
	picker tictactoe.Picker
}

// NewBotService - delay is the pause before every bot move; zero plays immediately.
func NewBotService(logger *slog.Logger, delay time.Duration, picker tictactoe.Picker) *BotService {
	if picker == nil {
		picker = tictactoe.DefaultPicker
	}

	return &BotService{
		logger: logger.With("component", "bot"),
		delay:  delay,
		picker: picker,
	}
}

// MakeTurn - waits for the thinking delay and plays the bot's move.
// If ctx is done first the game is left untouched.
func (that *BotService) MakeTurn(ctx context.Context, game *entity.Game) (tictactoe.Outcome, error) {
	log := that.logger.With("method", "MakeTurn", "game_id", game.ID)

	if that.delay > 0 {
		timer := time.NewTimer(that.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return tictactoe.Outcome{}, fmt.Errorf("bot interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	outcome := tictactoe.PlayAutomatedMove(game, that.picker)
	if outcome.IsRejected() {
		return outcome, fmt.Errorf("bot failed to make turn: %w", outcome.Err)
	}

	log.Debug("bot played", "cell", outcome.Cell, "mark", outcome.Mark, "difficulty", game.Difficulty)

	return outcome, nil
}
