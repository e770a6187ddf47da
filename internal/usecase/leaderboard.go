package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/internal/pkg"
)

const maxNameLength = 32

// SubmitScore - records the player's win count under name. Allowed once per won round,
// even when several submissions race.
func (that *gameUseCase) SubmitScore(ctx context.Context, playerID, name string) (*entity.LeaderboardEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ErrEmptyName
	}

	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength])
	}

	player, err := that.playerRepo.ClaimScoreSubmission(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim score submission: %w", err)
	}

	entry := &entity.LeaderboardEntry{
		ID:        pkg.GenerateEntryID(),
		Name:      name,
		Score:     player.Score.Wins,
		CreatedAt: that.now().UTC(),
	}

	if err = that.leaderboardRepo.Add(ctx, entry); err != nil {
		that.restoreScoreSubmission(ctx, playerID)
		return nil, fmt.Errorf("failed to add leaderboard entry: %w", err)
	}

	return entry, nil
}

// restoreScoreSubmission - gives the claim back when the entry could not be stored.
func (that *gameUseCase) restoreScoreSubmission(ctx context.Context, playerID string) {
	log := that.logger.With("method", "restoreScoreSubmission", "player_id", playerID)

	player, err := that.GetPlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to restore score submission", "error", err)
		return
	}

	player.CanSubmitScore = true
	if err = that.updatePlayer(ctx, player); err != nil {
		log.Error("failed to restore score submission", "error", err)
	}
}

// Leaderboard - returns the best entries. Limits outside (0, LeaderboardLimit] use the configured limit.
func (that *gameUseCase) Leaderboard(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 || (that.settings.LeaderboardLimit > 0 && limit > that.settings.LeaderboardLimit) {
		limit = that.settings.LeaderboardLimit
	}

	entries, err := that.leaderboardRepo.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return entries, nil
}
