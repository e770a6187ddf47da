package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

// claimRetries bounds how often a claim is retried when the player key changes underneath it.
const claimRetries = 5

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	ClaimScoreSubmission(ctx context.Context, id string) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err = that.client.Set(ctx, playerKey(player.ID), playerJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}

// ClaimScoreSubmission - atomically clears CanSubmitScore and returns the player as it was claimed.
// Only one of several concurrent callers gets the player; the rest get apperror.ErrScoreNotEligible.
func (that *dbPlayer) ClaimScoreSubmission(ctx context.Context, id string) (*entity.Player, error) {
	key := playerKey(id)

	var claimed *entity.Player
	claim := func(tx *redis.Tx) error {
		response, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return apperror.ErrPlayerNotFound
		}

		if err != nil {
			return fmt.Errorf("failed to get player by ID: %w", err)
		}

		var player entity.Player
		if err = json.Unmarshal([]byte(response), &player); err != nil {
			return fmt.Errorf("failed to unmarshal player: %w", err)
		}

		if !player.CanSubmitScore {
			return apperror.ErrScoreNotEligible
		}

		player.CanSubmitScore = false

		playerJSON, err := json.Marshal(&player)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, playerJSON, 0)
			return nil
		})
		if err != nil {
			return err
		}

		claimed = &player

		return nil
	}

	for range claimRetries {
		err := that.client.Watch(ctx, claim, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return claimed, nil
	}

	return nil, fmt.Errorf("failed to claim score submission: %w", redis.TxFailedErr)
}
