package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

const leaderboardKey = "leaderboard"

type LeaderboardRepository interface {
	Add(ctx context.Context, entry *entity.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

// dbLeaderboard keeps entries in a sorted set scored by the entry score.
type dbLeaderboard struct {
	client *redis.Client
}

func NewLeaderboardRepository(client *redis.Client) LeaderboardRepository {
	return &dbLeaderboard{
		client: client,
	}
}

func (that *dbLeaderboard) Add(ctx context.Context, entry *entity.LeaderboardEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard entry: %w", err)
	}

	member := redis.Z{Score: float64(entry.Score), Member: entryJSON}
	if err = that.client.ZAdd(ctx, leaderboardKey, member).Err(); err != nil {
		return fmt.Errorf("failed to add leaderboard entry: %w", err)
	}

	return nil
}

// Top - redis orders equal scores by member bytes, so the whole set is read
// and re-sorted to keep ties in submission order.
func (that *dbLeaderboard) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	members, err := that.client.ZRevRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]entity.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		var entry entity.LeaderboardEntry
		if err = json.Unmarshal([]byte(member), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal leaderboard entry: %w", err)
		}

		entries = append(entries, entry)
	}

	entity.SortLeaderboard(entries)

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
