package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type sqliteLeaderboard struct {
	conn *sql.DB
}

func NewSQLiteLeaderboardRepository(conn *sql.DB) LeaderboardRepository {
	return &sqliteLeaderboard{
		conn: conn,
	}
}

func (that *sqliteLeaderboard) Add(ctx context.Context, entry *entity.LeaderboardEntry) error {
	query := `INSERT INTO leaderboard (entry_id, name, score, created_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, entry.ID, entry.Name, entry.Score, entry.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("can't save leaderboard entry: %w", err)
	}

	return nil
}

func (that *sqliteLeaderboard) Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	query := `SELECT entry_id, name, score, created_at FROM leaderboard ORDER BY score DESC, id ASC`
	args := []any{}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := that.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []entity.LeaderboardEntry
	for rows.Next() {
		var (
			entry     entity.LeaderboardEntry
			createdAt int64
		)

		if err = rows.Scan(&entry.ID, &entry.Name, &entry.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard entry: %w", err)
		}

		entry.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read leaderboard: %w", err)
	}

	return entries, nil
}
