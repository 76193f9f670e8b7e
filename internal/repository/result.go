package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
)

// ResultRepository - archive of finished games.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	Latest(ctx context.Context, limit int) ([]*entity.Result, error)
}

type dbResult struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &dbResult{
		conn: conn,
	}
}

// Save - stores the result; a game that is finished again after a reset overwrites its previous result.
func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	query := `INSERT OR REPLACE INTO results (game_id, winner, moves, size, finished_at) VALUES (?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		result.GameID,
		string(result.Winner),
		result.Moves,
		result.Size,
		result.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) Latest(ctx context.Context, limit int) ([]*entity.Result, error) {
	query := `SELECT game_id, winner, moves, size, finished_at FROM results ORDER BY finished_at DESC, game_id LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := make([]*entity.Result, 0, limit)
	for rows.Next() {
		var (
			result     entity.Result
			winner     string
			finishedAt int64
		)

		if err = rows.Scan(&result.GameID, &winner, &result.Moves, &result.Size, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}

		result.Winner = entity.Player(winner)
		result.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}

	return results, nil
}
