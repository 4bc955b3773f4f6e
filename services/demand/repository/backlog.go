package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
	"github.com/piresc/fleetsim/internal/pkg/logger"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// BacklogRepo replays recorded requests from a Postgres table
type BacklogRepo struct {
	db     *sqlx.DB
	query  string
	logger *logger.ZapLogger
}

// NewBacklogRepository creates a repository reading from table, typically
// request_backlog or request_pattern
func NewBacklogRepository(
	cfg *models.Config,
	db *sqlx.DB,
	log *logger.ZapLogger,
) (*BacklogRepo, error) {
	table := cfg.Demand.Table
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid demand table name %q", table)
	}

	query := fmt.Sprintf(`
		SELECT
			id, request_datetime AS request_time, trip_time,
			origin_longitude, origin_latitude,
			destination_longitude, destination_latitude,
			fare
		FROM %s
		WHERE request_datetime >= $1 AND request_datetime < $2
		ORDER BY request_datetime, id
	`, table)

	return &BacklogRepo{
		db:     db,
		query:  query,
		logger: log,
	}, nil
}

// Generate returns the requests issued in [t, t+timestep)
func (r *BacklogRepo) Generate(ctx context.Context, t, timestep int64) ([]models.Request, error) {
	var rows []models.RequestDTO
	if err := r.db.SelectContext(ctx, &rows, r.query, t, t+timestep); err != nil {
		return nil, fmt.Errorf("failed to load requests in [%d, %d): %w", t, t+timestep, err)
	}

	requests := make([]models.Request, len(rows))
	for i := range rows {
		requests[i] = rows[i].ToRequest()
	}

	r.logger.Debug("Loaded requests", logger.Int64("t", t), logger.Int("count", len(requests)))
	return requests, nil
}
