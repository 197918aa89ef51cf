package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/maheshrc27/postpilot/internal/models"
)

// AnalyticsRepository is an append-only event log.
type AnalyticsRepository interface {
	Create(ctx context.Context, event *models.AnalyticsEvent) (int64, error)
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.AnalyticsEvent, error)
}

type analyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) Create(ctx context.Context, event *models.AnalyticsEvent) (int64, error) {
	query := `
		INSERT INTO analytics_events (user_id, post_id, event_type, data)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, event.UserID, event.PostID,
		event.EventType, jsonb(event.Data)).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *analyticsRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*models.AnalyticsEvent, error) {
	query := `SELECT id, user_id, post_id, event_type, data, created_at
		FROM analytics_events WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var events []*models.AnalyticsEvent
	for rows.Next() {
		var event models.AnalyticsEvent
		var data []byte
		err := rows.Scan(&event.ID, &event.UserID, &event.PostID,
			&event.EventType, &data, &event.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		if err := scanJSON(data, &event.Data); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
