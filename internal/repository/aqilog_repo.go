package repository

import (
	"context"
	"fmt"

	"pollution_tracker/internal/model"
)

// AQILogRepository defines operations for the AQI reading history
type AQILogRepository interface {
	Create(ctx context.Context, log *model.AQILog) error
	FindAll(ctx context.Context) ([]model.AQILog, error)
	DeleteAll(ctx context.Context) error
}

type aqiLogRepository struct {
	db DB
}

// NewAQILogRepository creates a new AQILogRepository
func NewAQILogRepository(db DB) AQILogRepository {
	return &aqiLogRepository{db: db}
}

// Create appends one immutable AQI log record. The timestamp is assigned by
// the database, not the caller.
func (r *aqiLogRepository) Create(ctx context.Context, l *model.AQILog) error {
	sql := `INSERT INTO aqi_logs (user_id, lat, lon, aqi, category, advice)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, l.UserID, l.Lat, l.Lon, l.AQI, l.Category, l.Advice).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create AQI log: %w", err)
	}
	return nil
}

// FindAll retrieves every log record, newest first
func (r *aqiLogRepository) FindAll(ctx context.Context) ([]model.AQILog, error) {
	sql := `SELECT id, user_id, lat, lon, aqi, category, advice, created_at
            FROM aqi_logs ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query AQI logs: %w", err)
	}
	defer rows.Close()

	var logs []model.AQILog
	for rows.Next() {
		var l model.AQILog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Lat, &l.Lon, &l.AQI, &l.Category, &l.Advice, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan AQI log row: %w", err)
		}
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating AQI log rows: %w", err)
	}
	return logs, nil
}

// DeleteAll empties the history table. Irreversible.
func (r *aqiLogRepository) DeleteAll(ctx context.Context) error {
	sql := `DELETE FROM aqi_logs`
	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to clear AQI logs: %w", err)
	}
	return nil
}
