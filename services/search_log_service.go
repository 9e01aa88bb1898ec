package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
)

// SearchLogService records every search query run, successful or not.
type SearchLogService struct {
	DB *pgxpool.Pool
}

func NewSearchLogService(db *pgxpool.Pool) *SearchLogService {
	return &SearchLogService{DB: db}
}

func (ls *SearchLogService) AddLog(ctx context.Context, l *models.SearchLog) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	return ls.DB.QueryRow(ctx, `
		INSERT INTO search_logs (keyword, results_count, success, error_message, artist_id, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		l.Keyword, l.ResultsCount, l.Success, l.ErrorMessage, l.ArtistID, l.Timestamp).Scan(&l.ID)
}

func (ls *SearchLogService) ListLogs(ctx context.Context, limit int) ([]models.SearchLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := ls.DB.Query(ctx, `
		SELECT id, keyword, results_count, success, COALESCE(error_message, ''), artist_id, timestamp
		FROM search_logs ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.SearchLog
	for rows.Next() {
		var l models.SearchLog
		if err := rows.Scan(&l.ID, &l.Keyword, &l.ResultsCount, &l.Success, &l.ErrorMessage, &l.ArtistID, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
