package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
)

// VideoService persists candidate videos and their review state.
type VideoService struct {
	DB *pgxpool.Pool
}

func NewVideoService(db *pgxpool.Pool) *VideoService {
	return &VideoService{DB: db}
}

// AddVideo inserts a video unless its external ID is already known.
// A duplicate returns (0, nil): already known, not an error.
func (vs *VideoService) AddVideo(ctx context.Context, v *models.Video) (int, error) {
	var id int
	err := vs.DB.QueryRow(ctx, `
		INSERT INTO videos (video_id, title, channel_name, channel_id, description,
		                    publish_date, thumbnail_url, video_url, matched_keyword,
		                    duration_sec, status, priority, artist_id, auto_flagged,
		                    risk_score, risk_level, risk_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (video_id) DO NOTHING
		RETURNING id`,
		v.VideoID, v.Title, v.ChannelName, v.ChannelID, v.Description,
		v.PublishDate, v.ThumbnailURL, v.VideoURL, v.MatchedKeyword,
		v.DurationSec, v.Status, v.Priority, v.ArtistID, v.AutoFlagged,
		v.RiskScore, v.RiskLevel, v.RiskReason, v.CreatedAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v.ID = id
	return id, nil
}

// VideoFilters narrows ListVideos results; zero values mean "any".
type VideoFilters struct {
	Keyword     string
	Status      string
	Priority    string
	ArtistID    *int
	AutoFlagged *bool
	DateFrom    string
	DateTo      string
}

const videoColumns = `id, video_id, title, channel_name, channel_id, description,
	publish_date, thumbnail_url, video_url, matched_keyword, duration_sec,
	status, priority, artist_id, auto_flagged, risk_score,
	COALESCE(risk_level, ''), COALESCE(risk_reason, ''), created_at`

// ListVideos returns videos ordered by priority rank, newest first within a
// rank.
func (vs *VideoService) ListVideos(ctx context.Context, f VideoFilters) ([]models.Video, error) {
	query := "SELECT " + videoColumns + " FROM videos WHERE 1=1"
	var params []any

	add := func(clause string, value any) {
		params = append(params, value)
		query += fmt.Sprintf(" AND %s = $%d", clause, len(params))
	}
	if f.Keyword != "" {
		add("matched_keyword", f.Keyword)
	}
	if f.Status != "" {
		add("status", f.Status)
	}
	if f.Priority != "" {
		add("priority", f.Priority)
	}
	if f.ArtistID != nil {
		add("artist_id", *f.ArtistID)
	}
	if f.AutoFlagged != nil {
		add("auto_flagged", *f.AutoFlagged)
	}
	if f.DateFrom != "" {
		params = append(params, f.DateFrom)
		query += fmt.Sprintf(" AND publish_date >= $%d", len(params))
	}
	if f.DateTo != "" {
		params = append(params, f.DateTo)
		query += fmt.Sprintf(" AND publish_date <= $%d", len(params))
	}

	query += `
		ORDER BY
			CASE priority
				WHEN 'Critical' THEN 4
				WHEN 'High' THEN 3
				WHEN 'Medium' THEN 2
				WHEN 'Low' THEN 1
				ELSE 0
			END DESC,
			created_at DESC`

	rows, err := vs.DB.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.VideoID, &v.Title, &v.ChannelName, &v.ChannelID,
			&v.Description, &v.PublishDate, &v.ThumbnailURL, &v.VideoURL,
			&v.MatchedKeyword, &v.DurationSec, &v.Status, &v.Priority, &v.ArtistID,
			&v.AutoFlagged, &v.RiskScore, &v.RiskLevel, &v.RiskReason, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (vs *VideoService) GetVideo(ctx context.Context, id int) (*models.Video, error) {
	var v models.Video
	err := vs.DB.QueryRow(ctx, "SELECT "+videoColumns+" FROM videos WHERE id = $1", id).
		Scan(&v.ID, &v.VideoID, &v.Title, &v.ChannelName, &v.ChannelID,
			&v.Description, &v.PublishDate, &v.ThumbnailURL, &v.VideoURL,
			&v.MatchedKeyword, &v.DurationSec, &v.Status, &v.Priority, &v.ArtistID,
			&v.AutoFlagged, &v.RiskScore, &v.RiskLevel, &v.RiskReason, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVideo changes status and/or priority of one video.
func (vs *VideoService) UpdateVideo(ctx context.Context, id int, status, priority string) (bool, error) {
	var sets []string
	var params []any
	if status != "" {
		params = append(params, status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(params)))
	}
	if priority != "" {
		params = append(params, priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(params)))
	}
	if len(sets) == 0 {
		return false, nil
	}
	params = append(params, id)
	tag, err := vs.DB.Exec(ctx,
		fmt.Sprintf("UPDATE videos SET %s WHERE id = $%d", strings.Join(sets, ", "), len(params)),
		params...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkFlagged flags a stored video for takedown and records the detector
// verdict that justified it.
func (vs *VideoService) MarkFlagged(ctx context.Context, id, riskScore int, riskLevel, riskReason string) error {
	_, err := vs.DB.Exec(ctx, `
		UPDATE videos
		SET status = $2, auto_flagged = TRUE, risk_score = $3, risk_level = $4, risk_reason = $5
		WHERE id = $1`,
		id, models.StatusFlagged, riskScore, riskLevel, riskReason)
	return err
}

func (vs *VideoService) BatchUpdate(ctx context.Context, ids []int, status, priority string) (int64, error) {
	var sets []string
	var params []any
	if status != "" {
		params = append(params, status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(params)))
	}
	if priority != "" {
		params = append(params, priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(params)))
	}
	if len(sets) == 0 || len(ids) == 0 {
		return 0, nil
	}
	params = append(params, ids)
	tag, err := vs.DB.Exec(ctx,
		fmt.Sprintf("UPDATE videos SET %s WHERE id = ANY($%d)", strings.Join(sets, ", "), len(params)),
		params...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (vs *VideoService) BatchDelete(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := vs.DB.Exec(ctx, "DELETE FROM videos WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (vs *VideoService) DeleteVideo(ctx context.Context, id int) (bool, error) {
	tag, err := vs.DB.Exec(ctx, "DELETE FROM videos WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stats aggregates review-state counts, optionally for one artist.
func (vs *VideoService) Stats(ctx context.Context, artistID *int) (models.Stats, error) {
	var s models.Stats

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Reviewed'),
			COUNT(*) FILTER (WHERE status = 'Flagged for Takedown'),
			COUNT(*) FILTER (WHERE priority = 'Low'),
			COUNT(*) FILTER (WHERE priority = 'Medium'),
			COUNT(*) FILTER (WHERE priority = 'High'),
			COUNT(*) FILTER (WHERE priority = 'Critical'),
			COUNT(*) FILTER (WHERE auto_flagged)
		FROM videos`
	var params []any
	if artistID != nil {
		query += " WHERE artist_id = $1"
		params = append(params, *artistID)
	}
	if err := vs.DB.QueryRow(ctx, query, params...).Scan(
		&s.TotalVideos, &s.Pending, &s.Reviewed, &s.Flagged,
		&s.PriorityLow, &s.PriorityMedium, &s.PriorityHigh, &s.PriorityCritical,
		&s.AutoFlagged); err != nil {
		return s, err
	}

	logQuery := "SELECT timestamp FROM search_logs ORDER BY timestamp DESC LIMIT 1"
	logParams := []any{}
	if artistID != nil {
		logQuery = "SELECT timestamp FROM search_logs WHERE artist_id = $1 ORDER BY timestamp DESC LIMIT 1"
		logParams = append(logParams, *artistID)
	}
	err := vs.DB.QueryRow(ctx, logQuery, logParams...).Scan(&s.LastSearch)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return s, err
	}
	return s, nil
}
