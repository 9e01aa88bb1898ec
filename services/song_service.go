package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
)

const songColumns = `id, song_name, artist_name, active, artist_id, auto_flag,
	priority, duration_ms, COALESCE(source, ''), created_at`

// SongService manages the reference catalog used for song-based searches.
type SongService struct {
	DB *pgxpool.Pool
}

func NewSongService(db *pgxpool.Pool) *SongService {
	return &SongService{DB: db}
}

// AddSong returns (0, nil) when the (song, artist) pair exists.
func (ss *SongService) AddSong(ctx context.Context, s *models.Song) (int, error) {
	if s.Priority == "" {
		s.Priority = models.PriorityMedium
	}
	var id int
	err := ss.DB.QueryRow(ctx, `
		INSERT INTO songs (song_name, artist_name, active, artist_id, auto_flag, priority, duration_ms, source, created_at)
		VALUES ($1, $2, TRUE, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (song_name, artist_name) DO NOTHING
		RETURNING id`,
		s.SongName, s.ArtistName, s.ArtistID, s.AutoFlag, s.Priority, s.DurationMS, s.Source, time.Now()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

func (ss *SongService) BulkAddSongs(ctx context.Context, songs []models.Song) BulkResult {
	var res BulkResult
	for i := range songs {
		id, err := ss.AddSong(ctx, &songs[i])
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", songs[i].SongName, err))
		case id == 0:
			res.Skipped++
		default:
			res.Added++
		}
	}
	return res
}

func scanSongs(rows pgx.Rows) ([]models.Song, error) {
	defer rows.Close()
	var songs []models.Song
	for rows.Next() {
		var s models.Song
		if err := rows.Scan(&s.ID, &s.SongName, &s.ArtistName, &s.Active, &s.ArtistID,
			&s.AutoFlag, &s.Priority, &s.DurationMS, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, rows.Err()
}

func (ss *SongService) ListSongs(ctx context.Context, artistID *int) ([]models.Song, error) {
	query := "SELECT " + songColumns + " FROM songs"
	var params []any
	if artistID != nil {
		query += " WHERE artist_id = $1"
		params = append(params, *artistID)
	}
	query += " ORDER BY artist_name, song_name"

	rows, err := ss.DB.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

// ActiveSongs returns the catalog entries currently enabled for scanning.
func (ss *SongService) ActiveSongs(ctx context.Context) ([]models.Song, error) {
	rows, err := ss.DB.Query(ctx, "SELECT "+songColumns+" FROM songs WHERE active")
	if err != nil {
		return nil, err
	}
	return scanSongs(rows)
}

func (ss *SongService) SetSongActive(ctx context.Context, id int, active bool) (bool, error) {
	tag, err := ss.DB.Exec(ctx, "UPDATE songs SET active = $2 WHERE id = $1", id, active)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (ss *SongService) DeleteSong(ctx context.Context, id int) (bool, error) {
	tag, err := ss.DB.Exec(ctx, "DELETE FROM songs WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
