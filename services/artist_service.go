package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
)

// ArtistService manages the registry of monitored artists.
type ArtistService struct {
	DB *pgxpool.Pool
}

func NewArtistService(db *pgxpool.Pool) *ArtistService {
	return &ArtistService{DB: db}
}

// AddArtist returns (0, nil) when an artist with the same name exists.
func (as *ArtistService) AddArtist(ctx context.Context, a *models.Artist) (int, error) {
	var id int
	err := as.DB.QueryRow(ctx, `
		INSERT INTO artists (name, email, contact_person, notes, active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`,
		a.Name, a.Email, a.ContactPerson, a.Notes, time.Now()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	a.ID = id
	return id, nil
}

func (as *ArtistService) ListArtists(ctx context.Context) ([]models.Artist, error) {
	rows, err := as.DB.Query(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(contact_person, ''),
		       COALESCE(notes, ''), active, created_at
		FROM artists ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var a models.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.ContactPerson, &a.Notes, &a.Active, &a.CreatedAt); err != nil {
			return nil, err
		}
		artists = append(artists, a)
	}
	return artists, rows.Err()
}

func (as *ArtistService) GetArtist(ctx context.Context, id int) (*models.Artist, error) {
	var a models.Artist
	err := as.DB.QueryRow(ctx, `
		SELECT id, name, COALESCE(email, ''), COALESCE(contact_person, ''),
		       COALESCE(notes, ''), active, created_at
		FROM artists WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Email, &a.ContactPerson, &a.Notes, &a.Active, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ArtistUpdate carries optional field changes; nil means "leave as is".
type ArtistUpdate struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contact_person"`
	Notes         *string `json:"notes"`
	Active        *bool   `json:"active"`
}

func (as *ArtistService) UpdateArtist(ctx context.Context, id int, u ArtistUpdate) (bool, error) {
	tag, err := as.DB.Exec(ctx, `
		UPDATE artists SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			contact_person = COALESCE($4, contact_person),
			notes = COALESCE($5, notes),
			active = COALESCE($6, active)
		WHERE id = $1`,
		id, u.Name, u.Email, u.ContactPerson, u.Notes, u.Active)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (as *ArtistService) DeleteArtist(ctx context.Context, id int) (bool, error) {
	tag, err := as.DB.Exec(ctx, "DELETE FROM artists WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
