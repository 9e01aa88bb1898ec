package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
)

// KeywordService manages free-text search keywords.
type KeywordService struct {
	DB *pgxpool.Pool
}

func NewKeywordService(db *pgxpool.Pool) *KeywordService {
	return &KeywordService{DB: db}
}

// AddKeyword returns (0, nil) when the (keyword, artist) pair exists.
func (ks *KeywordService) AddKeyword(ctx context.Context, k *models.Keyword) (int, error) {
	if k.Priority == "" {
		k.Priority = models.PriorityMedium
	}
	var id int
	err := ks.DB.QueryRow(ctx, `
		INSERT INTO keywords (keyword, active, artist_id, auto_flag, priority, created_at)
		VALUES ($1, TRUE, $2, $3, $4, $5)
		ON CONFLICT (keyword, artist_id) DO NOTHING
		RETURNING id`,
		k.Keyword, k.ArtistID, k.AutoFlag, k.Priority, time.Now()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	k.ID = id
	return id, nil
}

// BulkResult summarizes a bulk import.
type BulkResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

func (ks *KeywordService) BulkAddKeywords(ctx context.Context, keywords []models.Keyword) BulkResult {
	var res BulkResult
	for i := range keywords {
		id, err := ks.AddKeyword(ctx, &keywords[i])
		switch {
		case err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", keywords[i].Keyword, err))
		case id == 0:
			res.Skipped++
		default:
			res.Added++
		}
	}
	return res
}

func (ks *KeywordService) ListKeywords(ctx context.Context, artistID *int) ([]models.Keyword, error) {
	query := `SELECT id, keyword, active, artist_id, auto_flag, priority, created_at
		FROM keywords`
	var params []any
	if artistID != nil {
		query += " WHERE artist_id = $1"
		params = append(params, *artistID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := ks.DB.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []models.Keyword
	for rows.Next() {
		var k models.Keyword
		if err := rows.Scan(&k.ID, &k.Keyword, &k.Active, &k.ArtistID, &k.AutoFlag, &k.Priority, &k.CreatedAt); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// ActiveKeywords returns the keyword strings currently enabled for scanning.
func (ks *KeywordService) ActiveKeywords(ctx context.Context) ([]string, error) {
	rows, err := ks.DB.Query(ctx, "SELECT keyword FROM keywords WHERE active")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keywords []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keywords = append(keywords, k)
	}
	return keywords, rows.Err()
}

// KeywordUpdate carries optional field changes; nil means "leave as is".
type KeywordUpdate struct {
	Active   *bool   `json:"active"`
	AutoFlag *bool   `json:"auto_flag"`
	Priority *string `json:"priority"`
}

func (ks *KeywordService) UpdateKeyword(ctx context.Context, id int, u KeywordUpdate) (bool, error) {
	var sets []string
	var params []any
	if u.Active != nil {
		params = append(params, *u.Active)
		sets = append(sets, fmt.Sprintf("active = $%d", len(params)))
	}
	if u.AutoFlag != nil {
		params = append(params, *u.AutoFlag)
		sets = append(sets, fmt.Sprintf("auto_flag = $%d", len(params)))
	}
	if u.Priority != nil {
		params = append(params, *u.Priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(params)))
	}
	if len(sets) == 0 {
		return false, nil
	}
	params = append(params, id)
	tag, err := ks.DB.Exec(ctx,
		fmt.Sprintf("UPDATE keywords SET %s WHERE id = $%d", strings.Join(sets, ", "), len(params)),
		params...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (ks *KeywordService) DeleteKeyword(ctx context.Context, id int) (bool, error) {
	tag, err := ks.DB.Exec(ctx, "DELETE FROM keywords WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
