package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"ugc-monitor/models"
	"ugc-monitor/rules"
)

// RuleService stores user-authored auto-flag rules.
type RuleService struct {
	DB *pgxpool.Pool
}

func NewRuleService(db *pgxpool.Pool) *RuleService {
	return &RuleService{DB: db}
}

// AddRule returns (0, nil) when a rule with the same name exists.
func (rs *RuleService) AddRule(ctx context.Context, r *models.AutoFlagRule) (int, error) {
	var id int
	err := rs.DB.QueryRow(ctx, `
		INSERT INTO auto_flag_rules (name, description, conditions, action, active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`,
		r.Name, r.Description, r.Conditions, r.Action, time.Now()).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}

func (rs *RuleService) ListRules(ctx context.Context) ([]models.AutoFlagRule, error) {
	rows, err := rs.DB.Query(ctx, `
		SELECT id, name, COALESCE(description, ''), conditions, action, active, created_at
		FROM auto_flag_rules ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AutoFlagRule
	for rows.Next() {
		var r models.AutoFlagRule
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Conditions, &r.Action, &r.Active, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ActiveRules loads the enabled rules decoded into evaluable form. A rule
// whose stored conditions fail to decode is skipped, not fatal.
func (rs *RuleService) ActiveRules(ctx context.Context) ([]rules.Rule, error) {
	rows, err := rs.DB.Query(ctx, `
		SELECT id, name, conditions, action
		FROM auto_flag_rules WHERE active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rules.Rule
	for rows.Next() {
		var stored models.AutoFlagRule
		if err := rows.Scan(&stored.ID, &stored.Name, &stored.Conditions, &stored.Action); err != nil {
			return nil, err
		}
		rule, err := rules.Decode(stored)
		if err != nil {
			log.Printf("[RuleService] skipping rule %q (id %d): bad conditions: %v", stored.Name, stored.ID, err)
			continue
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

func (rs *RuleService) SetRuleActive(ctx context.Context, id int, active bool) (bool, error) {
	tag, err := rs.DB.Exec(ctx, "UPDATE auto_flag_rules SET active = $2 WHERE id = $1", id, active)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (rs *RuleService) DeleteRule(ctx context.Context, id int) (bool, error) {
	tag, err := rs.DB.Exec(ctx, "DELETE FROM auto_flag_rules WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
