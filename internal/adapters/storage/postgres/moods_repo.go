package postgres

import (
	"context"
	"database/sql"
	"strings"

	"mood-journal/internal/domain/moods"
)

type MoodsRepo struct {
	db *sql.DB
}

var _ moods.Repository = (*MoodsRepo)(nil)

func NewMoodsRepo(db *sql.DB) *MoodsRepo {
	return &MoodsRepo{db: db}
}

func (r *MoodsRepo) Create(ctx context.Context, m moods.Mood) (moods.Mood, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO mood_entries (owner_id, mood, note)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, mood, note, created_at
	`,
		m.OwnerUserID,
		string(m.Label),
		m.Note,
	)
	return scanMood(row)
}

func (r *MoodsRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]moods.Mood, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, mood, note, created_at
		FROM mood_entries
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, ownerUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]moods.Mood, 0)
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MoodsRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	id, ok := validID(id)
	if !ok {
		return moods.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM mood_entries
		WHERE id = $1 AND owner_id = $2
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return moods.ErrNotFound
	}
	return nil
}

func scanMood(s scanner) (moods.Mood, error) {
	var m moods.Mood
	var label string
	if err := s.Scan(&m.ID, &m.OwnerUserID, &label, &m.Note, &m.CreatedAt); err != nil {
		return moods.Mood{}, err
	}
	m.Label = moods.Label(label)
	return m, nil
}
