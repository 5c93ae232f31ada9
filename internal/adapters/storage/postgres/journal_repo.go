package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"mood-journal/internal/domain/journal"

	"github.com/google/uuid"
)

type JournalRepo struct {
	db *sql.DB
}

var _ journal.Repository = (*JournalRepo)(nil)

func NewJournalRepo(db *sql.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

const journalColumns = `id, owner_id, content, annotation, created_at`

func (r *JournalRepo) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO journal_entries (owner_id, content)
		VALUES ($1, $2)
		RETURNING `+journalColumns,
		e.OwnerUserID,
		e.Content,
	)
	return scanEntry(row)
}

func (r *JournalRepo) GetByID(ctx context.Context, ownerUserID, id string) (journal.Entry, error) {
	id, ok := validID(id)
	if !ok {
		return journal.Entry{}, journal.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE id = $1 AND owner_id = $2
	`, id, ownerUserID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, journal.ErrNotFound
	}
	return e, err
}

func (r *JournalRepo) ListByOwner(ctx context.Context, ownerUserID string, filter journal.ListFilter) ([]journal.Entry, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	// before NULL = sin cursor
	var before sql.NullTime
	if filter.Before != nil {
		before = sql.NullTime{Time: *filter.Before, Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+journalColumns+`
		FROM journal_entries
		WHERE owner_id = $1
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, ownerUserID, before, filter.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]journal.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SetAnnotation escribe solo si annotation IS NULL. Si no afecta filas,
// relee para distinguir "no existe" de "ya anotada".
func (r *JournalRepo) SetAnnotation(ctx context.Context, ownerUserID, id, annotation string) (journal.Entry, error) {
	id, ok := validID(id)
	if !ok {
		return journal.Entry{}, journal.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE journal_entries
		SET annotation = $3
		WHERE id = $1 AND owner_id = $2 AND annotation IS NULL
		RETURNING `+journalColumns,
		id, ownerUserID, annotation,
	)

	e, err := scanEntry(row)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return journal.Entry{}, err
	}

	if _, err := r.GetByID(ctx, ownerUserID, id); err != nil {
		return journal.Entry{}, err
	}
	return journal.Entry{}, journal.ErrAlreadyAnnotated
}

func (r *JournalRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	id, ok := validID(id)
	if !ok {
		return journal.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM journal_entries
		WHERE id = $1 AND owner_id = $2
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return journal.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (journal.Entry, error) {
	var e journal.Entry
	var annotation sql.NullString
	if err := s.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Content,
		&annotation,
		&e.CreatedAt,
	); err != nil {
		return journal.Entry{}, err
	}

	if annotation.Valid {
		a := annotation.String
		e.Annotation = &a
	}
	return e, nil
}

// validID evita mandar a Postgres ids que no son uuid (responderían con
// error de sintaxis en vez de "no existe").
func validID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}
