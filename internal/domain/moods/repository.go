package moods

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("mood entry not found")

type Repository interface {
	// Create persiste el registro; el store asigna ID y CreatedAt.
	Create(ctx context.Context, m Mood) (Mood, error)
	// ListByOwner devuelve los más nuevos primero.
	ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]Mood, error)
	Delete(ctx context.Context, ownerUserID, id string) error
}
