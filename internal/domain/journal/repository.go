package journal

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("journal entry not found")
	ErrAlreadyAnnotated = errors.New("journal entry already annotated")
)

// Repository: todas las operaciones van acotadas al dueño.
type Repository interface {
	// Create persiste la entrada; el store asigna ID y CreatedAt.
	Create(ctx context.Context, e Entry) (Entry, error)
	GetByID(ctx context.Context, ownerUserID, id string) (Entry, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Entry, error)
	// SetAnnotation solo escribe si la anotación está ausente.
	// ErrAlreadyAnnotated si ya tenía una, ErrNotFound si no existe para ese dueño.
	SetAnnotation(ctx context.Context, ownerUserID, id, annotation string) (Entry, error)
	Delete(ctx context.Context, ownerUserID, id string) error
}

type ListFilter struct {
	Limit  int
	Before *time.Time // cursor: created_at estrictamente menor
}
