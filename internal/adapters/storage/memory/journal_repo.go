package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"mood-journal/internal/domain/journal"

	"github.com/google/uuid"
)

type journalRepo struct {
	mu   sync.RWMutex
	byID map[string]journal.Entry
	now  func() time.Time
}

func NewJournalRepo() journal.Repository {
	return newJournalRepo(time.Now)
}

func newJournalRepo(now func() time.Time) *journalRepo {
	return &journalRepo{
		byID: make(map[string]journal.Entry),
		now:  now,
	}
}

func (r *journalRepo) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	if strings.TrimSpace(e.OwnerUserID) == "" {
		return journal.Entry{}, errors.New("journal entry owner required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = r.now().UTC()
	e.Annotation = nil
	r.byID[e.ID] = e
	return copyEntry(e), nil
}

func (r *journalRepo) GetByID(ctx context.Context, ownerUserID, id string) (journal.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return journal.Entry{}, journal.ErrNotFound
	}
	return copyEntry(e), nil
}

func (r *journalRepo) ListByOwner(ctx context.Context, ownerUserID string, filter journal.ListFilter) ([]journal.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]journal.Entry, 0)
	for _, e := range r.byID {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		if filter.Before != nil && !e.CreatedAt.Before(*filter.Before) {
			continue
		}
		out = append(out, copyEntry(e))
	}

	// created_at desc, id como desempate
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *journalRepo) SetAnnotation(ctx context.Context, ownerUserID, id, annotation string) (journal.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return journal.Entry{}, journal.ErrNotFound
	}
	if e.Annotated() {
		return journal.Entry{}, journal.ErrAlreadyAnnotated
	}

	e.Annotation = &annotation
	r.byID[id] = e
	return copyEntry(e), nil
}

func (r *journalRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return journal.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// copyEntry evita que el caller comparta el puntero de Annotation con el map.
func copyEntry(e journal.Entry) journal.Entry {
	if e.Annotation != nil {
		a := *e.Annotation
		e.Annotation = &a
	}
	return e
}
