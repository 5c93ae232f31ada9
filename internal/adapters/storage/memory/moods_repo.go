package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"mood-journal/internal/domain/moods"

	"github.com/google/uuid"
)

type moodsRepo struct {
	mu   sync.RWMutex
	byID map[string]moods.Mood
	now  func() time.Time
}

func NewMoodsRepo() moods.Repository {
	return newMoodsRepo(time.Now)
}

func newMoodsRepo(now func() time.Time) *moodsRepo {
	return &moodsRepo{
		byID: make(map[string]moods.Mood),
		now:  now,
	}
}

func (r *moodsRepo) Create(ctx context.Context, m moods.Mood) (moods.Mood, error) {
	if strings.TrimSpace(m.OwnerUserID) == "" {
		return moods.Mood{}, errors.New("mood owner required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = uuid.NewString()
	m.CreatedAt = r.now().UTC()
	r.byID[m.ID] = m
	return m, nil
}

func (r *moodsRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]moods.Mood, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]moods.Mood, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *moodsRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byID[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return moods.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
