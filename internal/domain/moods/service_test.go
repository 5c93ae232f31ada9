package moods

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"mood-journal/internal/platform/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID      map[string]Mood
	seq       int
	createErr error
	calls     int
	lastLimit int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Mood{}}
}

func (r *testRepo) Create(ctx context.Context, m Mood) (Mood, error) {
	r.calls++
	if r.createErr != nil {
		return Mood{}, r.createErr
	}
	r.seq++
	m.ID = fmt.Sprintf("mood-%d", r.seq)
	m.CreatedAt = time.Date(2026, 3, 1, 9, r.seq, 0, 0, time.UTC)
	r.byID[m.ID] = m
	return m, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]Mood, error) {
	r.lastLimit = limit
	out := make([]Mood, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, ownerUserID, id string) error {
	m, ok := r.byID[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestService_Create(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{Mood: " Calm ", Note: "  slept well "})
	require.NoError(t, err)
	assert.Equal(t, "mood-1", m.ID)
	assert.Equal(t, LabelCalm, m.Label)
	assert.Equal(t, "slept well", m.Note)
	assert.Equal(t, "user-1", m.OwnerUserID)
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	cases := []struct {
		name string
		in   CreateInput
		msg  string
	}{
		{"missing mood", CreateInput{}, "mood is required"},
		{"unknown mood", CreateInput{Mood: "ecstatic"}, "mood must be one of"},
		{"note too long", CreateInput{Mood: "sad", Note: strings.Repeat("n", 1001)}, "note must be at most 1000 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrValidation)
			assert.Contains(t, apperr.Message(err), tc.msg)
		})
	}
	assert.Equal(t, 0, repo.calls)
}

func TestService_Create_StoreFailure(t *testing.T) {
	repo := newTestRepo()
	repo.createErr = errors.New("connection reset")
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), "user-1", CreateInput{Mood: "happy"})
	assert.ErrorIs(t, err, apperr.ErrStoreWrite)
}

func TestService_List_Limits(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	for _, l := range []string{"happy", "sad", "tired"} {
		_, err := svc.Create(context.Background(), "user-1", CreateInput{Mood: l})
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "user-2", CreateInput{Mood: "angry"})
	require.NoError(t, err)

	items, err := svc.List(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, LabelTired, items[0].Label)
	assert.Equal(t, defaultListLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), "user-1", 10_000)
	require.NoError(t, err)
	assert.Equal(t, maxListLimit, repo.lastLimit)
}

func TestService_Delete_OwnerScoped(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	m, err := svc.Create(context.Background(), "user-1", CreateInput{Mood: "anxious"})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "user-2", m.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "user-1", m.ID))

	items, err := svc.List(context.Background(), "user-1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
