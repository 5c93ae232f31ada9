package moods

import (
	"context"
	"errors"
	"strings"

	"mood-journal/internal/platform/apperr"
	"mood-journal/internal/platform/logger"
	"mood-journal/internal/platform/validation"
)

const (
	defaultListLimit = 30
	maxListLimit     = 200
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "moods"}),
	}
}

type CreateInput struct {
	Mood string
	Note string
}

type createInput struct {
	OwnerUserID string `json:"owner_user_id" validate:"notblank"`
	Mood        string `json:"mood" validate:"required,oneof=happy calm neutral tired anxious sad angry"`
	Note        string `json:"note" validate:"max=1000"`
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Mood, error) {
	const op = "moods.Create"

	v := createInput{
		OwnerUserID: strings.TrimSpace(ownerUserID),
		Mood:        strings.ToLower(strings.TrimSpace(in.Mood)),
		Note:        strings.TrimSpace(in.Note),
	}
	if err := validation.Struct(op, v); err != nil {
		return Mood{}, err
	}

	m, err := s.repo.Create(ctx, Mood{
		OwnerUserID: v.OwnerUserID,
		Label:       Label(v.Mood),
		Note:        v.Note,
	})
	if err != nil {
		s.log.Error("mood insert failed", map[string]any{"owner_user_id": v.OwnerUserID, "error": err})
		return Mood{}, apperr.Wrap(apperr.KindStoreWrite, op, err)
	}
	return m, nil
}

func (s *Service) List(ctx context.Context, ownerUserID string, limit int) ([]Mood, error) {
	const op = "moods.List"

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, apperr.Validation(op, "owner_user_id is required")
	}

	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}

	items, err := s.repo.ListByOwner(ctx, ownerUserID, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindStoreRead, op, err)
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	const op = "moods.Delete"

	ownerUserID = strings.TrimSpace(ownerUserID)
	id = strings.TrimSpace(id)
	if ownerUserID == "" || id == "" {
		return apperr.New(apperr.KindNotFound, op, "mood entry not found")
	}

	if err := s.repo.Delete(ctx, ownerUserID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.WrapMsg(apperr.KindNotFound, op, "mood entry not found", err)
		}
		return apperr.Wrap(apperr.KindStoreWrite, op, err)
	}
	return nil
}
