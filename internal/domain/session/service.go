package session

import (
	"context"
	"strings"

	"mood-journal/internal/platform/apperr"
	"mood-journal/internal/platform/logger"
	"mood-journal/internal/platform/validation"
	"mood-journal/internal/ports/auth"
)

// Status es el estado de sesión que consumen los clientes para decidir
// qué vista mostrar.
type Status struct {
	SignedIn bool
	UserID   string
	Email    string
}

type Options struct {
	// RedirectURL es a dónde apunta el link del email.
	RedirectURL string
	Logger      logger.Logger
}

type Service struct {
	provider    auth.Provider // nil = sin provider (modo dev)
	revoker     auth.Revoker  // nil = sin revocación local
	redirectURL string
	log         logger.Logger
}

func NewService(provider auth.Provider, revoker auth.Revoker, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		provider:    provider,
		revoker:     revoker,
		redirectURL: strings.TrimSpace(opts.RedirectURL),
		log:         log.With(map[string]any{"component": "session"}),
	}
}

// RequestLink pide al provider el envío del link de acceso.
func (s *Service) RequestLink(ctx context.Context, email string) error {
	const op = "session.RequestLink"

	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Var(op, "email", email, "required,email"); err != nil {
		return err
	}
	if s.provider == nil {
		return apperr.New(apperr.KindInternal, op, "email sign-in is not configured")
	}

	if err := s.provider.SendMagicLink(ctx, email, s.redirectURL); err != nil {
		s.log.Error("magic link request failed", map[string]any{"error": err})
		return apperr.WrapMsg(apperr.KindInternal, op, "could not send the sign-in link, please try again", err)
	}

	s.log.Info("magic link requested", nil)
	return nil
}

func (s *Service) Status(claims auth.Claims, ok bool) Status {
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		return Status{}
	}
	return Status{
		SignedIn: true,
		UserID:   claims.UserID,
		Email:    claims.Email,
	}
}

// SignOut revoca el token localmente y avisa al provider. Una falla del
// provider se loguea; la revocación local sigue valiendo.
func (s *Service) SignOut(ctx context.Context, token string, claims auth.Claims) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}

	if s.revoker != nil {
		s.revoker.Revoke(token, claims)
	}
	if s.provider == nil {
		return
	}

	if err := s.provider.SignOut(ctx, token); err != nil {
		s.log.Warn("provider sign-out failed", map[string]any{"user_id": claims.UserID, "error": err})
		return
	}
	s.log.Info("signed out", map[string]any{"user_id": claims.UserID})
}
