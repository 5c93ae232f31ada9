package session

import (
	"encoding/json"
	"net/http"

	"mood-journal/internal/middleware"
	"mood-journal/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth. limit se aplica solo al pedido de link.
func RegisterRoutes(r chi.Router, svc *Service, limit func(http.Handler) http.Handler) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	r.Route("/auth", func(ar chi.Router) {
		ar.With(limit).Post("/magic-link", requestLinkHandler(svc))
		ar.Get("/session", sessionHandler(svc))
		ar.Post("/sign-out", signOutHandler(svc))
	})
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

type statusResponse struct {
	Status string `json:"status" enums:"sent,signed_in,signed_out"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// requestLinkHandler godoc
// @Summary Pedir link de acceso
// @Description El provider de auth manda un email con el link de acceso (passwordless). Limitado por IP.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body magicLinkRequest true "Email del usuario"
// @Success 202 {object} statusResponse
// @Failure 400 {object} errorResponse "invalid json / email inválido"
// @Failure 429 {object} errorResponse "too many requests"
// @Failure 500 {object} errorResponse "provider no disponible"
// @Router /auth/magic-link [post]
func requestLinkHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req magicLinkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Wrap(apperr.KindParse, "session.magic_link", err))
			return
		}

		if err := svc.RequestLink(r.Context(), req.Email); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, statusResponse{Status: "sent"})
	}
}

// sessionHandler godoc
// @Summary Estado de sesión
// @Tags auth
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} statusResponse
// @Router /auth/session [get]
func sessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := svc.Status(middleware.GetClaims(r.Context()))
		if !st.SignedIn {
			writeJSON(w, http.StatusOK, statusResponse{Status: "signed_out"})
			return
		}
		writeJSON(w, http.StatusOK, statusResponse{
			Status: "signed_in",
			UserID: st.UserID,
			Email:  st.Email,
		})
	}
}

// signOutHandler godoc
// @Summary Cerrar sesión
// @Description Revoca el token actual. Sin token responde igual (idempotente).
// @Tags auth
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {object} statusResponse
// @Router /auth/sign-out [post]
func signOutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		svc.SignOut(r.Context(), middleware.BearerToken(r), claims)
		writeJSON(w, http.StatusOK, statusResponse{Status: "signed_out"})
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	writeJSON(w, apperr.HTTPStatus(kind), errorResponse{
		Error:   string(kind),
		Message: apperr.Message(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
