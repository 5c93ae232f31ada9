package moods

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mood-journal/internal/middleware"
	"mood-journal/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/moods", func(mr chi.Router) {
		mr.Post("/", createMoodHandler(svc))
		mr.Get("/", listMoodsHandler(svc))
		mr.Get("/labels", listLabelsHandler())
		mr.Delete("/{moodID}", deleteMoodHandler(svc))
	})
}

type createMoodRequest struct {
	Mood string `json:"mood" enums:"happy,calm,neutral,tired,anxious,sad,angry"`
	Note string `json:"note"` // opcional
}

type moodResponse struct {
	ID        string    `json:"id"`
	Mood      Label     `json:"mood"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// createMoodHandler godoc
// @Summary Registrar estado de ánimo
// @Tags moods
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createMoodRequest true "Etiqueta y nota opcional (máx 1000)"
// @Success 201 {object} moodResponse
// @Failure 400 {object} errorResponse "invalid json / mood inválido / nota muy larga"
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /moods [post]
func createMoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		var req createMoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Wrap(apperr.KindParse, "moods.create", err))
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, CreateInput{Mood: req.Mood, Note: req.Note})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toMoodResponse(m))
	}
}

// listMoodsHandler godoc
// @Summary Listar estados de ánimo
// @Tags moods
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} moodResponse
// @Failure 400 {object} errorResponse "limit inválido"
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /moods [get]
func listMoodsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		limit := 0
		if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, apperr.Validation("moods.list", "limit must be a positive integer"))
				return
			}
			limit = n
		}

		items, err := svc.List(r.Context(), claims.UserID, limit)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]moodResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMoodResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listLabelsHandler godoc
// @Summary Etiquetas de ánimo disponibles
// @Tags moods
// @Produce json
// @Success 200 {array} string
// @Router /moods/labels [get]
func listLabelsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, Labels)
	}
}

// deleteMoodHandler godoc
// @Summary Borrar estado de ánimo
// @Tags moods
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param moodID path string true "ID del registro"
// @Success 204
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 404 {object} errorResponse "mood entry not found"
// @Router /moods/{moodID} [delete]
func deleteMoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "moodID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toMoodResponse(m Mood) moodResponse {
	return moodResponse{
		ID:        m.ID,
		Mood:      m.Label,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
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
