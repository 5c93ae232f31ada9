package journal

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
	r.Route("/journal", func(jr chi.Router) {
		jr.Post("/", createEntryHandler(svc))
		jr.Get("/", listEntriesHandler(svc))
		jr.Get("/{entryID}", getEntryHandler(svc))
		jr.Delete("/{entryID}", deleteEntryHandler(svc))
	})

	// Endpoint del oráculo: anota una entrada ya guardada.
	r.Post("/annotate", annotateHandler(svc))
}

type createEntryRequest struct {
	Content string `json:"content"`
}

type entryResponse struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Annotation *string   `json:"annotation"`
	CreatedAt  time.Time `json:"created_at"`
}

// createEntryResponse: la entrada ya está guardada aunque la anotación falle.
type createEntryResponse struct {
	Entry            entryResponse `json:"entry"`
	AnnotationStatus string        `json:"annotation_status" enums:"pending,annotated,failed"`
	Message          string        `json:"message,omitempty"`
	Replayed         bool          `json:"replayed"`
}

type annotateRequest struct {
	EntryID string `json:"entry_id"`
	Text    string `json:"text"`
}

type annotateResponse struct {
	GeneratedText string `json:"generated_text"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// createEntryHandler godoc
// @Summary Guardar entrada de diario
// @Description Guarda la entrada y pide un comentario de apoyo en background. Con `wait=true` espera el resultado y relee la entrada. Un reintento con el mismo `Idempotency-Key` devuelve la entrada original.
// @Tags journal
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param Idempotency-Key header string false "Clave de reintento por usuario"
// @Param wait query bool false "Esperar la anotación antes de responder"
// @Param payload body createEntryRequest true "Texto de la entrada"
// @Success 201 {object} createEntryResponse
// @Failure 400 {object} errorResponse "invalid json / content requerido"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 409 {object} errorResponse "idempotency key en uso"
// @Failure 500 {object} errorResponse "no se pudo guardar"
// @Router /journal [post]
func createEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		var req createEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Wrap(apperr.KindParse, "journal.create", err))
			return
		}

		sub, err := svc.Submit(r.Context(), claims.UserID, req.Content, r.Header.Get("Idempotency-Key"))
		if err != nil {
			writeError(w, err)
			return
		}

		wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
		if !wait {
			status, msg := submissionStatus(sub)
			writeJSON(w, http.StatusCreated, createEntryResponse{
				Entry:            toEntryResponse(sub.Entry),
				AnnotationStatus: status,
				Message:          msg,
				Replayed:         sub.Replayed,
			})
			return
		}

		e, out, err := svc.Settle(r.Context(), sub)
		if err != nil {
			// La entrada existe; respondemos con lo que tenemos.
			middleware.LoggerFrom(r.Context()).Warn("journal settle failed", map[string]any{"entry_id": sub.Entry.ID, "error": err})
			status, msg := submissionStatus(sub)
			writeJSON(w, http.StatusCreated, createEntryResponse{
				Entry:            toEntryResponse(e),
				AnnotationStatus: status,
				Message:          msg,
				Replayed:         sub.Replayed,
			})
			return
		}

		status, msg := outcomeStatus(e, out)
		writeJSON(w, http.StatusCreated, createEntryResponse{
			Entry:            toEntryResponse(e),
			AnnotationStatus: status,
			Message:          msg,
			Replayed:         sub.Replayed,
		})
	}
}

func submissionStatus(sub *Submission) (string, string) {
	out, done := sub.Outcome()
	if !done {
		if sub.Entry.Annotated() {
			return "annotated", ""
		}
		return "pending", ""
	}
	return outcomeStatus(sub.Entry, out)
}

func outcomeStatus(e Entry, out Outcome) (string, string) {
	switch {
	case out.Annotated() || e.Annotated():
		return "annotated", ""
	case out.Degraded():
		return "failed", out.Message()
	default:
		return "pending", ""
	}
}

// listEntriesHandler godoc
// @Summary Listar entradas de diario
// @Description Entradas del usuario, más nuevas primero. `before` (RFC3339) pagina por created_at.
// @Tags journal
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param limit query int false "Máximo de resultados (default 20, máx 100)"
// @Param before query string false "Cursor RFC3339"
// @Success 200 {array} entryResponse
// @Failure 400 {object} errorResponse "limit / before inválidos"
// @Failure 401 {object} errorResponse "unauthorized"
// @Router /journal [get]
func listEntriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		const op = "journal.list"
		q := r.URL.Query()

		limit := 0
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				writeError(w, apperr.Validation(op, "limit must be a positive integer"))
				return
			}
			limit = n
		}

		var before *time.Time
		if v := strings.TrimSpace(q.Get("before")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				writeError(w, apperr.Validation(op, "before must be RFC3339"))
				return
			}
			before = &t
		}

		items, err := svc.List(r.Context(), claims.UserID, limit, before)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getEntryHandler godoc
// @Summary Ver entrada de diario
// @Tags journal
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param entryID path string true "ID de la entrada"
// @Success 200 {object} entryResponse
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 404 {object} errorResponse "journal entry not found"
// @Router /journal/{entryID} [get]
func getEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		e, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "entryID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	}
}

// deleteEntryHandler godoc
// @Summary Borrar entrada de diario
// @Tags journal
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param entryID path string true "ID de la entrada"
// @Success 204
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 404 {object} errorResponse "journal entry not found"
// @Router /journal/{entryID} [delete]
func deleteEntryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "entryID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// annotateHandler godoc
// @Summary Generar comentario de apoyo
// @Description Llama al oráculo con `text` y guarda el resultado en la entrada indicada, que debe existir y no tener anotación.
// @Tags journal
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body annotateRequest true "Entrada y texto a comentar"
// @Success 200 {object} annotateResponse
// @Failure 400 {object} errorResponse "invalid json / campos requeridos"
// @Failure 401 {object} errorResponse "unauthorized"
// @Failure 404 {object} errorResponse "journal entry not found"
// @Failure 409 {object} errorResponse "ya anotada"
// @Failure 500 {object} errorResponse "no se pudo guardar la anotación"
// @Failure 502 {object} errorResponse "falla del oráculo"
// @Router /annotate [post]
func annotateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			writeError(w, apperr.ErrUnauthorized)
			return
		}

		var req annotateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.Wrap(apperr.KindParse, "journal.annotate", err))
			return
		}

		out, err := svc.Annotate(r.Context(), claims.UserID, req.EntryID, req.Text)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, annotateResponse{GeneratedText: out.Oracle.Text})
	}
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		Content:    e.Content,
		Annotation: e.Annotation,
		CreatedAt:  e.CreatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	writeJSON(w, apperr.HTTPStatus(kind), errorResponse{
		Error:   string(kind),
		Message: apperr.Message(err),
	})
}

// writeJSON está duplicado en los handlers de cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
