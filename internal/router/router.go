package router

import (
	"context"
	"database/sql"
	"net/http"

	mem "mood-journal/internal/adapters/storage/memory"
	pg "mood-journal/internal/adapters/storage/postgres"
	"mood-journal/internal/config"
	"mood-journal/internal/domain/journal"
	"mood-journal/internal/domain/moods"
	"mood-journal/internal/domain/session"
	"mood-journal/internal/middleware"
	"mood-journal/internal/platform/logger"
	"mood-journal/internal/platform/metrics"
	"mood-journal/internal/ports/auth"
	"mood-journal/internal/ports/oracle"

	_ "mood-journal/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	AuthProvider auth.Provider     // puede ser nil: /auth/magic-link responde error
	Revoker      auth.Revoker

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Annotator oracle.Annotator // nil = anotaciones deshabilitadas
	Logger    logger.Logger
	Metrics   *metrics.Metrics

	Journal     config.JournalConfig
	RateLimit   config.RateLimitConfig
	RedirectURL string
}

// Router es el handler HTTP más los servicios que necesitan ciclo de vida.
type Router struct {
	http.Handler
	journal *journal.Service
}

func NewRouter(opts Options) *Router {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics(opts.Metrics))

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		journalRepo journal.Repository
		moodsRepo   moods.Repository
	)
	if opts.DB != nil {
		journalRepo = pg.NewJournalRepo(opts.DB)
		moodsRepo = pg.NewMoodsRepo(opts.DB)
	} else {
		journalRepo = mem.NewJournalRepo()
		moodsRepo = mem.NewMoodsRepo()
	}

	// Services por módulo
	journalSvc := journal.NewService(journalRepo, opts.Annotator, journal.Options{
		Logger:              log,
		Metrics:             opts.Metrics,
		ReadAfterWriteDelay: opts.Journal.ReadAfterWriteDelay,
		IdempotencyTTL:      opts.Journal.IdempotencyTTL,
		DefaultListLimit:    opts.Journal.DefaultListLimit,
		MaxListLimit:        opts.Journal.MaxListLimit,
	})
	moodsSvc := moods.NewService(moodsRepo, log)
	sessionSvc := session.NewService(opts.AuthProvider, opts.Revoker, session.Options{
		RedirectURL: opts.RedirectURL,
		Logger:      log,
	})

	// Rutas por módulo
	session.RegisterRoutes(r, sessionSvc, middleware.RateLimitPerIP(opts.RateLimit.SignInPerMinute, opts.RateLimit.SignInBurst))
	journal.RegisterRoutes(r, journalSvc)
	moods.RegisterRoutes(r, moodsSvc)

	return &Router{Handler: r, journal: journalSvc}
}

// Drain espera las anotaciones en curso. Se llama en el shutdown, después
// de cerrar el server.
func (rt *Router) Drain(ctx context.Context) error {
	return rt.journal.Drain(ctx)
}
