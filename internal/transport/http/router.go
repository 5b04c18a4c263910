package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-govjobs/internal/service"
	"github.com/pribylovaa/go-govjobs/internal/transport/http/handlers"
	"github.com/pribylovaa/go-govjobs/internal/transport/http/middleware"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// BulkTimeout - дедлайн пакетных admin-операций (batch/bulk/views).
	BulkTimeout time.Duration
	BasePath    string // например, "/api"; если пустой - роуты регистрируются на корне.
	// Auth - проверка admin-токенов. Пустой Secret отключает /admin целиком.
	Auth middleware.AuthOptions
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Recover(),            // паника -> 500 с request_id и записью в лог
		middleware.Metrics(),
	)
	root.Use(middleware.Timeout(middleware.TimeoutOptions{
		Default: opts.Timeout,
		Bulk:    opts.BulkTimeout,
	}))

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts.Auth)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts.Auth)
	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.AuthOptions) {
	// public
	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.ListAnnouncements)
		r.Get("/feed", h.Feed)
		r.Get("/cards", h.Cards)
		r.Get("/trending", h.Trending)
		r.Get("/deadlines", h.Deadlines)
		r.Get("/categories", h.Categories)
		r.Get("/organizations", h.Organizations)
		r.Get("/tags", h.Tags)
		r.Get("/slug/{slug}", h.BySlug)
	})

	if auth.Secret == "" {
		return
	}

	// admin
	r.Route("/admin/announcements", func(r chi.Router) {
		r.Use(middleware.AdminAuth(auth))

		r.Post("/", h.Create)
		r.Post("/lookup", h.Lookup)
		r.Post("/batch", h.BatchInsert)
		r.Patch("/batch", h.BatchUpdate)
		r.Put("/bulk", h.BulkUpsert)
		r.Post("/views", h.IncrementViews)

		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/deactivate", h.Deactivate)
	})
}
