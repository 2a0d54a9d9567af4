package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/barbatoslupus21/unisync-overview/internal/handlers"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
)

type Options struct {
	Auth        func(http.Handler) http.Handler
	CORSOrigins []string
}

func NewRouter(deps *handlers.Deps, opts Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.CSRFHeader},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	lh := handlers.NewLayoutHandlers(deps)
	nh := handlers.NewNoteHandlers(deps)
	ch := handlers.NewCalendarHandlers(deps)
	rh := handlers.NewRoleHandlers(deps)

	r.Route("/overview/api", func(r chi.Router) {
		if opts.Auth != nil {
			r.Use(opts.Auth)
		}
		r.Use(middleware.CSRF)

		r.Mount("/layout", lh.LayoutRoutes())
		r.Mount("/notes", nh.NoteRoutes())
		r.Mount("/calendar", ch.CalendarRoutes())
		r.Get("/roles/", rh.GetRoles)
		r.Get("/widget-types/", rh.GetWidgetTypes)
	})
	return r
}
