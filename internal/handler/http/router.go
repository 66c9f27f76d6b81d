package http

import (
	"log/slog"
	"os"

	"github.com/Sniperthink-v1/hrms-attendance-go/internal/config"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/handler/http/middleware"
	"github.com/Sniperthink-v1/hrms-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, JWTService jwt.Service, markingHandler MarkingHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/marking/sessions", func(r chi.Router) {
				r.Post("/", markingHandler.CreateSession)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", markingHandler.GetSession)
					r.Delete("/", markingHandler.CloseSession)
					r.Post("/mark-all", markingHandler.MarkAll)
					r.Post("/save", markingHandler.Save)

					r.Route("/entries/{employeeID}", func(r chi.Router) {
						r.Patch("/status", markingHandler.SetStatus)
						r.Patch("/clock", markingHandler.SetClockTimes)
						r.Post("/penalty-revert", markingHandler.RevertPenalty)
					})
				})
			})
		})
	})
	return r
}
