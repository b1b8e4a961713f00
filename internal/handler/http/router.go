package http

import (
	"log/slog"
	"os"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/config"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/handler/http/middleware"
	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	authHandler AuthHandler,
	profileHandler ProfileHandler,
	absenceHandler AbsenceHandler,
	taskHandler TaskHandler,
	teamHandler TeamHandler,
	dashboardHandler DashboardHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "deskcontrol"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)

			if cfg.OAuth2Google.Enabled {
				r.Get("/login/oauth/google", authHandler.LoginWithGoogle)
				r.Get("/oauth/callback/google", authHandler.OAuthCallbackGoogle)
			}
		})

		// Token travels as a query parameter, not a header, so the stream
		// endpoint sits outside the Verifier group.
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/profiles", func(r chi.Router) {
				r.Get("/my", profileHandler.GetMy)
				r.Put("/my", profileHandler.UpdateMy)
				r.Get("/analysts", profileHandler.ListAnalysts)

				// Lead only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Put("/{userID}/shift", profileHandler.UpdateShift)
					r.Delete("/{userID}", profileHandler.DeleteAnalyst)
				})
			})

			r.Route("/absences", func(r chi.Router) {
				r.Post("/", absenceHandler.Create)
				r.Get("/my", absenceHandler.ListMy)
				r.Get("/calendar", absenceHandler.Calendar)
				r.Post("/{id}/cancel", absenceHandler.Cancel)
				r.Post("/{id}/request-cancellation", absenceHandler.RequestCancellation)
				r.Delete("/{id}", absenceHandler.Delete)

				// Lead only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/", absenceHandler.List)
					r.Post("/{id}/approve", absenceHandler.Approve)
					r.Post("/{id}/reject", absenceHandler.Reject)
					r.Post("/{id}/approve-cancellation", absenceHandler.ApproveCancellation)
					r.Post("/{id}/reject-cancellation", absenceHandler.RejectCancellation)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Post("/", taskHandler.Create)
				r.Get("/my", taskHandler.ListMy)
				r.Post("/{id}/start", taskHandler.Start)
				r.Post("/{id}/complete", taskHandler.Complete)
				r.Delete("/{id}", taskHandler.Delete)

				// Lead only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/", taskHandler.List)
				})
			})

			r.Get("/team/status", teamHandler.Status)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/analyst", dashboardHandler.Analyst)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireLead)
					r.Get("/lead", dashboardHandler.Lead)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/{id}/read", notificationHandler.MarkAsRead)
				r.Get("/stream-token", notificationHandler.GetStreamToken)
			})
		})
	})

	return r
}
