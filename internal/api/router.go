// Package api assembles the chi router: middleware stack, CORS policy and
// the route table.
package api

import (
	"net/http"

	"github.com/foryourmind/server/internal/api/handlers"
	"github.com/foryourmind/server/internal/api/middleware"
	"github.com/foryourmind/server/internal/auth"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/models"
	"github.com/foryourmind/server/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Store          storage.Store
	AuthService    *auth.Service
	Logger         logging.Logger
	AllowedOrigins []string
	Production     bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(cfg.AuthService, cfg.Production)
	userHandler := handlers.NewUserHandler(cfg.Store)
	journalHandler := handlers.NewJournalHandler(cfg.Store)
	moodHandler := handlers.NewMoodHandler(cfg.Store)
	rantHandler := handlers.NewRantHandler(cfg.Store)
	therapistHandler := handlers.NewTherapistHandler(cfg.Store)
	appointmentHandler := handlers.NewAppointmentHandler(cfg.Store)
	courseHandler := handlers.NewCourseHandler(cfg.Store)
	orgHandler := handlers.NewOrganizationHandler(cfg.Store)
	buddyHandler := handlers.NewBuddyHandler(cfg.Store)
	assessmentHandler := handlers.NewAssessmentHandler(cfg.Store)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)

		// The venting wall is reachable without a session so a post can
		// never be tied to an account.
		r.Route("/rants", func(r chi.Router) {
			r.Get("/", rantHandler.List)
			r.Post("/", rantHandler.Create)
			r.Post("/{id}/support", rantHandler.Support)
		})

		r.Get("/therapists", therapistHandler.List)
		r.Get("/therapists/{id}", therapistHandler.Get)
		r.Get("/courses", courseHandler.List)
		r.Get("/courses/{id}", courseHandler.Get)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.AuthService))

			r.Get("/me", userHandler.Me)
			r.Patch("/me", userHandler.UpdateMe)
			r.Delete("/me", userHandler.DeleteMe)

			r.Route("/journals", func(r chi.Router) {
				r.Get("/", journalHandler.List)
				r.Post("/", journalHandler.Create)
				r.Get("/{id}", journalHandler.Get)
				r.Patch("/{id}", journalHandler.Update)
				r.Delete("/{id}", journalHandler.Delete)
			})

			r.Route("/moods", func(r chi.Router) {
				r.Get("/", moodHandler.List)
				r.Post("/", moodHandler.Create)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", appointmentHandler.List)
				r.Post("/", appointmentHandler.Create)
				r.Get("/{id}", appointmentHandler.Get)
				r.Patch("/{id}", appointmentHandler.Update)
			})

			r.Post("/courses/{id}/progress", courseHandler.SaveProgress)
			r.Get("/courses/progress", courseHandler.ListProgress)

			r.Route("/buddies", func(r chi.Router) {
				r.Get("/suggestions", buddyHandler.Suggestions)
				r.Get("/matches", buddyHandler.ListMatches)
				r.Post("/matches", buddyHandler.CreateMatch)
				r.Patch("/matches/{id}", buddyHandler.UpdateMatchStatus)
			})

			r.Route("/assessments", func(r chi.Router) {
				r.Get("/", assessmentHandler.List)
				r.Get("/history", assessmentHandler.History)
				r.Get("/latest", assessmentHandler.Latest)
				r.Get("/{id}", assessmentHandler.Get)
				r.Post("/{id}/submit", assessmentHandler.Submit)
			})

			r.Route("/organizations", func(r chi.Router) {
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Post("/", orgHandler.Create)
				r.Get("/{id}", orgHandler.Get)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Patch("/{id}", orgHandler.Update)
				r.With(middleware.RequireRole(models.RoleManager, models.RoleAdmin)).
					Get("/{id}/employees", orgHandler.ListEmployees)
				r.With(middleware.RequireRole(models.RoleManager, models.RoleAdmin)).
					Post("/{id}/employees", orgHandler.AddEmployee)
				r.With(middleware.RequireRole(models.RoleManager, models.RoleAdmin)).
					Get("/{id}/metrics", orgHandler.Metrics)
			})
		})
	})

	return r
}
