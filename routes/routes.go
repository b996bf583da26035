package routes

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hirohaya/racket-hero/handlers"
	"github.com/hirohaya/racket-hero/middleware"
	"github.com/hirohaya/racket-hero/models"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPISpec []byte

// SetupRoutes mounts every HTTP endpoint on the given router.
//
// Public routes cover reads of active events, standings, and the live
// ranking feed. Mutations require a bearer token; per-event organizer
// checks happen inside the handlers.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	rankingHandler *handlers.RankingHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	wsHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", healthHandler.Check)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openAPISpec)
	})
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/forgot-password", authHandler.ForgotPassword)
		r.Post("/reset-password", authHandler.ResetPassword)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/me", userHandler.GetCurrent)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin))
			r.Get("/", userHandler.List)
			r.Delete("/{id}", userHandler.Deactivate)
		})
	})

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.ListActive)
		r.Get("/{eventID}", eventHandler.GetByID)
		r.Get("/{eventID}/ranking", rankingHandler.GetByEvent)
		r.Get("/{eventID}/players", playerHandler.ListByEvent)
		r.Get("/{eventID}/matches", matchHandler.ListByEvent)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/{eventID}/organizers", eventHandler.ListOrganizers)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleOrganizer, models.RoleAdmin))
				r.Post("/", eventHandler.Create)
			})

			r.Put("/{eventID}", eventHandler.Update)
			r.Delete("/{eventID}", eventHandler.Deactivate)

			r.Post("/{eventID}/organizers", eventHandler.AddOrganizer)
			r.Delete("/{eventID}/organizers/{userID}", eventHandler.RemoveOrganizer)

			r.Post("/{eventID}/players", playerHandler.Enroll)

			r.Post("/{eventID}/matches", matchHandler.Create)
			r.Put("/{eventID}/matches/{matchID}", matchHandler.Update)
			r.Delete("/{eventID}/matches/{matchID}", matchHandler.Delete)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Put("/{playerID}", playerHandler.Rename)
		r.Delete("/{playerID}", playerHandler.Remove)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.Authorize(models.RoleAdmin))

		r.Get("/dashboard", adminHandler.DashboardStats)

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", adminHandler.ListBackups)
			r.Post("/", adminHandler.CreateBackup)
			r.Post("/{filename}/restore", adminHandler.RestoreBackup)
			r.Delete("/{filename}", adminHandler.DeleteBackup)
		})
	})

	router.Get("/ws/events/{eventID}/ranking", wsHandler.ServeWs)
}
