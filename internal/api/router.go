package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/mini-social-be/internal/api/handlers"
	"github.com/isdelr/mini-social-be/internal/auth"
	"github.com/isdelr/mini-social-be/internal/services"
	"github.com/isdelr/mini-social-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(hub *websocket.Hub, identityService services.IdentityServiceProvider, postService services.PostServiceProvider, eventService services.EventServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService)
	postHandler := handlers.NewPostHandler(postService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket endpoint for live feed updates
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.With(auth.Middleware()).Get("/me", authHandler.Me)
		})

		r.Route("/posts", func(r chi.Router) {
			// The feed itself is public; mutations need a session.
			r.Get("/", postHandler.GetFeed)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware())
				r.Post("/", postHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Delete("/", postHandler.Delete)
					r.Post("/like", postHandler.ToggleLike)
					r.Post("/comments", postHandler.AddComment)
				})
			})
		})

		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
