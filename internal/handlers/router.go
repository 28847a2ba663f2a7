package handlers

import (
	"net/http"
	"slices"
	"strings"

	"event-media-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterConfig wires the handlers into the HTTP surface
type RouterConfig struct {
	Users         *UserHandler
	Admins        *AdminHandler
	Events        *EventHandler
	Media         *MediaHandler
	Tokens        middleware.TokenValidator
	AllowedOrigin []string
	// UploadsDir is served at /uploads when files are stored on local disk
	UploadsDir string
}

// NewRouter builds the chi router
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware(cfg.AllowedOrigin))
	r.Use(middleware.Authenticate(cfg.Tokens))

	// Identity
	r.Post("/register", cfg.Users.Register)
	r.Post("/login", cfg.Users.Login)

	r.Route("/users", func(r chi.Router) {
		r.Get("/check-email", cfg.Users.CheckEmail)
		r.Get("/{userId}", cfg.Users.GetUser)
		r.Put("/{userId}/profile", cfg.Users.UpdateProfile)
		r.Get("/{userId}/followers", cfg.Users.GetFollowers)
		r.Get("/{userId}/following", cfg.Users.GetFollowing)
		r.Post("/{userId}/follow", cfg.Users.Follow)
		r.Post("/{userId}/unfollow/{followerId}", cfg.Users.Unfollow)
		r.With(middleware.RequireAuth).Get("/{userId}/notifications", cfg.Users.GetNotifications)
	})

	r.Route("/admin/users", func(r chi.Router) {
		r.Get("/", cfg.Admins.ListUsers)
		r.Patch("/{userId}/verify", cfg.Admins.VerifyUser)
		r.Patch("/{userId}/unverify", cfg.Admins.UnverifyUser)
		r.Delete("/{userId}", cfg.Admins.DeleteUser)
	})

	// Media records
	r.Route("/api/media", func(r chi.Router) {
		r.Post("/upload", cfg.Media.Upload)
		r.Post("/presign", cfg.Media.Presign)
		r.Get("/{eventId}", cfg.Media.ListByEvent)
		r.Delete("/{mediaId}/delete", cfg.Media.Delete)
	})

	if cfg.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))
	}

	// Events
	r.Post("/events/create", cfg.Events.CreateEvent)
	r.Get("/get-events", cfg.Events.ListEvents)
	r.Get("/events/user/{userId}", cfg.Events.ListEventsByUser)
	r.Post("/events/{eventId}/authenticate", cfg.Events.Authenticate)
	r.Patch("/events/updateMedia", cfg.Events.UpdateMedia)
	r.Patch("/events/updateCoverPhoto", cfg.Events.UpdateCoverPhoto)
	r.Get("/event-media", cfg.Events.GetEventMedia)
	r.Get("/event/{eventId}", cfg.Events.GetEvent)
	r.Post("/event/{eventId}", cfg.Events.GetEvent)
	r.Put("/{eventId}", cfg.Events.UpdateEvent)
	r.Delete("/{eventId}", cfg.Events.DeleteEvent)
	r.Post("/{eventId}/follow", cfg.Events.FollowEvent)
	r.Post("/{eventId}/unfollow", cfg.Events.UnfollowEvent)
	r.Patch("/{eventId}/update-password", cfg.Events.UpdatePassword)

	return r
}

// corsMiddleware handles CORS. An empty list allows any origin.
func corsMiddleware(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(allowed) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(allowed, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", strings.Join([]string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
			}, ", "))
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
