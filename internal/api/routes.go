package api

import (
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"landmark-map/internal/api/handlers"
	"landmark-map/internal/config"
	"landmark-map/internal/middleware"
	"landmark-map/internal/services"
)

func SetupRoutes(
	cfg *config.Config,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	landmarkHandler *handlers.LandmarkHandler,
	bookmarkHandler *handlers.BookmarkHandler,
) http.Handler {
	router := mux.NewRouter()
	requireAuth := middleware.AuthMiddleware(authService)

	// Session routes
	router.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	router.Handle("/auth/logout", requireAuth(http.HandlerFunc(authHandler.Logout))).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Landmark routes; listing is public, submission is not
	router.HandleFunc("/api/landmarks", landmarkHandler.ListLandmarks).Methods("GET")
	router.Handle("/api/landmarks", requireAuth(http.HandlerFunc(landmarkHandler.CreateLandmark))).Methods("POST")
	router.Handle("/api/bookmarks", requireAuth(http.HandlerFunc(bookmarkHandler.GetBookmarks))).Methods("GET")

	// Map UI shell and assets
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticDir, "index.html"))
	}).Methods("GET")

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return corsMiddleware.Handler(middleware.LoggingMiddleware(router))
}
