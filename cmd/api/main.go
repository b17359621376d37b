package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"landmark-map/internal/api"
	"landmark-map/internal/api/handlers"
	"landmark-map/internal/config"
	"landmark-map/internal/models"
	"landmark-map/internal/repository"
	"landmark-map/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Get underlying *sql.DB instance for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get underlying *sql.DB instance:", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("Failed to create upload directory:", err)
	}

	cacheService, err := services.NewRedisCacheService(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	landmarkRepo := repository.NewLandmarkRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cacheService, cfg.JWTSecret, cfg.SessionTTL)
	wikipediaService := services.NewWikipediaService(cfg.WikipediaBaseURL)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.AllowedExtensions)
	landmarkService := services.NewLandmarkService(landmarkRepo, userRepo, wikipediaService, uploadService)
	bookmarkService := services.NewBookmarkService(landmarkRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	landmarkHandler := handlers.NewLandmarkHandler(landmarkService)
	bookmarkHandler := handlers.NewBookmarkHandler(bookmarkService)

	handler := api.SetupRoutes(cfg, authService, authHandler, landmarkHandler, bookmarkHandler)

	// Create server with timeouts
	srv := &http.Server{
		Handler:      handler,
		Addr:         ":" + cfg.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

func initDB(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Configure GORM logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open connection
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Landmark{}); err != nil {
		return nil, fmt.Errorf("error migrating database: %v", err)
	}

	return db, nil
}
