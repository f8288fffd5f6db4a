package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"crowdfund/internal/database"
	"crowdfund/internal/handlers"
	"crowdfund/internal/middlewares"
	"crowdfund/internal/repositories"
	"crowdfund/internal/routes"
	"crowdfund/internal/services"
)

func NewLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if os.Getenv("APP_ENV") == "development" {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
}

func NewServer(logger zerolog.Logger) (*http.Server, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port == 0 {
		port = 8080
	}

	pool, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.RunMigrations(migrateCtx, pool); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	logger.Info().Msg("database ready")

	// Dependency injection
	projectRepo := repositories.NewProjectRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	donationRepo := repositories.NewDonationRepository(pool)
	commentRepo := repositories.NewCommentRepository(pool)
	likeRepo := repositories.NewLikeRepository(pool)

	discoveryService := services.NewDiscoveryService(projectRepo, categoryRepo)
	analyticsService := services.NewAnalyticsService(projectRepo, donationRepo)
	recommendationService := services.NewRecommendationService(projectRepo, donationRepo)
	donationService := services.NewDonationService(projectRepo, donationRepo, logger)
	projectService := services.NewProjectService(projectRepo, donationRepo, commentRepo, likeRepo, categoryRepo, logger)
	commentService := services.NewCommentService(projectRepo, commentRepo)
	likeService := services.NewLikeService(projectRepo, likeRepo)
	categoryService := services.NewCategoryService(categoryRepo, projectRepo)

	projectHandler := handlers.NewProjectHandler(projectService, discoveryService)
	donationHandler := handlers.NewDonationHandler(donationService, analyticsService)
	commentHandler := handlers.NewCommentHandler(commentService)
	likeHandler := handlers.NewLikeHandler(likeService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	statsHandler := handlers.NewStatsHandler(analyticsService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)

	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestLog(logger))
	router.Use(middlewares.Identity())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-User-ID"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	routes.RegisterRoutes(router, projectHandler, donationHandler, commentHandler, likeHandler, categoryHandler, statsHandler, recommendationHandler)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}
