package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yishak-cs/studyhub/internal/database"
	"github.com/yishak-cs/studyhub/internal/handlers"
	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/search"
	"github.com/yishak-cs/studyhub/internal/services"
	"github.com/yishak-cs/studyhub/internal/textgen"
	"github.com/yishak-cs/studyhub/pkg/helper"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	config := helper.LoadConfigFromEnv()
	logging.Init(logging.Config{Level: config.LogLevel, Format: config.LogFormat})
	if envErr != nil {
		logging.Debug().Err(envErr).Msg("no .env file loaded")
	}

	// Initialize Neo4j client
	neo4jClient, err := database.NewNeo4jClient(config.Neo4j)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to Neo4j")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := neo4jClient.Close(ctx); err != nil {
			logging.Error().Err(err).Msg("error closing Neo4j connection")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	importer := database.NewImporter(neo4jClient)
	if err := importer.EnsureSchema(ctx); err != nil {
		cancel()
		logging.Fatal().Err(err).Msg("schema setup failed")
	}
	if config.SeedDataURL != "" {
		if err := importer.ImportAllData(ctx, config.SeedDataURL); err != nil {
			cancel()
			logging.Fatal().Err(err).Msg("import failed")
		}
		status, err := importer.GetImportStatus(ctx)
		if err != nil {
			logging.Warn().Err(err).Msg("failed to get import status")
		} else {
			logging.Info().Interface("counts", status).Msg("seed data imported")
		}
	}
	cancel()

	// Optional collaborators stay nil interfaces when unconfigured
	var generator services.TextGenerator
	if config.TextGen.URL != "" {
		generator = textgen.NewClient(config.TextGen)
	} else {
		logging.Info().Msg("TEXTGEN_URL not set, AI suggestions disabled")
	}
	var enricher services.Enricher
	if config.Search.URL != "" {
		enricher = search.NewClient(config.Search)
	}

	// Initialize services
	resourceRepo := database.NewResourceRepository(neo4jClient)
	feedbackRepo := database.NewFeedbackRepository(neo4jClient)
	recommendationService := services.NewRecommendationService(resourceRepo, feedbackRepo, generator, enricher, config.Recommendations)
	resourceService := services.NewResourceService(resourceRepo, config.Recommendations)

	apiHandler := handlers.NewAPIHandler(recommendationService, resourceService, neo4jClient)

	// Setup Gin router
	if strings.EqualFold(config.LogLevel, "debug") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.CORS(), handlers.Metrics(), handlers.RequestLogger())

	apiHandler.SetupRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", config.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	logging.Info().Msg("server exited properly")
}
