package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bnin/database"
	"bnin/internal/assistant"
	"bnin/internal/config"
	"bnin/internal/logger"
	"bnin/internal/microservices/http-api/dto"
	"bnin/internal/microservices/http-api/handler"
	"bnin/internal/microservices/http-api/middleware"
	"bnin/internal/microservices/http-api/repository"
	"bnin/internal/microservices/http-api/service"
	"bnin/internal/recommendation"
	"bnin/internal/weather"
)

const shutdownTimeout = 30 * time.Second

// services groups everything the router hands to handlers.
type services struct {
	recommendations service.RecommendationService
	assistant       service.AssistantService
	catalog         service.CatalogService
	favorites       service.FavoriteService
	preferences     service.PreferenceService
	tokens          service.TokenService
}

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidators()

	// 2. Connect to the database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	catalogRepo := repository.NewCatalogRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// 3. Model snapshots
	var store recommendation.ModelStore
	switch cfg.ModelStore {
	case "redis":
		redisStore, err := recommendation.NewRedisModelStore(cfg.RedisURL, cfg.RedisPassword, cfg.ModelRedisKey)
		if err != nil {
			log.Fatal("Failed to connect to redis", "error", err)
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = recommendation.NewFileModelStore(cfg.ModelPath)
	}

	train := recommendation.DefaultTrainConfig()
	train.Epochs = cfg.TrainEpochs
	train.BatchSize = cfg.TrainBatchSize
	train.ValidationSplit = cfg.TrainValidationSplit
	train.Seed = uint64(cfg.TrainSeed)

	engine := recommendation.NewEngine(catalogRepo, feedbackRepo, userRepo, store, recommendation.Config{
		RetrainThreshold: cfg.RetrainThreshold,
		RetrainWindow:    cfg.RetrainWindow,
		AsyncRetrain:     cfg.RetrainAsync,
		Train:            train,
	}, log)
	defer engine.Close()

	// 4. Assistant; weather lookups are skipped without an API key
	var weatherProvider assistant.WeatherProvider
	if cfg.WeatherAPIKey != "" {
		weatherProvider = weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey, cfg.WeatherTimeout, log)
	} else {
		log.Warn("WEATHER_API_KEY not set, live weather lookups disabled")
	}
	chat := assistant.New(engine, catalogRepo, userRepo, feedbackRepo, weatherProvider, log)

	svc := services{
		recommendations: service.NewRecommendationService(engine),
		assistant:       service.NewAssistantService(chat),
		catalog:         service.NewCatalogService(catalogRepo),
		favorites:       service.NewFavoriteService(favoriteRepo, catalogRepo),
		preferences:     service.NewPreferenceService(userRepo),
	}
	if cfg.JWTSecret != "" {
		svc.tokens = service.NewTokenService(cfg.JWTSecret)
	}

	// 5. Setup Gin
	r := setupRouter(svc, cfg, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server running", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
	}
}

func setupRouter(svc services, cfg *config.Config, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/check-conn", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message": "API is alive",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(svc.tokens))

	handler.NewRecommendationHandler(svc.recommendations).RegisterRoutes(api)
	handler.NewAssistantHandler(svc.assistant).RegisterRoutes(api)
	handler.NewCatalogHandler(svc.catalog).RegisterRoutes(api)
	handler.NewFavoriteHandler(svc.favorites).RegisterRoutes(api)
	handler.NewPreferenceHandler(svc.preferences).RegisterRoutes(api)

	return r
}
