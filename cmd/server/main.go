package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/codeflix/catalog-admin-api/adapters/event"
	"github.com/codeflix/catalog-admin-api/adapters/filestore"
	httpAdapter "github.com/codeflix/catalog-admin-api/adapters/http"
	"github.com/codeflix/catalog-admin-api/adapters/persistence"
	"github.com/codeflix/catalog-admin-api/internal/application/service"
	castmemberUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/castmember"
	categoryUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/category"
	genreUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/genre"
	videoUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/video"
	"github.com/codeflix/catalog-admin-api/internal/application/validation"
	"github.com/codeflix/catalog-admin-api/internal/config"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
	"github.com/codeflix/catalog-admin-api/pkg/tracing"
)

func main() {
	fmt.Println("Start Catalog Admin API Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	// Optional infrastructure: the API stays usable without cache, events
	// or tracing, so these only warn.
	var videoCache service.VideoCache
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Redis unavailable, video cache disabled")
	} else {
		defer redisClient.Close()
		videoCache = persistence.NewRedisVideoCache(redisClient, appLogger)
	}

	var publisher event.Publisher
	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Warn("Kafka unavailable, catalog events disabled")
	} else {
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "catalog-admin-api")
		if err != nil {
			appLogger.Warn("tracing unavailable")
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	// File store driver
	var store service.FileStore
	switch cfg.Storage.Driver {
	case "cloudinary":
		store, err = filestore.NewCloudinaryAdapter(cfg)
	default:
		store, err = filestore.NewLocalAdapter(cfg)
	}
	if err != nil {
		log.Fatalf("FATAL: failed to initialize file store: %v", err)
	}

	// Repositories
	videoRepo := persistence.NewPostgresVideoRepo(dbPool, appLogger)
	categoryRepo := persistence.NewPostgresCategoryRepo(dbPool, appLogger)
	genreRepo := persistence.NewPostgresGenreRepo(dbPool, appLogger)
	castMemberRepo := persistence.NewPostgresCastMemberRepo(dbPool, appLogger)
	transactor := persistence.NewPgxTransactor(dbPool, appLogger)

	// Validation gates
	videoRules := validation.NewVideoRules(categoryRepo, genreRepo)
	genreRules := validation.NewGenreRules(categoryRepo)

	// Use cases
	createVideoUseCase := videoUC.NewCreateVideoUseCase(videoRepo, videoRules, transactor, store, videoCache, publisher, appLogger)
	updateVideoUseCase := videoUC.NewUpdateVideoUseCase(videoRepo, videoRules, transactor, store, videoCache, publisher, appLogger)
	getVideoUseCase := videoUC.NewGetVideoUseCase(videoRepo, videoCache)
	listVideosUseCase := videoUC.NewListVideosUseCase(videoRepo)
	deleteVideoUseCase := videoUC.NewDeleteVideoUseCase(videoRepo, videoCache, publisher, appLogger)
	categoryUseCase := categoryUC.NewCategoryUseCase(categoryRepo, appLogger)
	genreUseCase := genreUC.NewGenreUseCase(genreRepo, genreRules, transactor, appLogger)
	castMemberUseCase := castmemberUC.NewCastMemberUseCase(castMemberRepo, appLogger)

	// HTTP handlers
	uploadLimits := httpAdapter.UploadLimits{
		ThumbKB:   cfg.Upload.MaxThumbKB,
		BannerKB:  cfg.Upload.MaxBannerKB,
		TrailerKB: cfg.Upload.MaxTrailerKB,
		VideoKB:   cfg.Upload.MaxVideoKB,
	}
	videoHandler := httpAdapter.NewVideoHandler(
		createVideoUseCase,
		updateVideoUseCase,
		getVideoUseCase,
		listVideosUseCase,
		deleteVideoUseCase,
		store,
		uploadLimits,
		appLogger,
	)
	categoryHandler := httpAdapter.NewCategoryHandler(categoryUseCase, appLogger)
	genreHandler := httpAdapter.NewGenreHandler(genreUseCase, appLogger)
	castMemberHandler := httpAdapter.NewCastMemberHandler(castMemberUseCase, appLogger)

	// Router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(otelgin.Middleware("catalog-admin-api"))
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	if cfg.Storage.Driver != "cloudinary" {
		router.Static("/storage", cfg.Storage.BaseDir)
	}

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		videos := api.Group("/videos")
		{
			videos.GET("", videoHandler.ListVideos)
			videos.POST("", videoHandler.CreateVideo)
			videos.GET("/:id", videoHandler.GetVideo)
			videos.PUT("/:id", videoHandler.UpdateVideo)
			videos.DELETE("/:id", videoHandler.DeleteVideo)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		genres := api.Group("/genres")
		{
			genres.GET("", genreHandler.ListGenres)
			genres.POST("", genreHandler.CreateGenre)
			genres.GET("/:id", genreHandler.GetGenre)
			genres.PUT("/:id", genreHandler.UpdateGenre)
			genres.DELETE("/:id", genreHandler.DeleteGenre)
		}

		castMembers := api.Group("/cast_members")
		{
			castMembers.GET("", castMemberHandler.ListCastMembers)
			castMembers.POST("", castMemberHandler.CreateCastMember)
			castMembers.GET("/:id", castMemberHandler.GetCastMember)
			castMembers.PUT("/:id", castMemberHandler.UpdateCastMember)
			castMembers.DELETE("/:id", castMemberHandler.DeleteCastMember)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
