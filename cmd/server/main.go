package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/san98215/fitness-app/internal/api"
	"github.com/san98215/fitness-app/internal/config"
	"github.com/san98215/fitness-app/internal/logging"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/repository/mongo"
	"github.com/san98215/fitness-app/internal/repository/relational"
	"github.com/san98215/fitness-app/internal/service"
	"github.com/san98215/fitness-app/internal/session"
	"github.com/san98215/fitness-app/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// @title Fitness Tracker API
// @version 1.0
// @description API for logging workouts, browsing the exercise catalog and tracking progress.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name jwt
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	log := logging.New(cfg.Log)
	log.WithFields(logrus.Fields{
		"address": cfg.Server.Address,
		"mode":    cfg.Server.Mode,
		"driver":  cfg.Database.Driver,
	}).Info("starting fitness app server")

	// --- Database Connection ---
	store, closeStore, err := openStore(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("could not open database")
	}
	defer closeStore()
	log.Info("database connection established")

	// --- Redis (optional) ---
	var (
		redisClient *redis.Client
		denylist    session.Denylist = session.NopDenylist{}
	)
	if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err = session.ConnectRedis(ctx, cfg.Redis)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("could not connect to redis")
		}
		defer redisClient.Close()
		denylist = session.NewRedisDenylist(redisClient)
		log.Info("redis connected, session revocation and rate limiting enabled")
	}

	// --- Initialize Storage (optional) ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize S3 storage")
		}
	} else {
		log.Warn("s3 bucket not configured, workout media disabled")
	}

	// --- Initialize Services ---
	tokens := session.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	authService := service.NewAuthService(store.Users(), tokens, denylist, log)
	exerciseService := service.NewExerciseService(store.Exercises())
	workoutStore := service.NewWorkoutStore(store)
	workoutService := service.NewWorkoutService(workoutStore, store.Media(), fileStorage, log)
	queryService := service.NewWorkoutQueryService(workoutStore, store.Workouts())
	var mediaService service.MediaService
	if fileStorage != nil {
		mediaService = service.NewMediaService(workoutService, store.Media(), fileStorage, log)
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	api.SetupRoutes(router, api.Dependencies{
		Config:   cfg,
		Log:      log,
		Auth:     authService,
		Exercise: exerciseService,
		Workout:  workoutService,
		Query:    queryService,
		Media:    mediaService,
		Redis:    redisClient,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// in-flight requests get 5 seconds to finish
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	log.Info("server exiting")
}

// openStore connects the configured backend and prepares its schema. The
// returned func releases the connection.
func openStore(cfg config.DatabaseConfig, log *logrus.Logger) (repository.Store, func(), error) {
	if cfg.Driver == "mongo" {
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := mongo.DisconnectDB(client); err != nil {
				log.WithError(err).Error("failed to disconnect mongo")
			}
		}
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			closeFn()
			return nil, nil, err
		}
		return mongo.NewStore(client, db), closeFn, nil
	}

	db, err := relational.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := relational.Close(db); err != nil {
			log.WithError(err).Error("failed to close database")
		}
	}
	if err := relational.Migrate(db); err != nil {
		closeFn()
		return nil, nil, err
	}
	return relational.NewStore(db), closeFn, nil
}
