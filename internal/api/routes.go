package api

import (
	"net/http"

	"github.com/san98215/fitness-app/internal/config"
	"github.com/san98215/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Dependencies is everything SetupRoutes wires into handlers.
type Dependencies struct {
	Config   config.Config
	Log      logrus.FieldLogger
	Auth     service.AuthService
	Exercise service.ExerciseService
	Workout  service.WorkoutService
	Query    service.WorkoutQueryService
	// Media is nil when object storage is not configured.
	Media service.MediaService
	// Redis is nil when rate limiting is not configured.
	Redis *redis.Client
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	resp := responder{log: deps.Log, production: deps.Config.Server.IsProduction()}
	cookie := cookieSettings{Name: deps.Config.Cookie.Name, Secure: deps.Config.Server.IsProduction()}

	authHandler := NewAuthHandler(deps.Auth, cookie, resp)
	exerciseHandler := NewExerciseHandler(deps.Exercise, resp)
	workoutHandler := NewWorkoutHandler(deps.Workout, deps.Query, resp)

	authMiddleware := AuthMiddleware(deps.Auth, cookie.Name, resp)

	router.Use(RequestLogger(deps.Log), Metrics())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := router.Group("/auth")
	{
		if deps.Redis != nil {
			limit := deps.Config.RateLimit
			authGroup.Use(RateLimit(deps.Redis, limit.Requests, limit.Window, deps.Log))
		}
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		authGroup.GET("/me", authMiddleware, authHandler.Me)
	}

	apiGroup := router.Group("/api")

	exerciseGroup := apiGroup.Group("/exercises")
	{
		exerciseGroup.GET("", exerciseHandler.ListExercises)
		exerciseGroup.GET("/muscle-group/:muscleGroup", exerciseHandler.ListByMuscleGroup)
		exerciseGroup.GET("/category/:category", exerciseHandler.ListByCategory)
		exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
	}

	workoutGroup := apiGroup.Group("/workouts")
	workoutGroup.Use(authMiddleware)
	{
		workoutGroup.GET("", workoutHandler.ListWorkouts)
		workoutGroup.POST("", workoutHandler.CreateWorkout)
		workoutGroup.GET("/recent", workoutHandler.RecentWorkouts)
		workoutGroup.GET("/stats", workoutHandler.WorkoutStats)
		workoutGroup.GET("/:id", workoutHandler.GetWorkout)
		workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
		workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		workoutGroup.POST("/:id/exercises", workoutHandler.AddExercise)
		workoutGroup.PUT("/:id/exercises/:exerciseId/sets", workoutHandler.UpdateSets)
		workoutGroup.DELETE("/:id/exercises/:exerciseId", workoutHandler.RemoveExercise)

		if deps.Media != nil {
			mediaHandler := NewMediaHandler(deps.Media, resp)
			workoutGroup.POST("/:id/media/upload-url", mediaHandler.RequestUploadURL)
			workoutGroup.POST("/:id/media", mediaHandler.ConfirmUpload)
			workoutGroup.GET("/:id/media", mediaHandler.ListMedia)
			workoutGroup.DELETE("/:id/media/:mediaId", mediaHandler.DeleteMedia)
		}
	}
}
