package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/san98215/fitness-app/internal/config"
	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/repository/relational"
	"github.com/san98215/fitness-app/internal/service"
	"github.com/san98215/fitness-app/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testPassword = "Sup3r$ecret"

type testServer struct {
	router *gin.Engine
	store  repository.Store
	files  *stubStorage
	redis  *miniredis.Miniredis
}

type serverOption func(*config.Config, *Dependencies)

func withRateLimit(requests int) serverOption {
	return func(cfg *config.Config, _ *Dependencies) {
		cfg.RateLimit = config.RateLimitConfig{Requests: requests, Window: time.Minute}
	}
}

func withExerciseService(svc service.ExerciseService) serverOption {
	return func(_ *config.Config, deps *Dependencies) {
		deps.Exercise = svc
	}
}

func withProduction() serverOption {
	return func(cfg *config.Config, _ *Dependencies) {
		cfg.Server.Mode = "production"
	}
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := relational.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, relational.Migrate(db))
	t.Cleanup(func() { _ = relational.Close(db) })
	store := relational.NewStore(db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.Config{
		Server:    config.ServerConfig{Mode: "development"},
		Cookie:    config.CookieConfig{Name: "jwt"},
		RateLimit: config.RateLimitConfig{Requests: 100, Window: time.Minute},
	}

	files := &stubStorage{}
	tokens := session.NewTokenManager("api-test-secret", time.Hour, "fitness-app")
	workoutStore := service.NewWorkoutStore(store)
	workouts := service.NewWorkoutService(workoutStore, store.Media(), files, log)
	deps := Dependencies{
		Log:      log,
		Auth:     service.NewAuthService(store.Users(), tokens, session.NewRedisDenylist(rdb), log),
		Exercise: service.NewExerciseService(store.Exercises()),
		Workout:  workouts,
		Query:    service.NewWorkoutQueryService(workoutStore, store.Workouts()),
		Media:    service.NewMediaService(workouts, store.Media(), files, log),
		Redis:    rdb,
	}
	for _, opt := range opts {
		opt(&cfg, &deps)
	}
	deps.Config = cfg

	router := gin.New()
	SetupRoutes(router, deps)
	return &testServer{router: router, store: store, files: files, redis: mr}
}

// do sends a JSON request, attaching cookies when given.
func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doWithHeader(t *testing.T, method, path, key, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(key, value)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its session cookie.
func (s *testServer) register(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func (s *testServer) seedCatalog(t *testing.T) map[string]domain.Exercise {
	t.Helper()
	exercises := []domain.Exercise{
		{Name: "Bench Press", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupChest, Difficulty: domain.DifficultyIntermediate},
		{Name: "Push Up", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupChest, Difficulty: domain.DifficultyBeginner},
		{Name: "Rowing", Category: domain.CategoryCardio, MuscleGroup: domain.MuscleGroupBack, Difficulty: domain.DifficultyBeginner},
	}
	require.NoError(t, s.store.Exercises().CreateMany(context.Background(), exercises))
	byName := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		byName[e.Name] = e
	}
	return byName
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "jwt" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

type stubStorage struct {
	deleted []string
}

func (s *stubStorage) GeneratePresignedUploadURL(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key + "?upload", nil
}

func (s *stubStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/" + key, nil
}

func (s *stubStorage) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}
