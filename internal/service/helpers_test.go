package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/san98215/fitness-app/internal/config"
	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/repository/relational"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := relational.Open(config.DatabaseConfig{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, relational.Migrate(db))
	t.Cleanup(func() { _ = relational.Close(db) })
	return relational.NewStore(db)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// seedCatalog inserts a small catalog and returns it keyed by name.
func seedCatalog(t *testing.T, store repository.Store) map[string]domain.Exercise {
	t.Helper()
	exercises := []domain.Exercise{
		{Name: "Bench Press", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupChest, Difficulty: domain.DifficultyIntermediate},
		{Name: "Push Up", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupChest, Difficulty: domain.DifficultyBeginner},
		{Name: "Squat", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupLegs, Difficulty: domain.DifficultyIntermediate},
		{Name: "Burpee", Category: domain.CategoryCardio, MuscleGroup: domain.MuscleGroupFullBody, Difficulty: domain.DifficultyAdvanced},
		{Name: "Deadlift", Category: domain.CategoryStrength, MuscleGroup: domain.MuscleGroupBack, Difficulty: domain.DifficultyAdvanced},
	}
	require.NoError(t, store.Exercises().CreateMany(context.Background(), exercises))

	byName := make(map[string]domain.Exercise, len(exercises))
	for _, e := range exercises {
		byName[e.Name] = e
	}
	return byName
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

// liftSets builds valid sets with the given reps, ordered 1..n.
func liftSets(weight float64, reps ...int) []SetInput {
	sets := make([]SetInput, len(reps))
	for i, r := range reps {
		sets[i] = SetInput{Weight: floatPtr(weight), Reps: intPtr(r), Order: i + 1}
	}
	return sets
}

// fakeStorage records deleted keys and fabricates URLs.
type fakeStorage struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + key + "?type=" + contentType, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}
