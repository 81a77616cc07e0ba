package mongo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore connects to MONGO_TEST_URI, which must point at a replica
// set for the transaction tests. Each test gets its own database.
func openTestStore(t *testing.T) repository.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	client, err := ConnectDB(uri)
	require.NoError(t, err)

	db := client.Database("fitness_test_" + uuid.NewString()[:8])
	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = DisconnectDB(client)
	})
	return NewStore(client, db)
}

func TestMongoUserRepository_Duplicate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.Users().Create(ctx, &domain.User{Username: "runner", Email: "runner@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = store.Users().Create(ctx, &domain.User{Username: "runner", Email: "other@example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = store.Users().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMongoStore_TransactionRollsBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	errAbort := errors.New("abort")
	err := store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Workouts().Create(ctx, &domain.Workout{UserID: "u1", Name: "doomed", Date: time.Now()}); err != nil {
			return err
		}
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	list, err := store.Workouts().ListByUser(ctx, "u1", repository.WorkoutFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMongoWorkoutExerciseRepository_FindFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	links := store.WorkoutExercises()

	for _, order := range []int{2, 1} {
		_, err := links.Create(ctx, &domain.WorkoutExercise{WorkoutID: "w1", ExerciseID: "bench", Order: order})
		require.NoError(t, err)
	}
	first, err := links.FindFirst(ctx, "w1", "bench")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Order)

	count, err := links.CountByWorkout(ctx, "w1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
