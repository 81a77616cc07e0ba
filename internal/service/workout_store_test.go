package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/san98215/fitness-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreFixture(t *testing.T) (WorkoutStore, repository.Store, map[string]string) {
	t.Helper()
	store := newTestStore(t)
	catalog := seedCatalog(t, store)
	ids := make(map[string]string, len(catalog))
	for name, e := range catalog {
		ids[name] = e.ID
	}
	return NewWorkoutStore(store), store, ids
}

func TestCreateWorkout_WithExercisesAssignsOrder(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()

	detail, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:     "Push day",
		Duration: intPtr(60),
		Exercises: []ExerciseEntryInput{
			{ExerciseID: ex["Bench Press"], Sets: []SetInput{
				{Weight: floatPtr(80), Reps: intPtr(5), Order: 2},
				{Weight: floatPtr(60), Reps: intPtr(10), Order: 1},
			}},
			{ExerciseID: ex["Push Up"], Notes: "<b>slow</b> tempo", Sets: liftSets(1, 20)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.Equal(t, "user-1", detail.UserID)
	assert.Equal(t, "Push day", detail.Name)
	require.Len(t, detail.Exercises, 2)

	first, second := detail.Exercises[0], detail.Exercises[1]
	assert.Equal(t, "Bench Press", first.Name)
	assert.Equal(t, 1, first.WorkoutExercise.Order)
	require.Len(t, first.Sets, 2)
	assert.Equal(t, 1, first.Sets[0].Order)
	assert.Equal(t, 10, *first.Sets[0].Reps)
	assert.Equal(t, 2, first.Sets[1].Order)

	assert.Equal(t, "Push Up", second.Name)
	assert.Equal(t, 2, second.WorkoutExercise.Order)
	assert.Equal(t, "slow tempo", second.WorkoutExercise.Notes)
}

func TestCreateWorkout_DefaultsDateToNow(t *testing.T) {
	ws, _, _ := newStoreFixture(t)
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	ws.(*workoutStore).now = func() time.Time { return fixed }

	detail, err := ws.CreateWorkout(context.Background(), "user-1", CreateWorkoutInput{Name: "Morning run"})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(detail.Date), "got %v", detail.Date)
	assert.Empty(t, detail.Exercises)
}

func TestCreateWorkout_RequiresName(t *testing.T) {
	ws, store, _ := newStoreFixture(t)

	_, err := ws.CreateWorkout(context.Background(), "user-1", CreateWorkoutInput{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)

	workouts, err := store.Workouts().ListByUser(context.Background(), "user-1", repository.WorkoutFilter{})
	require.NoError(t, err)
	assert.Empty(t, workouts)
}

func TestCreateWorkout_RollsBackOnInvalidExercise(t *testing.T) {
	ws, store, ex := newStoreFixture(t)
	ctx := context.Background()

	_, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name: "Broken",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)},
			{ExerciseID: ex["Deadlift"], Sets: []SetInput{{Weight: floatPtr(100), Reps: intPtr(0)}}},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidSets)

	workouts, err := store.Workouts().ListByUser(ctx, "user-1", repository.WorkoutFilter{})
	require.NoError(t, err)
	assert.Empty(t, workouts, "workout row must not survive a failed create")
}

func TestAddExercise_AppendsWithNextOrder(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()

	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Legs",
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Squat"], Sets: liftSets(100, 5, 5)}},
	})
	require.NoError(t, err)

	detail, err := ws.AddExercise(ctx, w.ID, ExerciseEntryInput{ExerciseID: ex["Deadlift"], Sets: liftSets(140, 3)})
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, 2, detail.Exercises[1].WorkoutExercise.Order)
	assert.Equal(t, "Deadlift", detail.Exercises[1].Name)
}

func TestAddExercise_ConcurrentAppendsBothSucceed(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{Name: "Race"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, name := range []string{"Squat", "Deadlift"} {
		wg.Add(1)
		go func(i int, exerciseID string) {
			defer wg.Done()
			_, errs[i] = ws.AddExercise(ctx, w.ID, ExerciseEntryInput{ExerciseID: exerciseID, Sets: liftSets(100, 5)})
		}(i, ex[name])
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	detail, err := ws.GetWorkoutWithDetails(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)
	// Order is count+1 at insert time, so racing appends may share an order.
	for _, e := range detail.Exercises {
		assert.Contains(t, []int{1, 2}, e.WorkoutExercise.Order)
		assert.Len(t, e.Sets, 1)
	}
}

func TestCreateWorkout_KeepsPlainTextCharacters(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()

	detail, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Mike's Push & Pull",
		Notes:     "5 < 6 sets",
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Squat"], Notes: "<b>Leg</b> day \"heavy\"", Sets: liftSets(100, 5)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mike's Push & Pull", detail.Name)
	assert.Equal(t, "5 < 6 sets", detail.Notes)
	require.Len(t, detail.Exercises, 1)
	assert.Equal(t, `Leg day "heavy"`, detail.Exercises[0].WorkoutExercise.Notes)

	stored, err := ws.GetWorkout(ctx, detail.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mike's Push & Pull", stored.Name)
}

func TestAddExercise_Validation(t *testing.T) {
	ws, store, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{Name: "Empty"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   ExerciseEntryInput
		wantErr error
	}{
		{"no sets", ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: []SetInput{}}, ErrInvalidSets},
		{"nil sets", ExerciseEntryInput{ExerciseID: ex["Squat"]}, ErrInvalidSets},
		{"zero reps", ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: []SetInput{{Weight: floatPtr(50), Reps: intPtr(0)}}}, ErrInvalidSets},
		{"missing weight", ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: []SetInput{{Reps: intPtr(5)}}}, ErrInvalidSets},
		{"negative weight", ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: []SetInput{{Weight: floatPtr(-1), Reps: intPtr(5)}}}, ErrInvalidSets},
		{"missing exercise id", ExerciseEntryInput{Sets: liftSets(50, 5)}, ErrExerciseIDRequired},
		{"unknown exercise", ExerciseEntryInput{ExerciseID: "does-not-exist", Sets: liftSets(50, 5)}, ErrExerciseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ws.AddExercise(ctx, w.ID, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	count, err := store.WorkoutExercises().CountByWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "failed appends must not persist anything")
}

func TestAddExercise_MissingWorkout(t *testing.T) {
	ws, _, ex := newStoreFixture(t)

	_, err := ws.AddExercise(context.Background(), "missing", ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: liftSets(50, 5)})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestAddExercise_SameExerciseTwiceCreatesTwoRows(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{Name: "Volume"})
	require.NoError(t, err)

	_, err = ws.AddExercise(ctx, w.ID, ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)})
	require.NoError(t, err)
	_, err = ws.AddExercise(ctx, w.ID, ExerciseEntryInput{ExerciseID: ex["Squat"], Sets: liftSets(80, 8)})
	require.NoError(t, err)

	// UpdateSets addresses the first occurrence only.
	detail, err := ws.UpdateSets(ctx, w.ID, ex["Squat"], liftSets(110, 3))
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 2)
	assert.Equal(t, 1, detail.Exercises[0].WorkoutExercise.Order)
	assert.Equal(t, 110.0, *detail.Exercises[0].Sets[0].Weight)
	assert.Equal(t, 2, detail.Exercises[1].WorkoutExercise.Order)
	assert.Equal(t, 80.0, *detail.Exercises[1].Sets[0].Weight)
}

func TestUpdateSets_ReplacesAllSets(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Chest",
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Bench Press"], Sets: liftSets(60, 10, 10, 10)}},
	})
	require.NoError(t, err)

	detail, err := ws.UpdateSets(ctx, w.ID, ex["Bench Press"], liftSets(70, 8))
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	require.Len(t, detail.Exercises[0].Sets, 1)
	assert.Equal(t, 8, *detail.Exercises[0].Sets[0].Reps)
	assert.Equal(t, 70.0, *detail.Exercises[0].Sets[0].Weight)
}

func TestUpdateSets_Errors(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Chest",
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Bench Press"], Sets: liftSets(60, 10)}},
	})
	require.NoError(t, err)

	_, err = ws.UpdateSets(ctx, w.ID, ex["Squat"], liftSets(60, 10))
	assert.ErrorIs(t, err, ErrExerciseNotInWorkout)

	_, err = ws.UpdateSets(ctx, w.ID, ex["Bench Press"], nil)
	assert.ErrorIs(t, err, ErrInvalidSets)

	// the failed replace left the original sets alone
	detail, err := ws.GetWorkoutWithDetails(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises[0].Sets, 1)
	assert.Equal(t, 10, *detail.Exercises[0].Sets[0].Reps)
}

func TestRemoveExercise_SecondCallNotFound(t *testing.T) {
	ws, store, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name: "Mixed",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)},
			{ExerciseID: ex["Burpee"], Sets: liftSets(1, 15)},
		},
	})
	require.NoError(t, err)
	squatLink := w.Exercises[0].WorkoutExercise.ID

	require.NoError(t, ws.RemoveExercise(ctx, w.ID, ex["Squat"]))
	assert.ErrorIs(t, ws.RemoveExercise(ctx, w.ID, ex["Squat"]), ErrExerciseNotInWorkout)

	sets, err := store.Sets().ListByWorkoutExercises(ctx, []string{squatLink})
	require.NoError(t, err)
	assert.Empty(t, sets)

	detail, err := ws.GetWorkoutWithDetails(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	assert.Equal(t, "Burpee", detail.Exercises[0].Name)
	assert.Equal(t, 2, detail.Exercises[0].WorkoutExercise.Order)
}

func TestUpdateWorkout_ScalarFieldsOnly(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Old",
		Duration:  intPtr(30),
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)}},
	})
	require.NoError(t, err)

	newDate := time.Date(2024, 5, 5, 18, 0, 0, 0, time.UTC)
	detail, err := ws.UpdateWorkout(ctx, w.ID, UpdateWorkoutInput{
		Name:     strPtr("New"),
		Date:     timePtr(newDate),
		Duration: intPtr(45),
		Notes:    strPtr("felt strong"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New", detail.Name)
	assert.Equal(t, 45, *detail.Duration)
	assert.Equal(t, "felt strong", detail.Notes)
	assert.True(t, newDate.Equal(detail.Date))
	require.Len(t, detail.Exercises, 1, "exercises untouched when not supplied")
	assert.Equal(t, w.Exercises[0].WorkoutExercise.ID, detail.Exercises[0].WorkoutExercise.ID)
}

func TestUpdateWorkout_ReplacesExercises(t *testing.T) {
	ws, store, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name: "Full",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)},
			{ExerciseID: ex["Bench Press"], Sets: liftSets(60, 8)},
		},
	})
	require.NoError(t, err)
	oldLinks := []string{w.Exercises[0].WorkoutExercise.ID, w.Exercises[1].WorkoutExercise.ID}

	detail, err := ws.UpdateWorkout(ctx, w.ID, UpdateWorkoutInput{
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Deadlift"], Sets: liftSets(150, 3)}},
	})
	require.NoError(t, err)
	require.Len(t, detail.Exercises, 1)
	assert.Equal(t, "Deadlift", detail.Exercises[0].Name)
	assert.Equal(t, 1, detail.Exercises[0].WorkoutExercise.Order)

	sets, err := store.Sets().ListByWorkoutExercises(ctx, oldLinks)
	require.NoError(t, err)
	assert.Empty(t, sets, "sets of replaced exercises are deleted")

	detail, err = ws.UpdateWorkout(ctx, w.ID, UpdateWorkoutInput{Exercises: []ExerciseEntryInput{}})
	require.NoError(t, err)
	assert.Empty(t, detail.Exercises, "an empty list clears the workout")
}

func TestUpdateWorkout_Errors(t *testing.T) {
	ws, _, ex := newStoreFixture(t)
	ctx := context.Background()

	_, err := ws.UpdateWorkout(ctx, "missing", UpdateWorkoutInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name:      "Keep",
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Squat"], Sets: liftSets(100, 5)}},
	})
	require.NoError(t, err)

	_, err = ws.UpdateWorkout(ctx, w.ID, UpdateWorkoutInput{Name: strPtr("")})
	assert.ErrorIs(t, err, ErrNameRequired)

	// a bad replacement list rolls back the scalar change too
	_, err = ws.UpdateWorkout(ctx, w.ID, UpdateWorkoutInput{
		Name:      strPtr("Changed"),
		Exercises: []ExerciseEntryInput{{ExerciseID: ex["Squat"], Sets: nil}},
	})
	assert.ErrorIs(t, err, ErrInvalidSets)

	detail, err := ws.GetWorkoutWithDetails(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep", detail.Name)
	assert.Len(t, detail.Exercises, 1)
}

func TestDeleteWorkout_Cascades(t *testing.T) {
	ws, store, ex := newStoreFixture(t)
	ctx := context.Background()
	w, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{
		Name: "Doomed",
		Exercises: []ExerciseEntryInput{
			{ExerciseID: ex["Squat"], Sets: liftSets(100, 5, 5)},
			{ExerciseID: ex["Deadlift"], Sets: liftSets(140, 3)},
		},
	})
	require.NoError(t, err)
	links := []string{w.Exercises[0].WorkoutExercise.ID, w.Exercises[1].WorkoutExercise.ID}

	require.NoError(t, ws.DeleteWorkout(ctx, w.ID))

	detail, err := ws.GetWorkoutWithDetails(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, detail)

	count, err := store.WorkoutExercises().CountByWorkout(ctx, w.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	sets, err := store.Sets().ListByWorkoutExercises(ctx, links)
	require.NoError(t, err)
	assert.Empty(t, sets)

	assert.ErrorIs(t, ws.DeleteWorkout(ctx, w.ID), ErrWorkoutNotFound)
}

func TestGetWorkoutWithDetails_Missing(t *testing.T) {
	ws, _, _ := newStoreFixture(t)

	detail, err := ws.GetWorkoutWithDetails(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, detail)

	_, err = ws.GetWorkout(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestGetUserWorkouts_NewestFirstAndScoped(t *testing.T) {
	ws, _, _ := newStoreFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	for i, name := range []string{"oldest", "newest", "middle"} {
		offset := map[int]int{0: 0, 1: 2, 2: 1}[i]
		_, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{Name: name, Date: base.AddDate(0, 0, offset)})
		require.NoError(t, err)
	}
	_, err := ws.CreateWorkout(ctx, "user-2", CreateWorkoutInput{Name: "someone else", Date: base})
	require.NoError(t, err)

	workouts, err := ws.GetUserWorkouts(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, workouts, 3)
	assert.Equal(t, "newest", workouts[0].Name)
	assert.Equal(t, "middle", workouts[1].Name)
	assert.Equal(t, "oldest", workouts[2].Name)

	none, err := ws.GetUserWorkouts(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
