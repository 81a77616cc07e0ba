package service

import (
	"context"
	"testing"
	"time"

	"github.com/san98215/fitness-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	workouts := []domain.Workout{
		{Duration: intPtr(60)},
		{Duration: intPtr(45)},
		{Duration: intPtr(30)},
		{Duration: intPtr(90)},
	}

	stats := computeStats(workouts, 30)
	assert.Equal(t, domain.WorkoutStats{
		TotalWorkouts:   4,
		TotalDuration:   225,
		AverageDuration: 56,
		WorkoutsPerWeek: 0.93,
	}, stats)
}

func TestComputeStats_RoundsHalfUpAndSkipsMissingDuration(t *testing.T) {
	stats := computeStats([]domain.Workout{{Duration: intPtr(45)}, {Duration: intPtr(30)}, {}, {Duration: intPtr(3)}}, 7)
	assert.Equal(t, 4, stats.TotalWorkouts)
	assert.Equal(t, 78, stats.TotalDuration)
	assert.Equal(t, 20, stats.AverageDuration) // 19.5
	assert.Equal(t, 4.0, stats.WorkoutsPerWeek)
}

func TestComputeStats_NoWorkouts(t *testing.T) {
	assert.Equal(t, domain.WorkoutStats{}, computeStats(nil, 30))
}

func TestWorkoutQueryService_WindowedQueries(t *testing.T) {
	store := newTestStore(t)
	ws := NewWorkoutStore(store)
	qs := NewWorkoutQueryService(ws, store.Workouts())
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	qs.(*workoutQueryService).now = func() time.Time { return now }
	ctx := context.Background()

	seed := []struct {
		name     string
		daysAgo  float64
		duration int
	}{
		{"yesterday", 1, 60},
		{"three days", 3, 45},
		{"exactly a week", 7, 30},
		{"two weeks", 14, 90},
		{"two months", 60, 120},
	}
	for _, s := range seed {
		date := now.Add(-time.Duration(s.daysAgo * 24 * float64(time.Hour)))
		_, err := ws.CreateWorkout(ctx, "user-1", CreateWorkoutInput{Name: s.name, Date: date, Duration: intPtr(s.duration)})
		require.NoError(t, err)
	}
	_, err := ws.CreateWorkout(ctx, "user-2", CreateWorkoutInput{Name: "other", Date: now.Add(-time.Hour)})
	require.NoError(t, err)

	recent, err := qs.RecentWorkouts(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, recent, 2, "the boundary is exclusive")
	assert.Equal(t, "yesterday", recent[0].Name)
	assert.Equal(t, "three days", recent[1].Name)

	stats, err := qs.WorkoutStats(ctx, "user-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalWorkouts)
	assert.Equal(t, 225, stats.TotalDuration)
	assert.Equal(t, 56, stats.AverageDuration)
	assert.Equal(t, 0.93, stats.WorkoutsPerWeek)

	empty, err := qs.WorkoutStats(ctx, "nobody", 30)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutStats{}, *empty)
}
