package service

import (
	"context"
	"math"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
)

const (
	DefaultRecentDays = 7
	DefaultStatsDays  = 30
)

// WorkoutQueryService answers read-only questions over a trailing window of
// a user's workouts. The window covers workouts dated strictly after
// now minus the given number of days.
type WorkoutQueryService interface {
	RecentWorkouts(ctx context.Context, userID string, days int) ([]domain.WorkoutDetail, error)
	WorkoutStats(ctx context.Context, userID string, days int) (*domain.WorkoutStats, error)
}

type workoutQueryService struct {
	store    WorkoutStore
	workouts repository.WorkoutRepository
	now      func() time.Time
}

func NewWorkoutQueryService(store WorkoutStore, workouts repository.WorkoutRepository) WorkoutQueryService {
	return &workoutQueryService{store: store, workouts: workouts, now: time.Now}
}

// RecentWorkouts returns detailed workouts of the last days (default 7), newest first.
func (s *workoutQueryService) RecentWorkouts(ctx context.Context, userID string, days int) ([]domain.WorkoutDetail, error) {
	if days <= 0 {
		days = DefaultRecentDays
	}
	return s.store.GetUserWorkoutsAfter(ctx, userID, s.windowStart(days))
}

// WorkoutStats summarises the last days (default 30).
func (s *workoutQueryService) WorkoutStats(ctx context.Context, userID string, days int) (*domain.WorkoutStats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	workouts, err := s.workouts.ListByUser(ctx, userID, repository.WorkoutFilter{After: s.windowStart(days)})
	if err != nil {
		return nil, err
	}
	stats := computeStats(workouts, days)
	return &stats, nil
}

func (s *workoutQueryService) windowStart(days int) time.Time {
	return s.now().UTC().AddDate(0, 0, -days)
}

// computeStats treats a missing duration as 0. Averages round half up to
// an integer; workouts per week rounds to two decimals.
func computeStats(workouts []domain.Workout, days int) domain.WorkoutStats {
	stats := domain.WorkoutStats{TotalWorkouts: len(workouts)}
	for _, w := range workouts {
		if w.Duration != nil {
			stats.TotalDuration += *w.Duration
		}
	}
	if stats.TotalWorkouts == 0 {
		return stats
	}
	stats.AverageDuration = int(math.Round(float64(stats.TotalDuration) / float64(stats.TotalWorkouts)))
	perWeek := float64(stats.TotalWorkouts) / float64(days) * 7
	stats.WorkoutsPerWeek = math.Round(perWeek*100) / 100
	return stats
}
