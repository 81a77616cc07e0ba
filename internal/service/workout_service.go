package service

import (
	"context"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
	"github.com/san98215/fitness-app/internal/storage"

	"github.com/sirupsen/logrus"
)

// WorkoutService is the user-facing workout API. Every operation on a single
// workout resolves it first (404), then checks the stored owner (403), and
// only then reads or mutates.
type WorkoutService interface {
	ListWorkouts(ctx context.Context, userID string) ([]domain.WorkoutDetail, error)
	GetWorkout(ctx context.Context, userID, workoutID string) (*domain.WorkoutDetail, error)
	CreateWorkout(ctx context.Context, userID string, input CreateWorkoutInput) (*domain.WorkoutDetail, error)
	UpdateWorkout(ctx context.Context, userID, workoutID string, input UpdateWorkoutInput) (*domain.WorkoutDetail, error)
	DeleteWorkout(ctx context.Context, userID, workoutID string) error
	AddExercise(ctx context.Context, userID, workoutID string, input ExerciseEntryInput) (*domain.WorkoutDetail, error)
	UpdateSets(ctx context.Context, userID, workoutID, exerciseID string, sets []SetInput) (*domain.WorkoutDetail, error)
	RemoveExercise(ctx context.Context, userID, workoutID, exerciseID string) error
	// Authorize returns the workout when userID owns it.
	Authorize(ctx context.Context, userID, workoutID string) (*domain.Workout, error)
}

type workoutService struct {
	store WorkoutStore
	media repository.MediaRepository
	files storage.FileStorage
	log   logrus.FieldLogger
}

// NewWorkoutService wraps store with ownership checks. files may be nil when
// media storage is disabled.
func NewWorkoutService(store WorkoutStore, media repository.MediaRepository, files storage.FileStorage, log logrus.FieldLogger) WorkoutService {
	return &workoutService{store: store, media: media, files: files, log: log}
}

func (s *workoutService) Authorize(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	workout, err := s.store.GetWorkout(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return workout, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, userID string) ([]domain.WorkoutDetail, error) {
	return s.store.GetUserWorkouts(ctx, userID)
}

func (s *workoutService) GetWorkout(ctx context.Context, userID, workoutID string) (*domain.WorkoutDetail, error) {
	detail, err := s.store.GetWorkoutWithDetails(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, ErrWorkoutNotFound
	}
	if detail.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return detail, nil
}

func (s *workoutService) CreateWorkout(ctx context.Context, userID string, input CreateWorkoutInput) (*domain.WorkoutDetail, error) {
	return s.store.CreateWorkout(ctx, userID, input)
}

func (s *workoutService) UpdateWorkout(ctx context.Context, userID, workoutID string, input UpdateWorkoutInput) (*domain.WorkoutDetail, error) {
	if _, err := s.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.store.UpdateWorkout(ctx, workoutID, input)
}

// DeleteWorkout removes the workout graph, then the stored media objects.
// Object deletion failures are logged and do not fail the request.
func (s *workoutService) DeleteWorkout(ctx context.Context, userID, workoutID string) error {
	if _, err := s.Authorize(ctx, userID, workoutID); err != nil {
		return err
	}

	var keys []string
	if s.files != nil {
		media, err := s.media.ListByWorkout(ctx, workoutID)
		if err != nil {
			return err
		}
		for _, m := range media {
			keys = append(keys, m.ObjectKey)
		}
	}

	if err := s.store.DeleteWorkout(ctx, workoutID); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.files.DeleteObject(ctx, key); err != nil {
			s.log.WithError(err).WithField("workout_id", workoutID).Warn("failed to delete workout media object")
		}
	}
	return nil
}

func (s *workoutService) AddExercise(ctx context.Context, userID, workoutID string, input ExerciseEntryInput) (*domain.WorkoutDetail, error) {
	if _, err := s.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.store.AddExercise(ctx, workoutID, input)
}

func (s *workoutService) UpdateSets(ctx context.Context, userID, workoutID, exerciseID string, sets []SetInput) (*domain.WorkoutDetail, error) {
	if _, err := s.Authorize(ctx, userID, workoutID); err != nil {
		return nil, err
	}
	return s.store.UpdateSets(ctx, workoutID, exerciseID, sets)
}

func (s *workoutService) RemoveExercise(ctx context.Context, userID, workoutID, exerciseID string) error {
	if _, err := s.Authorize(ctx, userID, workoutID); err != nil {
		return err
	}
	return s.store.RemoveExercise(ctx, workoutID, exerciseID)
}
