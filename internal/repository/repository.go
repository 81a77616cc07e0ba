package repository

import (
	"context"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
)

var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ExerciseFilter narrows a catalog listing. Zero value lists everything.
type ExerciseFilter struct {
	MuscleGroup domain.MuscleGroup
	Category    domain.Category
}

// ExerciseRepository defines the interface for the exercise catalog.
// List orders by (muscleGroup, name) when unfiltered and by name otherwise.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	CreateMany(ctx context.Context, exercises []domain.Exercise) error
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id string) error
}

// WorkoutFilter narrows a user's workout listing. A zero After means no
// lower bound; otherwise only workouts dated strictly after it match.
type WorkoutFilter struct {
	After time.Time
}

// WorkoutRepository defines the interface for workout rows.
// ListByUser orders by date, newest first.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID string, filter WorkoutFilter) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id string) error
}

// WorkoutExerciseRepository defines the interface for workout/exercise links.
type WorkoutExerciseRepository interface {
	Create(ctx context.Context, link *domain.WorkoutExercise) (string, error)
	CountByWorkout(ctx context.Context, workoutID string) (int64, error)
	// FindFirst returns the lowest-ordered link for the pair.
	FindFirst(ctx context.Context, workoutID, exerciseID string) (*domain.WorkoutExercise, error)
	// ListByWorkouts orders by order ascending.
	ListByWorkouts(ctx context.Context, workoutIDs []string) ([]domain.WorkoutExercise, error)
	Delete(ctx context.Context, id string) error
	DeleteByWorkout(ctx context.Context, workoutID string) error
}

// SetRepository defines the interface for sets.
type SetRepository interface {
	CreateMany(ctx context.Context, sets []domain.Set) error
	// ListByWorkoutExercises orders by order ascending.
	ListByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) ([]domain.Set, error)
	DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) error
}

// MediaRepository defines the interface for workout media metadata.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Media, error)
	ListByWorkout(ctx context.Context, workoutID string) ([]domain.Media, error)
	Delete(ctx context.Context, id string) error
	DeleteByWorkout(ctx context.Context, workoutID string) error
}

// Store groups the repositories of one backend. Repositories obtained from
// the Store passed to a Transaction callback all run in that transaction;
// returning an error from the callback rolls everything back.
type Store interface {
	Users() UserRepository
	Exercises() ExerciseRepository
	Workouts() WorkoutRepository
	WorkoutExercises() WorkoutExerciseRepository
	Sets() SetRepository
	Media() MediaRepository
	Transaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
