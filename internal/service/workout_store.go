package service

import (
	"context"
	"errors"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/observability"
	"github.com/san98215/fitness-app/internal/repository"
)

var ErrNegativeDuration = &ValidationError{Message: "duration must not be negative"}

// SetInput describes one set to record. Reps and Weight are required and
// must be positive; Order is stored as given.
type SetInput struct {
	Weight   *float64
	Reps     *int
	Duration *int
	Distance *float64
	Order    int
	Notes    string
}

// ExerciseEntryInput appends a catalog exercise with its sets to a workout.
type ExerciseEntryInput struct {
	ExerciseID string
	Notes      string
	Sets       []SetInput
}

// CreateWorkoutInput describes a new workout. A zero Date means now.
type CreateWorkoutInput struct {
	Name      string
	Date      time.Time
	Duration  *int
	Notes     string
	Exercises []ExerciseEntryInput
}

// UpdateWorkoutInput changes only the non-nil scalar fields. A non-nil
// Exercises, even an empty one, replaces the workout's whole exercise list.
type UpdateWorkoutInput struct {
	Name      *string
	Date      *time.Time
	Duration  *int
	Notes     *string
	Exercises []ExerciseEntryInput
}

// WorkoutStore owns the Workout → WorkoutExercise → Set graph. Every
// mutation runs in one transaction. It performs no ownership checks.
type WorkoutStore interface {
	CreateWorkout(ctx context.Context, ownerID string, input CreateWorkoutInput) (*domain.WorkoutDetail, error)
	AddExercise(ctx context.Context, workoutID string, input ExerciseEntryInput) (*domain.WorkoutDetail, error)
	// UpdateSets replaces every set of the first matching exercise.
	UpdateSets(ctx context.Context, workoutID, exerciseID string, sets []SetInput) (*domain.WorkoutDetail, error)
	RemoveExercise(ctx context.Context, workoutID, exerciseID string) error
	UpdateWorkout(ctx context.Context, workoutID string, input UpdateWorkoutInput) (*domain.WorkoutDetail, error)
	// DeleteWorkout removes the workout with its exercises, sets and media rows.
	DeleteWorkout(ctx context.Context, workoutID string) error
	GetWorkout(ctx context.Context, workoutID string) (*domain.Workout, error)
	// GetWorkoutWithDetails returns nil, nil when the workout does not exist.
	GetWorkoutWithDetails(ctx context.Context, workoutID string) (*domain.WorkoutDetail, error)
	// GetUserWorkouts lists a user's workouts newest first.
	GetUserWorkouts(ctx context.Context, userID string) ([]domain.WorkoutDetail, error)
	// GetUserWorkoutsAfter lists workouts dated strictly after the given time, newest first.
	GetUserWorkoutsAfter(ctx context.Context, userID string, after time.Time) ([]domain.WorkoutDetail, error)
}

type workoutStore struct {
	store repository.Store
	now   func() time.Time
}

// NewWorkoutStore creates a WorkoutStore over store.
func NewWorkoutStore(store repository.Store) WorkoutStore {
	return &workoutStore{store: store, now: time.Now}
}

func (s *workoutStore) CreateWorkout(ctx context.Context, ownerID string, input CreateWorkoutInput) (*domain.WorkoutDetail, error) {
	name := sanitizeText(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if input.Duration != nil && *input.Duration < 0 {
		return nil, ErrNegativeDuration
	}
	date := input.Date
	if date.IsZero() {
		date = s.now()
	}

	workout := &domain.Workout{
		UserID:   ownerID,
		Name:     name,
		Date:     date.UTC(),
		Duration: input.Duration,
		Notes:    sanitizeText(input.Notes),
	}
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Workouts().Create(ctx, workout); err != nil {
			return err
		}
		for _, entry := range input.Exercises {
			if err := appendExercise(ctx, tx, workout.ID, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.WorkoutMutations.WithLabelValues("create_workout").Inc()
	return s.GetWorkoutWithDetails(ctx, workout.ID)
}

func (s *workoutStore) AddExercise(ctx context.Context, workoutID string, input ExerciseEntryInput) (*domain.WorkoutDetail, error) {
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Workouts().GetByID(ctx, workoutID); err != nil {
			return notFoundAs(err, ErrWorkoutNotFound)
		}
		return appendExercise(ctx, tx, workoutID, input)
	})
	if err != nil {
		return nil, err
	}
	observability.WorkoutMutations.WithLabelValues("add_exercise").Inc()
	return s.GetWorkoutWithDetails(ctx, workoutID)
}

func (s *workoutStore) UpdateSets(ctx context.Context, workoutID, exerciseID string, sets []SetInput) (*domain.WorkoutDetail, error) {
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		link, err := tx.WorkoutExercises().FindFirst(ctx, workoutID, exerciseID)
		if err != nil {
			return notFoundAs(err, ErrExerciseNotInWorkout)
		}
		if err := validateSets(sets); err != nil {
			return err
		}
		if err := tx.Sets().DeleteByWorkoutExercises(ctx, []string{link.ID}); err != nil {
			return err
		}
		return tx.Sets().CreateMany(ctx, buildSets(link.ID, sets))
	})
	if err != nil {
		return nil, err
	}
	observability.WorkoutMutations.WithLabelValues("update_sets").Inc()
	return s.GetWorkoutWithDetails(ctx, workoutID)
}

func (s *workoutStore) RemoveExercise(ctx context.Context, workoutID, exerciseID string) error {
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		link, err := tx.WorkoutExercises().FindFirst(ctx, workoutID, exerciseID)
		if err != nil {
			return notFoundAs(err, ErrExerciseNotInWorkout)
		}
		if err := tx.Sets().DeleteByWorkoutExercises(ctx, []string{link.ID}); err != nil {
			return err
		}
		return tx.WorkoutExercises().Delete(ctx, link.ID)
	})
	if err != nil {
		return err
	}
	observability.WorkoutMutations.WithLabelValues("remove_exercise").Inc()
	return nil
}

func (s *workoutStore) UpdateWorkout(ctx context.Context, workoutID string, input UpdateWorkoutInput) (*domain.WorkoutDetail, error) {
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		workout, err := tx.Workouts().GetByID(ctx, workoutID)
		if err != nil {
			return notFoundAs(err, ErrWorkoutNotFound)
		}

		if input.Name != nil {
			name := sanitizeText(*input.Name)
			if name == "" {
				return ErrNameRequired
			}
			workout.Name = name
		}
		if input.Date != nil {
			workout.Date = input.Date.UTC()
		}
		if input.Duration != nil {
			if *input.Duration < 0 {
				return ErrNegativeDuration
			}
			workout.Duration = input.Duration
		}
		if input.Notes != nil {
			workout.Notes = sanitizeText(*input.Notes)
		}
		if err := tx.Workouts().Update(ctx, workout); err != nil {
			return err
		}

		if input.Exercises == nil {
			return nil
		}
		if err := clearExercises(ctx, tx, workoutID); err != nil {
			return err
		}
		for _, entry := range input.Exercises {
			if err := appendExercise(ctx, tx, workoutID, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	observability.WorkoutMutations.WithLabelValues("update_workout").Inc()
	return s.GetWorkoutWithDetails(ctx, workoutID)
}

func (s *workoutStore) DeleteWorkout(ctx context.Context, workoutID string) error {
	err := s.store.Transaction(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Workouts().GetByID(ctx, workoutID); err != nil {
			return notFoundAs(err, ErrWorkoutNotFound)
		}
		if err := clearExercises(ctx, tx, workoutID); err != nil {
			return err
		}
		if err := tx.Media().DeleteByWorkout(ctx, workoutID); err != nil {
			return err
		}
		return tx.Workouts().Delete(ctx, workoutID)
	})
	if err != nil {
		return err
	}
	observability.WorkoutMutations.WithLabelValues("delete_workout").Inc()
	return nil
}

func (s *workoutStore) GetWorkout(ctx context.Context, workoutID string) (*domain.Workout, error) {
	workout, err := s.store.Workouts().GetByID(ctx, workoutID)
	if err != nil {
		return nil, notFoundAs(err, ErrWorkoutNotFound)
	}
	return workout, nil
}

func (s *workoutStore) GetWorkoutWithDetails(ctx context.Context, workoutID string) (*domain.WorkoutDetail, error) {
	workout, err := s.store.Workouts().GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	details, err := s.loadDetails(ctx, []domain.Workout{*workout})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *workoutStore) GetUserWorkouts(ctx context.Context, userID string) ([]domain.WorkoutDetail, error) {
	return s.GetUserWorkoutsAfter(ctx, userID, time.Time{})
}

func (s *workoutStore) GetUserWorkoutsAfter(ctx context.Context, userID string, after time.Time) ([]domain.WorkoutDetail, error) {
	workouts, err := s.store.Workouts().ListByUser(ctx, userID, repository.WorkoutFilter{After: after})
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, workouts)
}

// loadDetails fetches the links, catalog entries and sets of workouts and
// hands them to assembleWorkouts.
func (s *workoutStore) loadDetails(ctx context.Context, workouts []domain.Workout) ([]domain.WorkoutDetail, error) {
	if len(workouts) == 0 {
		return []domain.WorkoutDetail{}, nil
	}
	workoutIDs := make([]string, len(workouts))
	for i, w := range workouts {
		workoutIDs[i] = w.ID
	}

	links, err := s.store.WorkoutExercises().ListByWorkouts(ctx, workoutIDs)
	if err != nil {
		return nil, err
	}
	linkIDs := make([]string, len(links))
	exerciseIDs := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for i, l := range links {
		linkIDs[i] = l.ID
		if !seen[l.ExerciseID] {
			seen[l.ExerciseID] = true
			exerciseIDs = append(exerciseIDs, l.ExerciseID)
		}
	}

	exercises, err := s.store.Exercises().GetByIDs(ctx, exerciseIDs)
	if err != nil {
		return nil, err
	}
	sets, err := s.store.Sets().ListByWorkoutExercises(ctx, linkIDs)
	if err != nil {
		return nil, err
	}
	return assembleWorkouts(workouts, links, exercises, sets), nil
}

// appendExercise adds one exercise at the end of a workout inside tx. Order
// is the current link count plus one, so concurrent appends to the same
// workout can produce duplicate orders.
func appendExercise(ctx context.Context, tx repository.Store, workoutID string, entry ExerciseEntryInput) error {
	if err := validateSets(entry.Sets); err != nil {
		return err
	}
	if entry.ExerciseID == "" {
		return ErrExerciseIDRequired
	}
	if _, err := tx.Exercises().GetByID(ctx, entry.ExerciseID); err != nil {
		return notFoundAs(err, ErrExerciseNotFound)
	}

	count, err := tx.WorkoutExercises().CountByWorkout(ctx, workoutID)
	if err != nil {
		return err
	}
	link := &domain.WorkoutExercise{
		WorkoutID:  workoutID,
		ExerciseID: entry.ExerciseID,
		Order:      int(count) + 1,
		Notes:      sanitizeText(entry.Notes),
	}
	if _, err := tx.WorkoutExercises().Create(ctx, link); err != nil {
		return err
	}
	return tx.Sets().CreateMany(ctx, buildSets(link.ID, entry.Sets))
}

// clearExercises deletes every link of a workout and their sets.
func clearExercises(ctx context.Context, tx repository.Store, workoutID string) error {
	links, err := tx.WorkoutExercises().ListByWorkouts(ctx, []string{workoutID})
	if err != nil {
		return err
	}
	ids := make([]string, len(links))
	for i, l := range links {
		ids[i] = l.ID
	}
	if err := tx.Sets().DeleteByWorkoutExercises(ctx, ids); err != nil {
		return err
	}
	return tx.WorkoutExercises().DeleteByWorkout(ctx, workoutID)
}

func validateSets(sets []SetInput) error {
	if len(sets) == 0 {
		return ErrInvalidSets
	}
	for _, s := range sets {
		if s.Reps == nil || *s.Reps <= 0 || s.Weight == nil || *s.Weight <= 0 {
			return ErrInvalidSets
		}
	}
	return nil
}

func buildSets(workoutExerciseID string, inputs []SetInput) []domain.Set {
	sets := make([]domain.Set, len(inputs))
	for i, in := range inputs {
		sets[i] = domain.Set{
			WorkoutExerciseID: workoutExerciseID,
			Weight:            in.Weight,
			Reps:              in.Reps,
			Duration:          in.Duration,
			Distance:          in.Distance,
			Order:             in.Order,
			Notes:             sanitizeText(in.Notes),
		}
	}
	return sets
}

// notFoundAs swaps repository.ErrNotFound for a client-facing error.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}
