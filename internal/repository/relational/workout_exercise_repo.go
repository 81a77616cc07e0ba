package relational

import (
	"context"
	"fmt"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormWorkoutExerciseRepository struct {
	db *gorm.DB
}

// NewWorkoutExerciseRepository creates a new WorkoutExercise repository.
func NewWorkoutExerciseRepository(db *gorm.DB) repository.WorkoutExerciseRepository {
	return &gormWorkoutExerciseRepository{db: db}
}

func (r *gormWorkoutExerciseRepository) Create(ctx context.Context, link *domain.WorkoutExercise) (string, error) {
	link.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return "", fmt.Errorf("create workout exercise: %w", translate(err))
	}
	return link.ID, nil
}

func (r *gormWorkoutExerciseRepository) CountByWorkout(ctx context.Context, workoutID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.WorkoutExercise{}).Where("workout_id = ?", workoutID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count workout exercises: %w", err)
	}
	return count, nil
}

func (r *gormWorkoutExerciseRepository) FindFirst(ctx context.Context, workoutID, exerciseID string) (*domain.WorkoutExercise, error) {
	var link domain.WorkoutExercise
	err := r.db.WithContext(ctx).
		Where("workout_id = ? AND exercise_id = ?", workoutID, exerciseID).
		Order("sort_order ASC").
		First(&link).Error
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (r *gormWorkoutExerciseRepository) ListByWorkouts(ctx context.Context, workoutIDs []string) ([]domain.WorkoutExercise, error) {
	links := []domain.WorkoutExercise{}
	if len(workoutIDs) == 0 {
		return links, nil
	}
	err := r.db.WithContext(ctx).Where("workout_id IN ?", workoutIDs).Order("sort_order ASC").Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	return links, nil
}

func (r *gormWorkoutExerciseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.WorkoutExercise{})
	if result.Error != nil {
		return fmt.Errorf("delete workout exercise: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutExerciseRepository) DeleteByWorkout(ctx context.Context, workoutID string) error {
	if err := r.db.WithContext(ctx).Where("workout_id = ?", workoutID).Delete(&domain.WorkoutExercise{}).Error; err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}
	return nil
}
