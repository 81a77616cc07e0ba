package relational

import (
	"context"
	"fmt"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new Workout repository.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &gormWorkoutRepository{db: db}
}

func (r *gormWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	workout.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(workout).Error; err != nil {
		return "", fmt.Errorf("create workout: %w", translate(err))
	}
	return workout.ID, nil
}

func (r *gormWorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workout).Error; err != nil {
		return nil, translate(err)
	}
	return &workout, nil
}

func (r *gormWorkoutRepository) ListByUser(ctx context.Context, userID string, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !filter.After.IsZero() {
		query = query.Where("date > ?", filter.After.UTC())
	}

	workouts := []domain.Workout{}
	if err := query.Order("date DESC").Find(&workouts).Error; err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// Update writes the mutable scalar fields. Owner and ID never change.
func (r *gormWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	workout.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&domain.Workout{ID: workout.ID}).
		Select("name", "date", "duration", "notes", "updated_at").
		Updates(workout)
	if result.Error != nil {
		return fmt.Errorf("update workout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormWorkoutRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Workout{})
	if result.Error != nil {
		return fmt.Errorf("delete workout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
