package relational

import (
	"context"
	"fmt"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormSetRepository struct {
	db *gorm.DB
}

// NewSetRepository creates a new Set repository.
func NewSetRepository(db *gorm.DB) repository.SetRepository {
	return &gormSetRepository{db: db}
}

func (r *gormSetRepository) CreateMany(ctx context.Context, sets []domain.Set) error {
	if len(sets) == 0 {
		return nil
	}
	for i := range sets {
		sets[i].ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&sets).Error; err != nil {
		return fmt.Errorf("create sets: %w", translate(err))
	}
	return nil
}

func (r *gormSetRepository) ListByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) ([]domain.Set, error) {
	sets := []domain.Set{}
	if len(workoutExerciseIDs) == 0 {
		return sets, nil
	}
	err := r.db.WithContext(ctx).
		Where("workout_exercise_id IN ?", workoutExerciseIDs).
		Order("sort_order ASC").
		Find(&sets).Error
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return sets, nil
}

func (r *gormSetRepository) DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) error {
	if len(workoutExerciseIDs) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Where("workout_exercise_id IN ?", workoutExerciseIDs).Delete(&domain.Set{}).Error
	if err != nil {
		return fmt.Errorf("delete sets: %w", err)
	}
	return nil
}
