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

type gormExerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new Exercise repository.
func NewExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	exercise.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return "", fmt.Errorf("create exercise: %w", translate(err))
	}
	return exercise.ID, nil
}

// CreateMany inserts all exercises in one statement batch, assigning IDs in place.
func (r *gormExerciseRepository) CreateMany(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	for i := range exercises {
		exercises[i].ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).CreateInBatches(exercises, 100).Error; err != nil {
		return fmt.Errorf("create exercises: %w", translate(err))
	}
	return nil
}

func (r *gormExerciseRepository) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&exercise).Error; err != nil {
		return nil, translate(err)
	}
	return &exercise, nil
}

func (r *gormExerciseRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	if len(ids) == 0 {
		return exercises, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("get exercises: %w", err)
	}
	return exercises, nil
}

func (r *gormExerciseRepository) List(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	query := r.db.WithContext(ctx).Model(&domain.Exercise{})
	if filter.MuscleGroup != "" {
		query = query.Where("muscle_group = ?", filter.MuscleGroup)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter == (repository.ExerciseFilter{}) {
		query = query.Order("muscle_group ASC").Order("name ASC")
	} else {
		query = query.Order("name ASC")
	}

	exercises := []domain.Exercise{}
	if err := query.Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

func (r *gormExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	exercise.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&domain.Exercise{ID: exercise.ID}).
		Select("name", "description", "category", "muscle_group", "equipment", "difficulty", "updated_at").
		Updates(exercise)
	if result.Error != nil {
		return fmt.Errorf("update exercise: %w", translate(result.Error))
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormExerciseRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Exercise{})
	if result.Error != nil {
		return fmt.Errorf("delete exercise: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
