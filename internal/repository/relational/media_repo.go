package relational

import (
	"context"
	"fmt"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormMediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new Media repository.
func NewMediaRepository(db *gorm.DB) repository.MediaRepository {
	return &gormMediaRepository{db: db}
}

func (r *gormMediaRepository) Create(ctx context.Context, media *domain.Media) (string, error) {
	media.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return "", fmt.Errorf("create media: %w", translate(err))
	}
	return media.ID, nil
}

func (r *gormMediaRepository) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	var media domain.Media
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&media).Error; err != nil {
		return nil, translate(err)
	}
	return &media, nil
}

func (r *gormMediaRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.Media, error) {
	media := []domain.Media{}
	err := r.db.WithContext(ctx).Where("workout_id = ?", workoutID).Order("uploaded_at ASC").Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return media, nil
}

func (r *gormMediaRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Media{})
	if result.Error != nil {
		return fmt.Errorf("delete media: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *gormMediaRepository) DeleteByWorkout(ctx context.Context, workoutID string) error {
	if err := r.db.WithContext(ctx).Where("workout_id = ?", workoutID).Delete(&domain.Media{}).Error; err != nil {
		return fmt.Errorf("delete workout media: %w", err)
	}
	return nil
}
