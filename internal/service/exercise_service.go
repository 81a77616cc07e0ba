package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"
)

var (
	ErrInvalidMuscleGroup = &ValidationError{Message: "Invalid muscle group"}
	ErrInvalidCategory    = &ValidationError{Message: "Invalid category"}
	ErrInvalidDifficulty  = &ValidationError{Message: "Invalid difficulty level"}
	ErrExerciseNameNeeded = &ValidationError{Message: "Exercise name is required"}
)

// ExerciseInput carries the writable fields of a catalog entry.
type ExerciseInput struct {
	Name        string
	Description string
	Category    domain.Category
	MuscleGroup domain.MuscleGroup
	Equipment   string
	Difficulty  domain.Difficulty
}

// ExerciseService serves the shared exercise catalog. The Find methods
// return an empty list, not an error, for values outside the enums.
type ExerciseService interface {
	FindAll(ctx context.Context) ([]domain.Exercise, error)
	FindByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.Exercise, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id string) (*domain.Exercise, error)
	Create(ctx context.Context, input ExerciseInput) (*domain.Exercise, error)
	BulkCreate(ctx context.Context, inputs []ExerciseInput) ([]domain.Exercise, error)
	Update(ctx context.Context, id string, input ExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// FindAll lists the whole catalog ordered by muscle group, then name.
func (s *exerciseService) FindAll(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx, repository.ExerciseFilter{})
}

func (s *exerciseService) FindByMuscleGroup(ctx context.Context, muscleGroup string) ([]domain.Exercise, error) {
	group := domain.MuscleGroup(muscleGroup)
	if !group.Valid() {
		return []domain.Exercise{}, nil
	}
	return s.exerciseRepo.List(ctx, repository.ExerciseFilter{MuscleGroup: group})
}

func (s *exerciseService) FindByCategory(ctx context.Context, category string) ([]domain.Exercise, error) {
	c := domain.Category(category)
	if !c.Valid() {
		return []domain.Exercise{}, nil
	}
	return s.exerciseRepo.List(ctx, repository.ExerciseFilter{Category: c})
}

func (s *exerciseService) GetByID(ctx context.Context, id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) Create(ctx context.Context, input ExerciseInput) (*domain.Exercise, error) {
	exercise, err := newExercise(input)
	if err != nil {
		return nil, err
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

// BulkCreate validates every entry before inserting any of them.
func (s *exerciseService) BulkCreate(ctx context.Context, inputs []ExerciseInput) ([]domain.Exercise, error) {
	exercises := make([]domain.Exercise, 0, len(inputs))
	for i, input := range inputs {
		exercise, err := newExercise(input)
		if err != nil {
			return nil, fmt.Errorf("exercise %d: %w", i, err)
		}
		exercises = append(exercises, *exercise)
	}
	if err := s.exerciseRepo.CreateMany(ctx, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update applies only the non-empty fields of input on top of the stored
// exercise; enum values are checked only when present.
func (s *exerciseService) Update(ctx context.Context, id string, input ExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mergeExercise(exercise, input); err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *exerciseService) Delete(ctx context.Context, id string) error {
	if err := s.exerciseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

func mergeExercise(exercise *domain.Exercise, input ExerciseInput) error {
	if input.MuscleGroup != "" && !input.MuscleGroup.Valid() {
		return ErrInvalidMuscleGroup
	}
	if input.Category != "" && !input.Category.Valid() {
		return ErrInvalidCategory
	}
	if input.Difficulty != "" && !input.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if input.Name != "" {
		name := sanitizeText(input.Name)
		if name == "" {
			return ErrExerciseNameNeeded
		}
		exercise.Name = name
	}
	if input.Description != "" {
		exercise.Description = sanitizeText(input.Description)
	}
	if input.Equipment != "" {
		exercise.Equipment = sanitizeText(input.Equipment)
	}
	if input.MuscleGroup != "" {
		exercise.MuscleGroup = input.MuscleGroup
	}
	if input.Category != "" {
		exercise.Category = input.Category
	}
	if input.Difficulty != "" {
		exercise.Difficulty = input.Difficulty
	}
	return nil
}

// newExercise validates input strictly against the enums.
func newExercise(input ExerciseInput) (*domain.Exercise, error) {
	name := sanitizeText(input.Name)
	if name == "" {
		return nil, ErrExerciseNameNeeded
	}
	if !input.MuscleGroup.Valid() {
		return nil, ErrInvalidMuscleGroup
	}
	if !input.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyIntermediate
	}
	if !difficulty.Valid() {
		return nil, ErrInvalidDifficulty
	}

	return &domain.Exercise{
		Name:        name,
		Description: sanitizeText(input.Description),
		Category:    input.Category,
		MuscleGroup: input.MuscleGroup,
		Equipment:   sanitizeText(input.Equipment),
		Difficulty:  difficulty,
	}, nil
}
