package domain

import "time"

// Category classifies the kind of training an exercise belongs to.
type Category string

const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
	CategoryBalance     Category = "balance"
	CategoryOther       Category = "other"
)

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "chest"
	MuscleGroupBack      MuscleGroup = "back"
	MuscleGroupShoulders MuscleGroup = "shoulders"
	MuscleGroupBiceps    MuscleGroup = "biceps"
	MuscleGroupTriceps   MuscleGroup = "triceps"
	MuscleGroupLegs      MuscleGroup = "legs"
	MuscleGroupCore      MuscleGroup = "core"
	MuscleGroupFullBody  MuscleGroup = "full_body"
	MuscleGroupOther     MuscleGroup = "other"
)

// Difficulty of an exercise. Defaults to intermediate.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var (
	categories   = []Category{CategoryStrength, CategoryCardio, CategoryFlexibility, CategoryBalance, CategoryOther}
	muscleGroups = []MuscleGroup{
		MuscleGroupChest, MuscleGroupBack, MuscleGroupShoulders, MuscleGroupBiceps, MuscleGroupTriceps,
		MuscleGroupLegs, MuscleGroupCore, MuscleGroupFullBody, MuscleGroupOther,
	}
	difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
)

func (c Category) Valid() bool {
	for _, v := range categories {
		if c == v {
			return true
		}
	}
	return false
}

func (m MuscleGroup) Valid() bool {
	for _, v := range muscleGroups {
		if m == v {
			return true
		}
	}
	return false
}

func (d Difficulty) Valid() bool {
	for _, v := range difficulties {
		if d == v {
			return true
		}
	}
	return false
}

// Exercise is a shared catalog entry. Workouts reference it by ID.
type Exercise struct {
	ID          string      `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	Name        string      `bson:"name" json:"name" gorm:"size:128;not null;index:idx_exercises_muscle_name,priority:2"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Category    Category    `bson:"category" json:"category" gorm:"size:32;not null;index"`
	MuscleGroup MuscleGroup `bson:"muscleGroup" json:"muscleGroup" gorm:"size:32;not null;index:idx_exercises_muscle_name,priority:1"`
	Equipment   string      `bson:"equipment,omitempty" json:"equipment,omitempty" gorm:"size:128"`
	Difficulty  Difficulty  `bson:"difficulty" json:"difficulty" gorm:"size:32;not null"`
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}
