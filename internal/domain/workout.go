package domain

import "time"

// Workout is a single logged session owned by one user.
type Workout struct {
	ID        string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	UserID    string    `bson:"userId" json:"userId" gorm:"size:36;not null;index:idx_workouts_user_date,priority:1"`
	Name      string    `bson:"name" json:"name" gorm:"size:255;not null"`
	Date      time.Time `bson:"date" json:"date" gorm:"not null;index:idx_workouts_user_date,priority:2"`
	Duration  *int      `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutExercise places a catalog exercise inside a workout. Order is
// 1-based and assigned at append time. Nothing prevents the same exercise
// appearing twice in one workout.
type WorkoutExercise struct {
	ID         string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	WorkoutID  string    `bson:"workoutId" json:"workoutId" gorm:"size:36;not null;index"`
	ExerciseID string    `bson:"exerciseId" json:"exerciseId" gorm:"size:36;not null;index"`
	Order      int       `bson:"order" json:"order" gorm:"column:sort_order;not null"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Set is one performed set of a WorkoutExercise. Order is caller supplied.
type Set struct {
	ID                string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	WorkoutExerciseID string    `bson:"workoutExerciseId" json:"workoutExerciseId" gorm:"size:36;not null;index"`
	Weight            *float64  `bson:"weight,omitempty" json:"weight,omitempty"`
	Reps              *int      `bson:"reps,omitempty" json:"reps,omitempty"`
	Duration          *int      `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	Distance          *float64  `bson:"distance,omitempty" json:"distance,omitempty"`
	Order             int       `bson:"order" json:"order" gorm:"column:sort_order;not null"`
	Notes             string    `bson:"notes,omitempty" json:"notes,omitempty" gorm:"type:text"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

func (Set) TableName() string { return "exercise_sets" }

// WorkoutDetail is a workout reassembled with its exercises and their sets,
// exercises ordered by WorkoutExercise.Order and sets by Set.Order.
type WorkoutDetail struct {
	Workout
	Exercises []WorkoutExerciseDetail `json:"exercises"`
}

// WorkoutExerciseDetail is a catalog exercise as it appears in one workout.
type WorkoutExerciseDetail struct {
	Exercise
	WorkoutExercise WorkoutExerciseInfo `json:"workoutExercise"`
	Sets            []Set               `json:"sets"`
}

type WorkoutExerciseInfo struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
	Notes string `json:"notes,omitempty"`
}

// WorkoutStats summarises a user's workouts over a trailing window.
type WorkoutStats struct {
	TotalWorkouts   int     `json:"totalWorkouts"`
	TotalDuration   int     `json:"totalDuration"`
	AverageDuration int     `json:"averageDuration"`
	WorkoutsPerWeek float64 `json:"workoutsPerWeek"`
}
