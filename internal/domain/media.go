package domain

import "time"

// Media stores metadata about a photo or video attached to a workout.
// The object itself lives in S3 under ObjectKey.
type Media struct {
	ID          string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	WorkoutID   string    `bson:"workoutId" json:"workoutId" gorm:"size:36;not null;index"`
	UserID      string    `bson:"userId" json:"userId" gorm:"size:36;not null"`
	ObjectKey   string    `bson:"objectKey" json:"-" gorm:"size:512;not null"`
	FileName    string    `bson:"fileName" json:"fileName" gorm:"size:255"`
	ContentType string    `bson:"contentType" json:"contentType" gorm:"size:128"`
	Size        int64     `bson:"size" json:"size"`
	UploadedAt  time.Time `bson:"uploadedAt" json:"uploadedAt"`
}

func (Media) TableName() string { return "workout_media" }
