package domain

import "time"

// User is an account that owns workouts. PasswordHash never leaves the server.
type User struct {
	ID           string    `bson:"_id" json:"id" gorm:"primaryKey;size:36"`
	Username     string    `bson:"username" json:"username" gorm:"uniqueIndex;size:64;not null"`
	Email        string    `bson:"email" json:"email" gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string    `bson:"passwordHash" json:"-" gorm:"not null"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
