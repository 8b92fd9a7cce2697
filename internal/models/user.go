package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserProfile struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	UnitPreference string    `json:"unit_preference"`
	HeightCM       *float64  `json:"height_cm"`
	WeightKG       *float64  `json:"weight_kg"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
