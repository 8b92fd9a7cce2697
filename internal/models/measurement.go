package models

import "time"

// Measurement is one body-measurement snapshot. Every numeric field is
// nullable in storage; the legacy combined fields (biceps, forearms, thighs,
// calves) are kept alongside the per-side variants for backward compatibility.
type Measurement struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Date       time.Time `json:"date"`
	Weight     *float64  `json:"weight"`
	Height     *float64  `json:"height"`
	Chest      *float64  `json:"chest"`
	Waist      *float64  `json:"waist"`
	Hips       *float64  `json:"hips"`
	Biceps     *float64  `json:"biceps"`
	Forearms   *float64  `json:"forearms"`
	Thighs     *float64  `json:"thighs"`
	Calves     *float64  `json:"calves"`
	LeftThigh  *float64  `json:"left_thigh"`
	RightThigh *float64  `json:"right_thigh"`
	LeftCalf   *float64  `json:"left_calf"`
	RightCalf  *float64  `json:"right_calf"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
