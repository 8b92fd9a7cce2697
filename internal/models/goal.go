package models

import "time"

type Milestone struct {
	ID         string     `json:"id"`
	GoalID     int64      `json:"-"`
	Value      float64    `json:"value"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	Reached    bool       `json:"reached"`
	ReachedAt  *time.Time `json:"reached_at,omitempty"`
}

// WeightGoal is the single active goal per user. Milestones are owned
// exclusively by their goal and are discarded when the goal is deleted.
type WeightGoal struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	TargetValue  float64     `json:"target_value"`
	CurrentValue float64     `json:"current_value"`
	StartDate    time.Time   `json:"start_date"`
	TargetDate   *time.Time  `json:"target_date"`
	Milestones   []Milestone `json:"milestones"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// IsLoss reports whether the goal is a loss goal relative to the given
// current weight.
func (g *WeightGoal) IsLoss(currentWeight float64) bool {
	return g.TargetValue < currentWeight
}
