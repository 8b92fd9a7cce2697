package models

import "time"

const (
	SplitPush   = "Push"
	SplitPull   = "Pull"
	SplitLegs   = "Legs"
	SplitCustom = "Custom"
)

// Exercise is a shared, read-mostly catalog entry.
type Exercise struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	PrimaryMuscle string    `json:"primary_muscle"`
	SplitType     string    `json:"split_type"`
	DefaultSets   int       `json:"default_sets"`
	DefaultReps   string    `json:"default_reps"`
	RestInterval  string    `json:"rest_interval"`
	LinkURL       *string   `json:"link_url,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Routine struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RoutineDay struct {
	ID           int64     `json:"id"`
	RoutineID    int64     `json:"routine_id"`
	Weekday      string    `json:"weekday"`
	SplitType    string    `json:"split_type"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RoutineExercise struct {
	ID           int64     `json:"id"`
	RoutineDayID int64     `json:"routine_day_id"`
	ExerciseID   int64     `json:"exercise_id"`
	SetCount     int       `json:"set_count"`
	RepRange     string    `json:"rep_range"`
	RestInterval string    `json:"rest_interval"`
	Position     int       `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RoutineExerciseDetail struct {
	RoutineExercise
	Exercise Exercise `json:"exercise"`
}

type RoutineDayDetail struct {
	RoutineDay
	Exercises []RoutineExerciseDetail `json:"exercises"`
}

type RoutineDetail struct {
	Routine
	Days []RoutineDayDetail `json:"days"`
}
