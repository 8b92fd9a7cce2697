package models

import "time"

// RenphoMeasurement is a body-composition snapshot imported verbatim from a
// Renpho smart-scale CSV export. It is independent of Measurement.
type RenphoMeasurement struct {
	ID                     int64     `json:"id"`
	UserID                 int64     `json:"user_id"`
	TimeOfMeasurement      time.Time `json:"time_of_measurement"`
	WeightLb               float64   `json:"weight_lb"`
	BMI                    *float64  `json:"bmi"`
	BodyFatPercent         *float64  `json:"body_fat_percent"`
	FatFreeBodyWeightLb    *float64  `json:"fat_free_body_weight_lb"`
	SubcutaneousFatPercent *float64  `json:"subcutaneous_fat_percent"`
	VisceralFat            *float64  `json:"visceral_fat"`
	BodyWaterPercent       *float64  `json:"body_water_percent"`
	SkeletalMusclePercent  *float64  `json:"skeletal_muscle_percent"`
	MuscleMassLb           *float64  `json:"muscle_mass_lb"`
	BoneMassLb             *float64  `json:"bone_mass_lb"`
	ProteinPercent         *float64  `json:"protein_percent"`
	BMRKcal                *int      `json:"bmr_kcal"`
	MetabolicAge           *int      `json:"metabolic_age"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
