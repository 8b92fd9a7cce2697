package services

import (
	"context"
	"time"

	"github.com/karan-monga/repsandrulers/internal/importer"
	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type renphoStore interface {
	InsertBatch(ctx context.Context, userID int64, inputs []repository.RenphoInput) (int, error)
	List(ctx context.Context, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error)
	ListAsc(ctx context.Context, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error)
	Latest(ctx context.Context, userID int64) (*models.RenphoMeasurement, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	Clear(ctx context.Context, userID int64) (int64, error)
}

type RenphoService struct {
	renpho renphoStore
}

func NewRenphoService(renpho renphoStore) *RenphoService {
	return &RenphoService{renpho: renpho}
}

// Import validates the vendor CSV and writes all valid rows. Validation is all
// or nothing: any error, header or row level, means nothing is written.
func (s *RenphoService) Import(ctx context.Context, userID int64, raw string) (int, []string, error) {
	rows, errs, err := importer.ParseRenpho(raw)
	if err != nil {
		return 0, nil, err
	}
	if len(errs) > 0 {
		return 0, errs, nil
	}

	inputs := make([]repository.RenphoInput, 0, len(rows))
	for _, row := range rows {
		inputs = append(inputs, repository.RenphoInput{
			TimeOfMeasurement:      row.TimeOfMeasurement,
			WeightLb:               row.WeightLb,
			BMI:                    row.BMI,
			BodyFatPercent:         row.BodyFatPercent,
			FatFreeBodyWeightLb:    row.FatFreeBodyWeightLb,
			SubcutaneousFatPercent: row.SubcutaneousFatPercent,
			VisceralFat:            row.VisceralFat,
			BodyWaterPercent:       row.BodyWaterPercent,
			SkeletalMusclePercent:  row.SkeletalMusclePercent,
			MuscleMassLb:           row.MuscleMassLb,
			BoneMassLb:             row.BoneMassLb,
			ProteinPercent:         row.ProteinPercent,
			BMRKcal:                row.BMRKcal,
			MetabolicAge:           row.MetabolicAge,
		})
	}

	inserted, err := s.renpho.InsertBatch(ctx, userID, inputs)
	if err != nil {
		return inserted, nil, err
	}
	return inserted, nil, nil
}

func (s *RenphoService) List(ctx context.Context, userID int64, from, to *time.Time) ([]models.RenphoMeasurement, error) {
	return s.renpho.List(ctx, userID, from, to)
}

func (s *RenphoService) Latest(ctx context.Context, userID int64) (*models.RenphoMeasurement, error) {
	return s.renpho.Latest(ctx, userID)
}

func (s *RenphoService) Delete(ctx context.Context, userID, id int64) (bool, error) {
	return s.renpho.Delete(ctx, userID, id)
}

func (s *RenphoService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.renpho.Clear(ctx, userID)
}

// RenphoStats summarizes a time range. Averages skip absent metrics; trends
// are latest minus earliest over the range.
type RenphoStats struct {
	Count             int      `json:"count"`
	AvgWeightLb       float64  `json:"avg_weight_lb"`
	AvgBMI            *float64 `json:"avg_bmi"`
	AvgBodyFatPercent *float64 `json:"avg_body_fat_percent"`
	AvgMuscleMassLb   *float64 `json:"avg_muscle_mass_lb"`
	WeightTrendLb     *float64 `json:"weight_trend_lb"`
	BodyFatTrend      *float64 `json:"body_fat_trend"`
	MuscleMassTrendLb *float64 `json:"muscle_mass_trend_lb"`
}

func (s *RenphoService) ComputeStats(ctx context.Context, userID int64, from, to *time.Time) (*RenphoStats, error) {
	measurements, err := s.renpho.ListAsc(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &RenphoStats{Count: len(measurements)}
	if len(measurements) == 0 {
		return stats, nil
	}

	var weightSum float64
	var weightCount int
	for _, m := range measurements {
		if m.WeightLb > 0 {
			weightSum += m.WeightLb
			weightCount++
		}
	}
	if weightCount > 0 {
		stats.AvgWeightLb = weightSum / float64(weightCount)
	}

	stats.AvgBMI = average(measurements, func(m models.RenphoMeasurement) *float64 { return m.BMI })
	stats.AvgBodyFatPercent = average(measurements, func(m models.RenphoMeasurement) *float64 { return m.BodyFatPercent })
	stats.AvgMuscleMassLb = average(measurements, func(m models.RenphoMeasurement) *float64 { return m.MuscleMassLb })

	first, last := measurements[0], measurements[len(measurements)-1]
	if len(measurements) > 1 {
		trend := last.WeightLb - first.WeightLb
		stats.WeightTrendLb = &trend
		stats.BodyFatTrend = diff(first.BodyFatPercent, last.BodyFatPercent)
		stats.MuscleMassTrendLb = diff(first.MuscleMassLb, last.MuscleMassLb)
	}

	return stats, nil
}

func average(measurements []models.RenphoMeasurement, pick func(models.RenphoMeasurement) *float64) *float64 {
	var sum float64
	var count int
	for _, m := range measurements {
		if v := pick(m); v != nil {
			sum += *v
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}

func diff(first, last *float64) *float64 {
	if first == nil || last == nil {
		return nil
	}
	d := *last - *first
	return &d
}
