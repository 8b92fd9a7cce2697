package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type stubRenphoStore struct {
	measurements []models.RenphoMeasurement
	inserted     []repository.RenphoInput
}

func (s *stubRenphoStore) InsertBatch(_ context.Context, _ int64, inputs []repository.RenphoInput) (int, error) {
	s.inserted = append(s.inserted, inputs...)
	return len(inputs), nil
}

func (s *stubRenphoStore) List(_ context.Context, _ int64, _, _ *time.Time) ([]models.RenphoMeasurement, error) {
	out := make([]models.RenphoMeasurement, len(s.measurements))
	for i, m := range s.measurements {
		out[len(s.measurements)-1-i] = m
	}
	return out, nil
}

func (s *stubRenphoStore) ListAsc(_ context.Context, _ int64, _, _ *time.Time) ([]models.RenphoMeasurement, error) {
	return s.measurements, nil
}

func (s *stubRenphoStore) Latest(_ context.Context, _ int64) (*models.RenphoMeasurement, error) {
	return &s.measurements[len(s.measurements)-1], nil
}

func (s *stubRenphoStore) Delete(_ context.Context, _, _ int64) (bool, error) { return true, nil }

func (s *stubRenphoStore) Clear(_ context.Context, _ int64) (int64, error) {
	return int64(len(s.measurements)), nil
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStatsAveragesSkipAbsent(t *testing.T) {
	store := &stubRenphoStore{measurements: []models.RenphoMeasurement{
		{WeightLb: 180, BodyFatPercent: f(20)},
		{WeightLb: 178},
		{WeightLb: 176, BodyFatPercent: f(18)},
	}}
	service := NewRenphoService(store)

	stats, err := service.ComputeStats(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}

	if stats.Count != 3 {
		t.Errorf("count = %d", stats.Count)
	}
	if !almostEqual(stats.AvgWeightLb, 178) {
		t.Errorf("avg weight = %v", stats.AvgWeightLb)
	}
	// Only the two rows with a value participate.
	if stats.AvgBodyFatPercent == nil || !almostEqual(*stats.AvgBodyFatPercent, 19) {
		t.Errorf("avg body fat = %v", stats.AvgBodyFatPercent)
	}
	if stats.AvgBMI != nil {
		t.Error("avg bmi should be absent when no row has one")
	}
}

func TestComputeStatsTrends(t *testing.T) {
	store := &stubRenphoStore{measurements: []models.RenphoMeasurement{
		{WeightLb: 182, BodyFatPercent: f(21), MuscleMassLb: f(78)},
		{WeightLb: 180},
		{WeightLb: 178.5, BodyFatPercent: f(19.5), MuscleMassLb: f(79.2)},
	}}
	service := NewRenphoService(store)

	stats, err := service.ComputeStats(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}

	if stats.WeightTrendLb == nil || !almostEqual(*stats.WeightTrendLb, -3.5) {
		t.Errorf("weight trend = %v", stats.WeightTrendLb)
	}
	if stats.BodyFatTrend == nil || !almostEqual(*stats.BodyFatTrend, -1.5) {
		t.Errorf("body fat trend = %v", stats.BodyFatTrend)
	}
	if stats.MuscleMassTrendLb == nil || !almostEqual(*stats.MuscleMassTrendLb, 1.2) {
		t.Errorf("muscle trend = %v", stats.MuscleMassTrendLb)
	}
}

func TestComputeStatsEmptyRange(t *testing.T) {
	service := NewRenphoService(&stubRenphoStore{})

	stats, err := service.ComputeStats(context.Background(), 1, nil, nil)
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if stats.Count != 0 || stats.WeightTrendLb != nil {
		t.Errorf("stats = %+v", stats)
	}
}

func TestImportWritesAllValidRows(t *testing.T) {
	store := &stubRenphoStore{}
	service := NewRenphoService(store)

	raw := "Time of Measurement,Weight(lb),BMI,Body Fat(%),Fat-free Body Weight(lb),Subcutaneous Fat(%),Visceral Fat,Body Water(%),Skeletal Muscle(%),Muscle Mass(lb),Bone Mass(lb),Protein(%),BMR(kcal),Metabolic Age\n" +
		"2024-01-01 08:00:00,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n"

	imported, errs, err := service.Import(context.Background(), 1, raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if imported != 1 || len(store.inserted) != 1 {
		t.Fatalf("imported = %d", imported)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	store := &stubRenphoStore{}
	service := NewRenphoService(store)

	raw := "Time of Measurement,Weight(lb),BMI,Body Fat(%),Fat-free Body Weight(lb),Subcutaneous Fat(%),Visceral Fat,Body Water(%),Skeletal Muscle(%),Muscle Mass(lb),Bone Mass(lb),Protein(%),BMR(kcal),Metabolic Age\n" +
		"2024-01-01 08:00:00,176.4,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n" +
		"bad-date,175.0,24.1,18.5,143.7,15.2,7,55.1,44.8,79.0,7.1,17.9,1720,34\n"

	imported, errs, err := service.Import(context.Background(), 1, raw)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imported != 0 || len(store.inserted) != 0 {
		t.Fatal("expected nothing written when any row fails")
	}
	if len(errs) != 1 {
		t.Fatalf("errors = %v", errs)
	}
}
