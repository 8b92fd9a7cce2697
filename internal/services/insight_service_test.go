package services

import (
	"context"
	"strings"
	"testing"

	"github.com/karan-monga/repsandrulers/internal/models"
)

func TestFallbackInsightsWeightLoss(t *testing.T) {
	stats := &RenphoStats{WeightTrendLb: f(-3.2)}

	insights := fallbackInsights(stats)

	if insights[0].Type != InsightPositive {
		t.Errorf("type = %q", insights[0].Type)
	}
	if !strings.Contains(insights[0].Description, "3.2 pounds") {
		t.Errorf("description = %q", insights[0].Description)
	}
}

func TestFallbackInsightsWeightGainWarning(t *testing.T) {
	stats := &RenphoStats{WeightTrendLb: f(2.5), BodyFatTrend: f(1)}

	insights := fallbackInsights(stats)

	if insights[0].Type != InsightWarning {
		t.Errorf("type = %q", insights[0].Type)
	}
}

func TestFallbackInsightsPlateau(t *testing.T) {
	stats := &RenphoStats{WeightTrendLb: f(0.2), BodyFatTrend: f(-0.1)}

	insights := fallbackInsights(stats)

	found := false
	for _, in := range insights {
		if in.Title == "Progress Plateau Detected" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected plateau insight, got %+v", insights)
	}
}

func TestFallbackInsightsHighBodyFat(t *testing.T) {
	stats := &RenphoStats{WeightTrendLb: f(1), BodyFatTrend: f(0.8), AvgBodyFatPercent: f(27.3)}

	insights := fallbackInsights(stats)

	found := false
	for _, in := range insights {
		if in.Title == "Body Fat Optimization Opportunity" && strings.Contains(in.Description, "27.3%") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected body fat insight, got %+v", insights)
	}
}

func TestFallbackInsightsEncouragementWhenQuiet(t *testing.T) {
	stats := &RenphoStats{WeightTrendLb: f(1), BodyFatTrend: f(0.8)}

	insights := fallbackInsights(stats)

	if len(insights) != 1 || insights[0].Title != "Consistent Tracking!" {
		t.Errorf("expected single encouragement, got %+v", insights)
	}
}

func TestFallbackInsightsCapsAtFour(t *testing.T) {
	stats := &RenphoStats{
		WeightTrendLb:     f(-3),
		BodyFatTrend:      f(-2),
		MuscleMassTrendLb: f(1.5),
		AvgBodyFatPercent: f(28),
	}

	insights := fallbackInsights(stats)
	if len(insights) > 4 {
		t.Errorf("expected at most 4 insights, got %d", len(insights))
	}
}

func TestAnalyzeUsesRemoteWhenAvailable(t *testing.T) {
	store := &stubRenphoStore{measurements: []models.RenphoMeasurement{
		{WeightLb: 180}, {WeightLb: 178},
	}}
	client := &stubCompletion{response: `[{"type":"positive","title":"Nice","description":"Keep going","confidence":0.8}]`}
	service := NewInsightService(NewRenphoService(store), client)

	report, err := service.Analyze(context.Background(), 1, nil, nil, "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Source != SourceRemote {
		t.Errorf("source = %q", report.Source)
	}
	if len(report.Insights) != 1 || report.Insights[0].Title != "Nice" {
		t.Errorf("insights = %+v", report.Insights)
	}
}

func TestAnalyzeFallsBackWithoutClient(t *testing.T) {
	store := &stubRenphoStore{measurements: []models.RenphoMeasurement{
		{WeightLb: 182}, {WeightLb: 178},
	}}
	service := NewInsightService(NewRenphoService(store), nil)

	report, err := service.Analyze(context.Background(), 1, nil, nil, "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if report.Source != SourceFallback {
		t.Errorf("source = %q", report.Source)
	}
	if len(report.Insights) == 0 {
		t.Error("expected fallback insights")
	}
}

func TestExtractJSONStripsFences(t *testing.T) {
	raw := "```json\n[{\"type\":\"positive\"}]\n```"
	got := extractJSON(raw)
	if got != `[{"type":"positive"}]` {
		t.Errorf("extractJSON = %q", got)
	}
}
