package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/karan-monga/repsandrulers/internal/models"
)

const (
	InsightPositive    = "positive"
	InsightWarning     = "warning"
	InsightSuggestion  = "suggestion"
	InsightAchievement = "achievement"
)

const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

type Insight struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ActionItems []string `json:"action_items,omitempty"`
	Confidence  float64  `json:"confidence"`
}

// InsightReport carries the insights plus where they came from, so clients
// can label model-generated advice differently from rule-based advice.
type InsightReport struct {
	Insights    []Insight `json:"insights"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}

type InsightService struct {
	renpho *RenphoService
	client CompletionClient
}

func NewInsightService(renpho *RenphoService, client CompletionClient) *InsightService {
	return &InsightService{renpho: renpho, client: client}
}

const insightSystemPrompt = `You are a fitness coach analyzing body-composition data.
Respond with a JSON array of at most 4 objects, each with fields:
"type" (one of "positive", "warning", "suggestion", "achievement"),
"title", "description", "action_items" (array of strings), and
"confidence" (0 to 1). Respond with the JSON array only.`

// Analyze builds insights for the user's recent body-composition history.
// When a completion client is available its answer is used; any failure
// falls back to local rule-based analysis so the endpoint always answers.
func (s *InsightService) Analyze(ctx context.Context, userID int64, from, to *time.Time, goals string) (*InsightReport, error) {
	stats, err := s.renpho.ComputeStats(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	recent, err := s.renpho.List(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if len(recent) > 5 {
		recent = recent[:5]
	}

	if s.client != nil {
		if insights, err := s.analyzeRemote(ctx, stats, recent, goals); err == nil {
			return &InsightReport{Insights: insights, Source: SourceRemote, GeneratedAt: time.Now()}, nil
		}
	}

	return &InsightReport{
		Insights:    fallbackInsights(stats),
		Source:      SourceFallback,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *InsightService) analyzeRemote(ctx context.Context, stats *RenphoStats, recent []models.RenphoMeasurement, goals string) ([]Insight, error) {
	if goals == "" {
		goals = "General fitness and health improvement"
	}

	payload := map[string]any{
		"stats":               stats,
		"recent_measurements": recent,
		"user_goals":          goals,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Analyze this fitness data and provide actionable insights:\n%s", data)
	raw, err := s.client.Complete(ctx, insightSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var insights []Insight
	if err := json.Unmarshal([]byte(extractJSON(raw)), &insights); err != nil {
		return nil, fmt.Errorf("decode insights: %w", err)
	}
	if len(insights) == 0 {
		return nil, fmt.Errorf("empty insight response")
	}
	if len(insights) > 4 {
		insights = insights[:4]
	}
	return insights, nil
}

// extractJSON trims prose and markdown fences around a JSON payload.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "[{"); i >= 0 {
		if j := strings.LastIndexAny(raw, "]}"); j > i {
			return raw[i : j+1]
		}
	}
	return raw
}

// fallbackInsights is the rule-based analyzer used when no model is
// reachable. At most 4 insights are returned; with nothing notable to say it
// returns a single encouragement.
func fallbackInsights(stats *RenphoStats) []Insight {
	var insights []Insight

	weightTrend := deref(stats.WeightTrendLb)
	fatTrend := deref(stats.BodyFatTrend)
	muscleTrend := deref(stats.MuscleMassTrendLb)

	if weightTrend < -2 {
		insights = append(insights, Insight{
			Type:  InsightPositive,
			Title: "Great Weight Loss Progress!",
			Description: fmt.Sprintf("You've lost %.1f pounds recently. This is a healthy rate of weight loss that suggests you're in a good caloric deficit.",
				math.Abs(weightTrend)),
			ActionItems: []string{
				"Maintain your current nutrition and exercise routine",
				"Consider adding strength training to preserve muscle mass",
				"Monitor energy levels and adjust if needed",
			},
			Confidence: 0.9,
		})
	} else if weightTrend > 2 {
		insights = append(insights, Insight{
			Type:  InsightWarning,
			Title: "Weight Gain Detected",
			Description: fmt.Sprintf("You've gained %.1f pounds recently. This might be muscle gain, but let's check your body composition.",
				weightTrend),
			ActionItems: []string{
				"Review your nutrition and portion sizes",
				"Increase cardio or activity level",
				"Track your body fat percentage more closely",
			},
			Confidence: 0.8,
		})
	}

	if fatTrend < -1 {
		insights = append(insights, Insight{
			Type:  InsightAchievement,
			Title: "Body Fat Reduction Success!",
			Description: fmt.Sprintf("Your body fat percentage has decreased by %.1f%%. This indicates you're losing fat while potentially maintaining muscle.",
				math.Abs(fatTrend)),
			ActionItems: []string{
				"Continue with your current routine",
				"Consider progressive overload in strength training",
				"Maintain adequate protein intake",
			},
			Confidence: 0.95,
		})
	}

	if muscleTrend > 1 {
		insights = append(insights, Insight{
			Type:  InsightPositive,
			Title: "Muscle Mass Building!",
			Description: fmt.Sprintf("You've gained %.1f pounds of muscle mass. This is excellent progress for strength and body composition.",
				muscleTrend),
			ActionItems: []string{
				"Continue with progressive overload",
				"Ensure adequate protein intake (1.6-2.2g per kg body weight)",
				"Get sufficient sleep for muscle recovery",
			},
			Confidence: 0.9,
		})
	}

	if math.Abs(weightTrend) < 0.5 && math.Abs(fatTrend) < 0.5 {
		insights = append(insights, Insight{
			Type:        InsightSuggestion,
			Title:       "Progress Plateau Detected",
			Description: "Your measurements have been relatively stable recently. This might indicate a plateau in your progress.",
			ActionItems: []string{
				"Increase workout intensity or frequency",
				"Adjust your caloric intake",
				"Try new exercises or training methods",
				"Consider a deload week then ramp up",
			},
			Confidence: 0.7,
		})
	}

	if stats.AvgBodyFatPercent != nil && *stats.AvgBodyFatPercent > 25 {
		insights = append(insights, Insight{
			Type:  InsightSuggestion,
			Title: "Body Fat Optimization Opportunity",
			Description: fmt.Sprintf("Your current body fat percentage of %.1f%% is above the recommended range for optimal health and performance.",
				*stats.AvgBodyFatPercent),
			ActionItems: []string{
				"Focus on creating a moderate caloric deficit",
				"Increase protein intake to preserve muscle",
				"Add more cardio sessions",
				"Consider tracking your macros more closely",
			},
			Confidence: 0.8,
		})
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Type:        InsightPositive,
			Title:       "Consistent Tracking!",
			Description: "Great job maintaining consistent measurements. Regular tracking is key to long-term success.",
			ActionItems: []string{
				"Continue tracking your progress",
				"Set specific, measurable goals",
				"Consider adding more measurement types",
			},
			Confidence: 0.6,
		})
	}

	if len(insights) > 4 {
		insights = insights[:4]
	}
	return insights
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
