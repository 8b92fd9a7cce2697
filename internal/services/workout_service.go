package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/karan-monga/repsandrulers/internal/models"
	"github.com/karan-monga/repsandrulers/internal/repository"
)

type WorkoutRequest struct {
	Goal           string   `json:"goal"`
	Experience     string   `json:"experience"`
	DaysPerWeek    int      `json:"days_per_week"`
	Equipment      []string `json:"equipment"`
	FocusAreas     []string `json:"focus_areas"`
	TimePerWorkout int      `json:"time_per_workout"`
	SplitType      string   `json:"split_type"`
}

type WorkoutExercise struct {
	Exercise models.Exercise `json:"exercise"`
	Sets     int             `json:"sets"`
	Reps     string          `json:"reps"`
	RestTime string          `json:"rest_time"`
	Notes    *string         `json:"notes,omitempty"`
}

type WorkoutDay struct {
	Day               string            `json:"day"`
	Focus             string            `json:"focus"`
	Exercises         []WorkoutExercise `json:"exercises"`
	EstimatedDuration int               `json:"estimated_duration"`
}

type GeneratedWorkout struct {
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Days          []WorkoutDay `json:"days"`
	TotalDuration int          `json:"total_duration"`
	Difficulty    string       `json:"difficulty"`
	Notes         []string     `json:"notes"`
	Source        string       `json:"source"`
}

type exerciseCatalog interface {
	List(ctx context.Context, filter repository.ExerciseFilter) ([]models.Exercise, error)
}

type WorkoutService struct {
	exercises exerciseCatalog
	client    CompletionClient
}

func NewWorkoutService(exercises exerciseCatalog, client CompletionClient) *WorkoutService {
	return &WorkoutService{exercises: exercises, client: client}
}

const workoutSystemPrompt = "You are a certified personal trainer and fitness expert. " +
	"Create personalized workout routines that are safe, effective, and tailored to the user's specific needs and equipment."

// Generate produces a workout plan from the exercise catalog. A model answer
// is preferred; any failure to reach or parse it falls back to a local
// push/pull/legs plan so the endpoint always answers.
func (s *WorkoutService) Generate(ctx context.Context, req WorkoutRequest) (*GeneratedWorkout, error) {
	if req.DaysPerWeek <= 0 || req.DaysPerWeek > 7 {
		return nil, ErrInvalidInput
	}

	available, err := s.exercises.List(ctx, repository.ExerciseFilter{})
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		if workout, err := s.generateRemote(ctx, req, available); err == nil {
			workout.Source = SourceRemote
			return workout, nil
		}
	}

	workout := fallbackWorkout(req, available)
	workout.Source = SourceFallback
	return workout, nil
}

// rawWorkout mirrors the JSON shape the model is asked to produce, with
// exercises referenced by name.
type rawWorkout struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Days        []struct {
		Day       string `json:"day"`
		Focus     string `json:"focus"`
		Exercises []struct {
			ExerciseName string  `json:"exerciseName"`
			Sets         int     `json:"sets"`
			Reps         string  `json:"reps"`
			RestTime     string  `json:"restTime"`
			Notes        *string `json:"notes"`
		} `json:"exercises"`
		EstimatedDuration int `json:"estimatedDuration"`
	} `json:"days"`
	TotalDuration int      `json:"totalDuration"`
	Difficulty    string   `json:"difficulty"`
	Notes         []string `json:"notes"`
}

func (s *WorkoutService) generateRemote(ctx context.Context, req WorkoutRequest, available []models.Exercise) (*GeneratedWorkout, error) {
	raw, err := s.client.Complete(ctx, workoutSystemPrompt, buildWorkoutPrompt(req, available))
	if err != nil {
		return nil, err
	}

	var parsed rawWorkout
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("decode workout: %w", err)
	}
	if len(parsed.Days) == 0 {
		return nil, fmt.Errorf("workout has no days")
	}

	return resolveWorkout(parsed, available), nil
}

func buildWorkoutPrompt(req WorkoutRequest, available []models.Exercise) string {
	focus := strings.Join(req.FocusAreas, ", ")
	if focus == "" {
		focus = "General"
	}
	timePer := req.TimePerWorkout
	if timePer == 0 {
		timePer = 60
	}
	split := req.SplitType
	if split == "" {
		split = "Any"
	}

	var list strings.Builder
	limit := len(available)
	if limit > 50 {
		limit = 50
	}
	for _, ex := range available[:limit] {
		fmt.Fprintf(&list, "- %s (%s, %s, %d sets, %s reps)\n",
			ex.Name, ex.PrimaryMuscle, ex.SplitType, ex.DefaultSets, ex.DefaultReps)
	}

	return fmt.Sprintf(`Generate a personalized workout routine based on these requirements:

User Requirements:
- Goal: %s
- Experience Level: %s
- Days per week: %d
- Available equipment: %s
- Focus areas: %s
- Time per workout: %d minutes
- Split type preference: %s

Available Exercises (%d total):
%s
Please create a complete workout routine in this JSON format:
{
  "name": "Workout Name",
  "description": "Brief description of the workout",
  "days": [
    {
      "day": "Day 1",
      "focus": "Push",
      "exercises": [
        {
          "exerciseName": "Exercise Name",
          "sets": 3,
          "reps": "8-12",
          "restTime": "90s",
          "notes": "Optional notes"
        }
      ],
      "estimatedDuration": 45
    }
  ],
  "totalDuration": 180,
  "difficulty": "Beginner/Intermediate/Advanced",
  "notes": ["Note 1", "Note 2"]
}

Guidelines:
1. Match exercises to user's equipment availability
2. Consider experience level for exercise selection and volume
3. Balance muscle groups appropriately
4. Include proper warm-up and cool-down recommendations
5. Provide realistic rest times and set/rep schemes
6. Focus on the user's specific goal
7. Ensure total workout time matches user's availability

Return only valid JSON.`,
		req.Goal, req.Experience, req.DaysPerWeek, strings.Join(req.Equipment, ", "),
		focus, timePer, split, len(available), list.String())
}

// resolveWorkout maps model-chosen exercise names back onto catalog entries.
// Matching is case-insensitive and tolerant of partial names; an unmatched
// name falls back to a catalog entry from the day's split, then to the first
// catalog entry.
func resolveWorkout(parsed rawWorkout, available []models.Exercise) *GeneratedWorkout {
	workout := &GeneratedWorkout{
		Name:          parsed.Name,
		Description:   parsed.Description,
		TotalDuration: parsed.TotalDuration,
		Difficulty:    parsed.Difficulty,
		Notes:         parsed.Notes,
	}
	if workout.Notes == nil {
		workout.Notes = []string{}
	}

	for _, day := range parsed.Days {
		resolved := WorkoutDay{
			Day:               day.Day,
			Focus:             day.Focus,
			Exercises:         []WorkoutExercise{},
			EstimatedDuration: day.EstimatedDuration,
		}
		if resolved.EstimatedDuration == 0 {
			resolved.EstimatedDuration = 45
		}

		for _, raw := range day.Exercises {
			exercise := matchExercise(raw.ExerciseName, day.Focus, available)
			if exercise == nil {
				continue
			}
			we := WorkoutExercise{
				Exercise: *exercise,
				Sets:     raw.Sets,
				Reps:     raw.Reps,
				RestTime: raw.RestTime,
				Notes:    raw.Notes,
			}
			if we.Sets == 0 {
				we.Sets = 3
			}
			if we.Reps == "" {
				we.Reps = "8-12"
			}
			if we.RestTime == "" {
				we.RestTime = "90s"
			}
			resolved.Exercises = append(resolved.Exercises, we)
		}
		workout.Days = append(workout.Days, resolved)
	}
	return workout
}

func matchExercise(name, focus string, available []models.Exercise) *models.Exercise {
	if len(available) == 0 {
		return nil
	}
	lower := strings.ToLower(name)

	for i, ex := range available {
		exLower := strings.ToLower(ex.Name)
		if strings.Contains(exLower, lower) || strings.Contains(lower, exLower) {
			return &available[i]
		}
	}
	for i, ex := range available {
		if strings.Contains(strings.ToLower(ex.PrimaryMuscle), lower) || ex.SplitType == focus {
			return &available[i]
		}
	}
	return &available[0]
}

// fallbackWorkout builds a push/pull/legs plan directly from the catalog.
func fallbackWorkout(req WorkoutRequest, available []models.Exercise) *GeneratedWorkout {
	sets := 4
	if req.Experience == "beginner" {
		sets = 3
	}
	reps := "8-12"
	if req.Goal == "strength" {
		reps = "5-8"
	}

	var days []WorkoutDay
	if req.DaysPerWeek >= 3 {
		splits := []string{models.SplitPush, models.SplitPull, models.SplitLegs}
		for i, split := range splits {
			picked := pickBySplit(available, split, 4)
			if len(picked) == 0 {
				continue
			}
			day := WorkoutDay{
				Day:               fmt.Sprintf("Day %d", i+1),
				Focus:             split,
				Exercises:         []WorkoutExercise{},
				EstimatedDuration: 45,
			}
			for _, ex := range picked {
				day.Exercises = append(day.Exercises, WorkoutExercise{
					Exercise: ex,
					Sets:     sets,
					Reps:     reps,
					RestTime: "90s",
				})
			}
			days = append(days, day)
		}
	}
	if days == nil {
		days = []WorkoutDay{}
	}

	goal := strings.ReplaceAll(req.Goal, "_", " ")
	return &GeneratedWorkout{
		Name:          strings.ToUpper(fmt.Sprintf("%s %s ROUTINE", goal, req.Experience)),
		Description:   fmt.Sprintf("A %d-day %s workout routine focused on %s.", req.DaysPerWeek, req.Experience, goal),
		Days:          days,
		TotalDuration: len(days) * 45,
		Difficulty:    req.Experience,
		Notes: []string{
			"Perform each exercise with proper form",
			"Rest between sets as indicated",
			"Progressive overload: gradually increase weight or reps",
			"Listen to your body and adjust intensity as needed",
		},
	}
}

func pickBySplit(available []models.Exercise, split string, limit int) []models.Exercise {
	var picked []models.Exercise
	for _, ex := range available {
		if ex.SplitType == split {
			picked = append(picked, ex)
			if len(picked) == limit {
				break
			}
		}
	}
	return picked
}
