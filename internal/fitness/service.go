// internal/fitness/service.go
package fitness

import (
	"context"
	"time"
)

// Service defines the interface for the fitness tracker.
type Service interface {
	RegisterUser(ctx context.Context, username, password string, age int, weight, height float64) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	Users() []string

	LogWorkout(ctx context.Context, username string, w Workout) (*Workout, error)
	LogMeal(ctx context.Context, username, name string, macros Macros) (*Meal, error)
	SetGoal(ctx context.Context, username, description string, deadline time.Time) (*Goal, error)
	CompleteGoal(ctx context.Context, username string, position int) (*Goal, error)
	UpdateWeight(ctx context.Context, username string, weight float64) (*User, error)
	SetNutritionGoals(ctx context.Context, username string, goals Macros) (*User, error)

	Progress(username string) (*Progress, error)
	History(username string, start, end time.Time) (*History, error)
	NutritionStatus(username string) (*NutritionStatus, error)
	GoalSummary(username string) (*GoalSummary, error)

	WorkoutTypes() []string
	MealSuggestions() []MealSuggestion
}
