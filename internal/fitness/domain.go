// internal/fitness/domain.go
package fitness

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"recordbook/internal/console"
	"recordbook/pkg/recordstore"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrRateLimited        = errors.New("rate limit exceeded")
)

// Macros is a set of daily nutrition figures.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// DefaultNutritionGoals apply to every new user.
var DefaultNutritionGoals = Macros{Calories: 2000, Protein: 150, Carbs: 250, Fats: 70}

// User is a tracker account with its logs.
type User struct {
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Salt           string    `json:"-"`
	Age            int       `json:"age"`
	Weight         float64   `json:"weight"`
	Height         float64   `json:"height"`
	NutritionGoals Macros    `json:"nutrition_goals"`
	Workouts       []Workout `json:"workouts"`
	Meals          []Meal    `json:"meals"`
	Goals          []Goal    `json:"goals"`
}

func (u User) Key() string { return u.Username }

func (u User) Validate() error {
	if err := recordstore.Required("username", u.Username); err != nil {
		return err
	}
	if u.Age <= 0 {
		return &recordstore.ValidationError{Field: "age", Reason: "must be positive"}
	}
	if u.Weight <= 0 {
		return &recordstore.ValidationError{Field: "weight", Reason: "must be positive"}
	}
	if u.Height <= 0 {
		return &recordstore.ValidationError{Field: "height", Reason: "must be positive"}
	}
	return nil
}

func (u User) Clone() User {
	u.Workouts = slices.Clone(u.Workouts)
	u.Meals = slices.Clone(u.Meals)
	u.Goals = slices.Clone(u.Goals)
	return u
}

// Workout is one logged training session.
type Workout struct {
	Type      string    `json:"type"`
	Duration  float64   `json:"duration_minutes"`
	Calories  float64   `json:"calories_burned"`
	Intensity string    `json:"intensity"`
	Date      time.Time `json:"date"`
}

func (w Workout) Validate() error {
	if err := recordstore.Required("workout type", w.Type); err != nil {
		return err
	}
	if w.Duration <= 0 {
		return &recordstore.ValidationError{Field: "duration", Reason: "must be positive"}
	}
	if w.Calories < 0 {
		return &recordstore.ValidationError{Field: "calories burned", Reason: "must not be negative"}
	}
	return nil
}

func (w Workout) String() string {
	return fmt.Sprintf("%s for %g minutes, burned %g calories (Intensity: %s) on %s.",
		w.Type, w.Duration, w.Calories, w.Intensity, w.Date.Format(console.DateLayout))
}

// Meal is one logged meal.
type Meal struct {
	Name   string    `json:"name"`
	Macros Macros    `json:"macros"`
	Date   time.Time `json:"date"`
}

func (m Meal) Validate() error {
	if err := recordstore.Required("meal name", m.Name); err != nil {
		return err
	}
	if m.Macros.Calories < 0 || m.Macros.Protein < 0 || m.Macros.Carbs < 0 || m.Macros.Fats < 0 {
		return &recordstore.ValidationError{Field: "nutrition", Reason: "must not be negative"}
	}
	return nil
}

func (m Meal) String() string {
	return fmt.Sprintf("%s: %g calories, %gg protein, %gg carbs, %gg fats on %s.",
		m.Name, m.Macros.Calories, m.Macros.Protein, m.Macros.Carbs, m.Macros.Fats, m.Date.Format(console.DateLayout))
}

// Goal is a personal target with a deadline.
type Goal struct {
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Completed   bool      `json:"completed"`
}

func (g Goal) String() string {
	status := "Not Completed"
	if g.Completed {
		status = "Completed"
	}
	return fmt.Sprintf("%s by %s - %s", g.Description, g.Deadline.Format(console.DateLayout), status)
}

// NutritionStatus compares what a user consumed with their goals.
type NutritionStatus struct {
	Consumed Macros
	Goals    Macros
}

// GoalSummary counts completed goals.
type GoalSummary struct {
	Completed int
	Total     int
}

// Progress is everything a user has logged.
type Progress struct {
	Workouts  []Workout
	Meals     []Meal
	Goals     []Goal
	Nutrition NutritionStatus
}

// History holds the workouts and meals logged in a date range.
type History struct {
	Workouts []Workout
	Meals    []Meal
}

// MealSuggestion is a canned meal idea.
type MealSuggestion struct {
	Name     string
	Calories int
}

func totals(meals []Meal) Macros {
	var m Macros
	for _, meal := range meals {
		m.Calories += meal.Macros.Calories
		m.Protein += meal.Macros.Protein
		m.Carbs += meal.Macros.Carbs
		m.Fats += meal.Macros.Fats
	}
	return m
}
