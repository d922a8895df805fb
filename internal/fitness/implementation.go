// internal/fitness/implementation.go
package fitness

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"recordbook/pkg/recordstore"

	"golang.org/x/time/rate"
)

var workoutTypes = []string{
	"Cardio",
	"Strength Training",
	"Flexibility",
	"Balance",
	"High-Intensity Interval Training (HIIT)",
}

var mealSuggestions = []MealSuggestion{
	{Name: "Grilled Chicken Salad", Calories: 350},
	{Name: "Quinoa and Black Beans", Calories: 400},
	{Name: "Greek Yogurt with Berries", Calories: 200},
	{Name: "Smoothie Bowl", Calories: 300},
}

// service implements the Service interface.
type service struct {
	users       *recordstore.Store[User]
	rateLimiter *rate.Limiter
	logger      *slog.Logger
	now         func() time.Time
}

// NewService creates a new fitness tracker. Users are updated in place.
func NewService(logger *slog.Logger, opts ...recordstore.Option) Service {
	opts = append([]recordstore.Option{
		recordstore.WithName("users"),
		recordstore.WithLogger(logger),
	}, opts...)
	opts = append(opts, recordstore.WithInPlaceUpdates())
	return &service{
		users:       recordstore.New[User](opts...),
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 logins per minute
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RegisterUser creates an account with the default nutrition goals.
// Usernames are unique regardless of letter case.
func (s *service) RegisterUser(ctx context.Context, username, password string, age int, weight, height float64) (*User, error) {
	if err := recordstore.Required("password", password); err != nil {
		return nil, err
	}
	if _, ok := s.users.FindByKey(username); ok {
		return nil, fmt.Errorf("register %q: %w", username, ErrUsernameTaken)
	}

	user := User{
		Username:       username,
		Age:            age,
		Weight:         weight,
		Height:         height,
		NutritionGoals: DefaultNutritionGoals,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	hash, salt, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash, user.Salt = hash, salt

	if err := s.users.Add(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies a user's credentials. Attempts are rate limited.
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}

	user, ok := s.users.FindByKey(username)
	if !ok {
		s.logger.InfoContext(ctx, "login rejected: unknown user", "username", username)
		return nil, ErrInvalidCredentials
	}
	valid, err := verifyPassword(password, user.Salt, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		s.logger.InfoContext(ctx, "login rejected: wrong password", "username", username)
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *service) Users() []string {
	var names []string
	for u := range s.users.FindAll(nil) {
		names = append(names, u.Username)
	}
	return names
}

func (s *service) LogWorkout(ctx context.Context, username string, w Workout) (*Workout, error) {
	w.Date = s.now()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.update(ctx, username, func(u User) (User, error) {
		u.Workouts = append(u.Workouts, w)
		return u, nil
	}); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *service) LogMeal(ctx context.Context, username, name string, macros Macros) (*Meal, error) {
	m := Meal{Name: name, Macros: macros, Date: s.now()}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.update(ctx, username, func(u User) (User, error) {
		u.Meals = append(u.Meals, m)
		return u, nil
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *service) SetGoal(ctx context.Context, username, description string, deadline time.Time) (*Goal, error) {
	if err := recordstore.Required("goal description", description); err != nil {
		return nil, err
	}
	g := Goal{Description: description, Deadline: deadline}
	if _, err := s.update(ctx, username, func(u User) (User, error) {
		u.Goals = append(u.Goals, g)
		return u, nil
	}); err != nil {
		return nil, err
	}
	return &g, nil
}

// CompleteGoal marks the goal at the 1-based position as completed.
func (s *service) CompleteGoal(ctx context.Context, username string, position int) (*Goal, error) {
	var g Goal
	_, err := s.update(ctx, username, func(u User) (User, error) {
		if position < 1 || position > len(u.Goals) {
			return u, fmt.Errorf("goal #%d: %w", position, recordstore.ErrNotFound)
		}
		u.Goals[position-1].Completed = true
		g = u.Goals[position-1]
		return u, nil
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *service) UpdateWeight(ctx context.Context, username string, weight float64) (*User, error) {
	return s.update(ctx, username, func(u User) (User, error) {
		u.Weight = weight
		return u, nil
	})
}

func (s *service) SetNutritionGoals(ctx context.Context, username string, goals Macros) (*User, error) {
	if goals.Calories < 0 || goals.Protein < 0 || goals.Carbs < 0 || goals.Fats < 0 {
		return nil, &recordstore.ValidationError{Field: "nutrition goals", Reason: "must not be negative"}
	}
	return s.update(ctx, username, func(u User) (User, error) {
		u.NutritionGoals = goals
		return u, nil
	})
}

func (s *service) Progress(username string) (*Progress, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	return &Progress{
		Workouts:  u.Workouts,
		Meals:     u.Meals,
		Goals:     u.Goals,
		Nutrition: NutritionStatus{Consumed: totals(u.Meals), Goals: u.NutritionGoals},
	}, nil
}

// History returns the workouts and meals dated within [start, end].
func (s *service) History(username string, start, end time.Time) (*History, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	h := &History{}
	for _, w := range u.Workouts {
		if recordstore.TimeInRange(w.Date, start, end) {
			h.Workouts = append(h.Workouts, w)
		}
	}
	for _, m := range u.Meals {
		if recordstore.TimeInRange(m.Date, start, end) {
			h.Meals = append(h.Meals, m)
		}
	}
	return h, nil
}

func (s *service) NutritionStatus(username string) (*NutritionStatus, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	return &NutritionStatus{Consumed: totals(u.Meals), Goals: u.NutritionGoals}, nil
}

func (s *service) GoalSummary(username string) (*GoalSummary, error) {
	u, err := s.user(username)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, g := range u.Goals {
		if g.Completed {
			completed++
		}
	}
	return &GoalSummary{Completed: completed, Total: len(u.Goals)}, nil
}

func (s *service) WorkoutTypes() []string {
	return slices.Clone(workoutTypes)
}

func (s *service) MealSuggestions() []MealSuggestion {
	return slices.Clone(mealSuggestions)
}

func (s *service) user(username string) (User, error) {
	u, ok := s.users.FindByKey(username)
	if !ok {
		return User{}, userNotFound(username)
	}
	return u, nil
}

func (s *service) update(ctx context.Context, username string, fn func(User) (User, error)) (*User, error) {
	updated, ok, err := s.users.UpdateByKey(ctx, username, fn)
	if !ok {
		return nil, userNotFound(username)
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func userNotFound(username string) error {
	return fmt.Errorf("user %q: %w", username, recordstore.ErrNotFound)
}
