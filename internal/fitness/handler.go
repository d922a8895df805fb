// internal/fitness/handler.go
package fitness

import (
	"context"

	"recordbook/internal/console"
)

type Handler struct {
	service Service
	p       *console.Prompter
}

func NewHandler(service Service, p *console.Prompter) *Handler {
	return &Handler{service: service, p: p}
}

func (h *Handler) Run(ctx context.Context) error {
	return h.p.Run(ctx, console.Menu{
		Title: "Personal Fitness Tracker",
		Items: []console.Item{
			{Label: "Register User", Action: h.handleRegister},
			{Label: "Login", Action: h.handleLogin},
			{Label: "Display Registered Users", Action: h.handleUsers},
		},
	})
}

func (h *Handler) handleRegister(ctx context.Context) error {
	username, err := h.p.Line("Enter username: ")
	if err != nil {
		return err
	}
	password, err := h.p.Line("Enter password: ")
	if err != nil {
		return err
	}
	age, err := h.p.Int("Enter age: ", "Please enter a valid age: ", console.Positive[int])
	if err != nil {
		return err
	}
	weight, err := h.p.Float("Enter weight (kg): ", "Please enter a valid weight: ", console.Positive[float64])
	if err != nil {
		return err
	}
	height, err := h.p.Float("Enter height (cm): ", "Please enter a valid height: ", console.Positive[float64])
	if err != nil {
		return err
	}
	if _, err := h.service.RegisterUser(ctx, username, password, age, weight, height); err != nil {
		return err
	}
	h.p.Printf("User registered: %s\n", username)
	return nil
}

func (h *Handler) handleLogin(ctx context.Context) error {
	username, err := h.p.Line("Enter username: ")
	if err != nil {
		return err
	}
	password, err := h.p.Line("Enter password: ")
	if err != nil {
		return err
	}
	user, err := h.service.Login(ctx, username, password)
	if err != nil {
		return err
	}
	h.p.Printf("Welcome back, %s!\n", user.Username)

	s := &session{h: h, username: user.Username}
	if err := h.p.Run(ctx, s.menu()); err != nil {
		return err
	}
	h.p.Println("Logged out.")
	return nil
}

func (h *Handler) handleUsers(context.Context) error {
	h.p.Println("Registered Users:")
	for _, u := range h.service.Users() {
		h.p.Println(u)
	}
	return nil
}

// session is the menu of a logged-in user.
type session struct {
	h        *Handler
	username string
}

func (s *session) menu() console.Menu {
	return console.Menu{
		Title: "User Menu",
		Items: []console.Item{
			{Label: "Log Workout", Action: s.handleWorkout},
			{Label: "Log Meal", Action: s.handleMeal},
			{Label: "Set Goal", Action: s.handleSetGoal},
			{Label: "View Progress", Action: s.handleProgress},
			{Label: "View History", Action: s.handleHistory},
			{Label: "Update Profile", Action: s.handleWeight},
			{Label: "Show Goal Summary", Action: s.handleGoalSummary},
			{Label: "Show Nutritional Goals", Action: s.handleNutritionGoals},
			{Label: "Complete Goal", Action: s.handleCompleteGoal},
		},
		ExitLabel: "Logout",
	}
}

func (s *session) handleWorkout(ctx context.Context) error {
	p := s.h.p
	p.Println("Available Workout Types:")
	for i, t := range s.h.service.WorkoutTypes() {
		p.Printf("%d. %s\n", i+1, t)
	}
	var w Workout
	var err error
	if w.Type, err = p.Line("Enter workout type: "); err != nil {
		return err
	}
	if w.Duration, err = p.Float("Enter duration (minutes): ", "Please enter a valid duration: ", console.Positive[float64]); err != nil {
		return err
	}
	if w.Calories, err = p.Float("Enter calories burned: ", "Please enter a valid number: ", console.NonNegative[float64]); err != nil {
		return err
	}
	if w.Intensity, err = p.Line("Enter intensity (Low/Medium/High): "); err != nil {
		return err
	}
	logged, err := s.h.service.LogWorkout(ctx, s.username, w)
	if err != nil {
		return err
	}
	p.Printf("Workout logged: %s\n", logged)
	return nil
}

func (s *session) handleMeal(ctx context.Context) error {
	p := s.h.p
	p.Println("Meal Suggestions:")
	for i, m := range s.h.service.MealSuggestions() {
		p.Printf("%d. %s - %d calories\n", i+1, m.Name, m.Calories)
	}
	name, err := p.Line("Enter meal name: ")
	if err != nil {
		return err
	}
	macros, err := s.macros("Enter calories: ", "Enter protein (g): ", "Enter carbs (g): ", "Enter fats (g): ")
	if err != nil {
		return err
	}
	logged, err := s.h.service.LogMeal(ctx, s.username, name, macros)
	if err != nil {
		return err
	}
	p.Printf("Meal logged: %s\n", logged)
	return nil
}

func (s *session) handleSetGoal(ctx context.Context) error {
	p := s.h.p
	description, err := p.Line("Enter goal description: ")
	if err != nil {
		return err
	}
	deadline, err := p.Date("Enter deadline (yyyy-mm-dd): ", "Please enter a valid deadline: ")
	if err != nil {
		return err
	}
	g, err := s.h.service.SetGoal(ctx, s.username, description, deadline)
	if err != nil {
		return err
	}
	p.Printf("Goal set: %s\n", g)
	return nil
}

func (s *session) handleProgress(context.Context) error {
	progress, err := s.h.service.Progress(s.username)
	if err != nil {
		return err
	}
	p := s.h.p
	p.Printf("Progress for %s:\n", s.username)
	for _, w := range progress.Workouts {
		p.Println(w)
	}
	for _, m := range progress.Meals {
		p.Println(m)
	}
	for _, g := range progress.Goals {
		p.Println(g)
	}
	s.printNutrition(progress.Nutrition)
	return nil
}

func (s *session) handleHistory(context.Context) error {
	p := s.h.p
	start, err := p.Date("Enter start date (yyyy-mm-dd): ", "Please enter a valid start date: ")
	if err != nil {
		return err
	}
	end, err := p.Date("Enter end date (yyyy-mm-dd): ", "Please enter a valid end date: ")
	if err != nil {
		return err
	}
	// Dates are typed as days; include the whole end day.
	history, err := s.h.service.History(s.username, start, end.AddDate(0, 0, 1).Add(-1))
	if err != nil {
		return err
	}
	span := start.Format(console.DateLayout) + " to " + end.Format(console.DateLayout)
	p.Printf("Workout History for %s from %s:\n", s.username, span)
	for _, w := range history.Workouts {
		p.Println(w)
	}
	p.Printf("Meal History for %s from %s:\n", s.username, span)
	for _, m := range history.Meals {
		p.Println(m)
	}
	return nil
}

func (s *session) handleWeight(ctx context.Context) error {
	weight, err := s.h.p.Float("Enter new weight (kg): ", "Please enter a valid weight: ", console.Positive[float64])
	if err != nil {
		return err
	}
	u, err := s.h.service.UpdateWeight(ctx, s.username, weight)
	if err != nil {
		return err
	}
	s.h.p.Printf("Profile updated: %s, new weight is %g kg.\n", u.Username, u.Weight)
	return nil
}

func (s *session) handleGoalSummary(context.Context) error {
	summary, err := s.h.service.GoalSummary(s.username)
	if err != nil {
		return err
	}
	s.h.p.Printf("Goal Summary for %s: %d/%d goals completed.\n", s.username, summary.Completed, summary.Total)
	return nil
}

func (s *session) handleNutritionGoals(ctx context.Context) error {
	goals, err := s.macros("Enter new daily caloric goal: ", "Enter new daily protein goal: ",
		"Enter new daily carbs goal: ", "Enter new daily fats goal: ")
	if err != nil {
		return err
	}
	if _, err := s.h.service.SetNutritionGoals(ctx, s.username, goals); err != nil {
		return err
	}
	s.h.p.Println("Nutritional goals updated!")
	return nil
}

func (s *session) handleCompleteGoal(ctx context.Context) error {
	position, err := s.h.p.Int("Enter goal number to complete: ", "Please enter a valid goal number: ", console.Positive[int])
	if err != nil {
		return err
	}
	g, err := s.h.service.CompleteGoal(ctx, s.username, position)
	if err != nil {
		return err
	}
	s.h.p.Printf("Goal completed: %s\n", g.Description)
	return nil
}

func (s *session) macros(calories, protein, carbs, fats string) (Macros, error) {
	var m Macros
	var err error
	const retry = "Please enter a valid number: "
	if m.Calories, err = s.h.p.Float(calories, retry, console.NonNegative[float64]); err != nil {
		return m, err
	}
	if m.Protein, err = s.h.p.Float(protein, retry, console.NonNegative[float64]); err != nil {
		return m, err
	}
	if m.Carbs, err = s.h.p.Float(carbs, retry, console.NonNegative[float64]); err != nil {
		return m, err
	}
	if m.Fats, err = s.h.p.Float(fats, retry, console.NonNegative[float64]); err != nil {
		return m, err
	}
	return m, nil
}

func (s *session) printNutrition(n NutritionStatus) {
	p := s.h.p
	p.Printf("Nutritional Status for %s:\n", s.username)
	p.Printf("Calories consumed: %g/%g\n", n.Consumed.Calories, n.Goals.Calories)
	p.Printf("Protein consumed: %g/%gg\n", n.Consumed.Protein, n.Goals.Protein)
	p.Printf("Carbs consumed: %g/%gg\n", n.Consumed.Carbs, n.Goals.Carbs)
	p.Printf("Fats consumed: %g/%gg\n", n.Consumed.Fats, n.Goals.Fats)
}
