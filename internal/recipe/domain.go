// internal/recipe/domain.go
package recipe

import (
	"fmt"
	"slices"
	"strings"

	"recordbook/pkg/recordstore"
)

// Recipe is a catalog entry keyed by its name.
type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Category     string   `json:"category"`
	Nutrition    string   `json:"nutritional_info"`
	Ratings      []int    `json:"ratings"`
	Favorite     bool     `json:"is_favorite"`
}

func (r Recipe) Key() string { return r.Name }

func (r Recipe) Validate() error {
	if err := recordstore.Required("recipe name", r.Name); err != nil {
		return err
	}
	for _, f := range [...]struct{ name, value string }{
		{"recipe name", r.Name},
		{"instructions", r.Instructions},
		{"category", r.Category},
		{"nutrition", r.Nutrition},
	} {
		if err := recordstore.Storable(f.name, f.value); err != nil {
			return err
		}
	}
	if err := recordstore.StorableList("ingredient", r.Ingredients); err != nil {
		return err
	}
	for _, rating := range r.Ratings {
		if err := recordstore.RatingInRange(rating); err != nil {
			return err
		}
	}
	return nil
}

func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Ratings = slices.Clone(r.Ratings)
	return r
}

// AverageRating is the mean of all ratings, or 0 when unrated.
func (r Recipe) AverageRating() float64 {
	if len(r.Ratings) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r.Ratings {
		sum += v
	}
	return float64(sum) / float64(len(r.Ratings))
}

func (r Recipe) String() string {
	favorite := "No"
	if r.Favorite {
		favorite = "Yes"
	}
	return fmt.Sprintf("Recipe: %s\nCategory: %s\nIngredients: %s\nInstructions: %s\nNutritional Info: %s\nAverage Rating: %.1f\nFavorite: %s",
		r.Name, r.Category, strings.Join(r.Ingredients, ", "), r.Instructions, r.Nutrition, r.AverageRating(), favorite)
}

// ParseIngredients splits a comma separated list, trimming blanks.
func ParseIngredients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, recordstore.ListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
