// internal/recipe/implementation.go
package recipe

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"recordbook/pkg/recordstore"
)

// service implements the Service interface.
type service struct {
	recipes *recordstore.Store[Recipe]
	logger  *slog.Logger
}

// NewService creates a new recipe manager. Ratings and favorite flags change a recipe in
// place; EditRecipe replaces it and moves it to the end.
func NewService(logger *slog.Logger, opts ...recordstore.Option) Service {
	opts = append([]recordstore.Option{
		recordstore.WithName("recipes"),
		recordstore.WithLogger(logger),
	}, opts...)
	opts = append(opts, recordstore.WithInPlaceUpdates())
	return &service{
		recipes: recordstore.New[Recipe](opts...),
		logger:  logger,
	}
}

func (s *service) AddRecipe(ctx context.Context, name string, ingredients []string, instructions, category, nutrition string) (*Recipe, error) {
	r := Recipe{
		Name:         name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Category:     category,
		Nutrition:    nutrition,
	}
	if err := s.recipes.Add(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// EditRecipe replaces the first recipe with a matching name by a fresh one.
// Ratings and the favorite flag are reset and the recipe moves to the end of the catalog.
// The fresh recipe is appended before the old one is removed, so a failed write leaves
// the catalog as it was.
func (s *service) EditRecipe(ctx context.Context, name string, ingredients []string, instructions, category, nutrition string) (*Recipe, error) {
	old, ok := s.recipes.FindByKey(name)
	if !ok {
		return nil, recipeNotFound(name)
	}
	r := Recipe{
		Name:         old.Name,
		Ingredients:  ingredients,
		Instructions: instructions,
		Category:     category,
		Nutrition:    nutrition,
	}
	if err := s.recipes.Add(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to replace recipe: %w", err)
	}
	// The old recipe precedes the appended one, so it is the first match.
	s.recipes.DeleteByKey(ctx, old.Name)
	return &r, nil
}

func (s *service) DeleteRecipe(ctx context.Context, name string) error {
	if _, ok := s.recipes.DeleteByKey(ctx, name); !ok {
		return recipeNotFound(name)
	}
	return nil
}

// RateRecipe appends a rating between 1 and 5. Out-of-range ratings are rejected.
func (s *service) RateRecipe(ctx context.Context, name string, rating int) (*Recipe, error) {
	if err := recordstore.RatingInRange(rating); err != nil {
		return nil, err
	}
	return s.update(ctx, name, func(r Recipe) Recipe {
		r.Ratings = append(r.Ratings, rating)
		return r
	})
}

func (s *service) MarkFavorite(ctx context.Context, name string) (*Recipe, error) {
	return s.update(ctx, name, func(r Recipe) Recipe {
		r.Favorite = true
		return r
	})
}

func (s *service) UnmarkFavorite(ctx context.Context, name string) (*Recipe, error) {
	return s.update(ctx, name, func(r Recipe) Recipe {
		r.Favorite = false
		return r
	})
}

func (s *service) Recipes() []Recipe {
	return s.recipes.All()
}

func (s *service) Recipe(name string) (*Recipe, error) {
	r, ok := s.recipes.FindByKey(name)
	if !ok {
		return nil, recipeNotFound(name)
	}
	return &r, nil
}

// Search matches the term anywhere in the recipe name, ignoring case.
func (s *service) Search(term string) []Recipe {
	return slices.Collect(s.recipes.FindAll(func(r Recipe) bool {
		return recordstore.ContainsFold(r.Name, term)
	}))
}

// SearchByIngredient matches recipes with any ingredient containing the term.
func (s *service) SearchByIngredient(ingredient string) []Recipe {
	return slices.Collect(s.recipes.FindAll(func(r Recipe) bool {
		return slices.ContainsFunc(r.Ingredients, func(i string) bool {
			return recordstore.ContainsFold(i, ingredient)
		})
	}))
}

func (s *service) SortedByName() []Recipe {
	return s.sorted(func(a, b Recipe) int {
		return cmp.Compare(recordstore.Fold(a.Name), recordstore.Fold(b.Name))
	})
}

// SortedByRating orders recipes from the highest average rating down.
func (s *service) SortedByRating() []Recipe {
	return s.sorted(func(a, b Recipe) int {
		return cmp.Compare(b.AverageRating(), a.AverageRating())
	})
}

func (s *service) SortedByCategory() []Recipe {
	return s.sorted(func(a, b Recipe) int {
		return cmp.Compare(recordstore.Fold(a.Category), recordstore.Fold(b.Category))
	})
}

func (s *service) Save(ctx context.Context, path string) error {
	if err := s.recipes.SaveToFile(ctx, path, Codec{}); err != nil {
		return fmt.Errorf("failed to save recipes: %w", err)
	}
	return nil
}

func (s *service) Load(ctx context.Context, path string) (recordstore.LoadResult, error) {
	res, err := s.recipes.LoadFromFile(ctx, path, Codec{})
	if err != nil {
		return res, fmt.Errorf("failed to load recipes: %w", err)
	}
	return res, nil
}

func (s *service) update(ctx context.Context, name string, fn func(Recipe) Recipe) (*Recipe, error) {
	updated, ok, err := s.recipes.UpdateByKey(ctx, name, func(r Recipe) (Recipe, error) {
		return fn(r), nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, recipeNotFound(name)
	}
	return &updated, nil
}

// sorted returns a stably sorted copy; the catalog order is not changed.
func (s *service) sorted(compare func(a, b Recipe) int) []Recipe {
	all := s.recipes.All()
	slices.SortStableFunc(all, compare)
	return all
}

func recipeNotFound(name string) error {
	return fmt.Errorf("no recipe found with name %q: %w", name, recordstore.ErrNotFound)
}
