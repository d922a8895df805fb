// internal/recipe/service.go
package recipe

import (
	"context"

	"recordbook/pkg/recordstore"
)

// Service defines the interface for the recipe manager.
type Service interface {
	AddRecipe(ctx context.Context, name string, ingredients []string, instructions, category, nutrition string) (*Recipe, error)
	EditRecipe(ctx context.Context, name string, ingredients []string, instructions, category, nutrition string) (*Recipe, error)
	DeleteRecipe(ctx context.Context, name string) error
	RateRecipe(ctx context.Context, name string, rating int) (*Recipe, error)
	MarkFavorite(ctx context.Context, name string) (*Recipe, error)
	UnmarkFavorite(ctx context.Context, name string) (*Recipe, error)

	Recipes() []Recipe
	Recipe(name string) (*Recipe, error)
	Search(term string) []Recipe
	SearchByIngredient(ingredient string) []Recipe
	SortedByName() []Recipe
	SortedByRating() []Recipe
	SortedByCategory() []Recipe

	Save(ctx context.Context, path string) error
	Load(ctx context.Context, path string) (recordstore.LoadResult, error)
}
