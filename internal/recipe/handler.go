// internal/recipe/handler.go
package recipe

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
		Title: "Recipe Management System",
		Items: []console.Item{
			{Label: "Add Recipe", Action: h.handleAdd},
			{Label: "View Recipes", Action: h.handleList},
			{Label: "Search Recipe", Action: h.handleSearch},
			{Label: "Edit Recipe", Action: h.handleEdit},
			{Label: "Delete Recipe", Action: h.handleDelete},
			{Label: "Rate Recipe", Action: h.handleRate},
			{Label: "Mark Recipe as Favorite", Action: h.handleFavorite},
			{Label: "Unmark Recipe as Favorite", Action: h.handleUnfavorite},
			{Label: "Search by Ingredient", Action: h.handleIngredient},
			{Label: "Sort Recipes by Name", Action: h.handleSortName},
			{Label: "Sort Recipes by Rating", Action: h.handleSortRating},
			{Label: "Sort Recipes by Category", Action: h.handleSortCategory},
			{Label: "Print Recipe", Action: h.handlePrint},
			{Label: "Save Recipes to File", Action: h.handleSave},
			{Label: "Load Recipes from File", Action: h.handleLoad},
		},
	})
}

type recipeInput struct {
	name, instructions, category, nutrition string
	ingredients                             []string
}

func (h *Handler) readRecipe(namePrompt, prefix string) (recipeInput, error) {
	var in recipeInput
	var err error
	if in.name, err = h.p.Line(namePrompt); err != nil {
		return in, err
	}
	raw, err := h.p.Line("Enter " + prefix + "ingredients (comma separated): ")
	if err != nil {
		return in, err
	}
	in.ingredients = ParseIngredients(raw)
	if in.instructions, err = h.p.Line("Enter " + prefix + "instructions: "); err != nil {
		return in, err
	}
	if in.category, err = h.p.Line("Enter " + prefix + "category: "); err != nil {
		return in, err
	}
	if in.nutrition, err = h.p.Line("Enter " + prefix + "nutritional information: "); err != nil {
		return in, err
	}
	return in, nil
}

func (h *Handler) handleAdd(ctx context.Context) error {
	in, err := h.readRecipe("Enter recipe name: ", "")
	if err != nil {
		return err
	}
	if _, err := h.service.AddRecipe(ctx, in.name, in.ingredients, in.instructions, in.category, in.nutrition); err != nil {
		return err
	}
	h.p.Println("Recipe added successfully.")
	return nil
}

func (h *Handler) handleList(context.Context) error {
	h.print(h.service.Recipes(), "No recipes available.")
	return nil
}

func (h *Handler) handleSearch(context.Context) error {
	term, err := h.p.Line("Enter search term: ")
	if err != nil {
		return err
	}
	h.print(h.service.Search(term), "No recipes found for search term: "+term)
	return nil
}

func (h *Handler) handleEdit(ctx context.Context) error {
	in, err := h.readRecipe("Enter recipe name to edit: ", "new ")
	if err != nil {
		return err
	}
	if _, err := h.service.EditRecipe(ctx, in.name, in.ingredients, in.instructions, in.category, in.nutrition); err != nil {
		return err
	}
	h.p.Printf("Recipe '%s' updated successfully.\n", in.name)
	return nil
}

func (h *Handler) handleDelete(ctx context.Context) error {
	name, err := h.p.Line("Enter recipe name to delete: ")
	if err != nil {
		return err
	}
	if err := h.service.DeleteRecipe(ctx, name); err != nil {
		return err
	}
	h.p.Printf("Recipe '%s' deleted successfully.\n", name)
	return nil
}

func (h *Handler) handleRate(ctx context.Context) error {
	name, err := h.p.Line("Enter recipe name to rate: ")
	if err != nil {
		return err
	}
	rating, err := h.p.Int("Enter rating (1-5): ", "Please enter a rating between 1 and 5: ", func(v int) bool {
		return v >= 1 && v <= 5
	})
	if err != nil {
		return err
	}
	if _, err := h.service.RateRecipe(ctx, name, rating); err != nil {
		return err
	}
	h.p.Printf("Recipe '%s' rated successfully.\n", name)
	return nil
}

func (h *Handler) handleFavorite(ctx context.Context) error {
	name, err := h.p.Line("Enter recipe name to mark as favorite: ")
	if err != nil {
		return err
	}
	if _, err := h.service.MarkFavorite(ctx, name); err != nil {
		return err
	}
	h.p.Printf("Recipe '%s' marked as favorite.\n", name)
	return nil
}

func (h *Handler) handleUnfavorite(ctx context.Context) error {
	name, err := h.p.Line("Enter recipe name to unmark as favorite: ")
	if err != nil {
		return err
	}
	if _, err := h.service.UnmarkFavorite(ctx, name); err != nil {
		return err
	}
	h.p.Printf("Recipe '%s' unmarked as favorite.\n", name)
	return nil
}

func (h *Handler) handleIngredient(context.Context) error {
	ingredient, err := h.p.Line("Enter ingredient to search: ")
	if err != nil {
		return err
	}
	h.print(h.service.SearchByIngredient(ingredient), "No recipes found containing ingredient: "+ingredient)
	return nil
}

func (h *Handler) handleSortName(context.Context) error {
	h.p.Println("Recipes sorted by name:")
	for _, r := range h.service.SortedByName() {
		h.p.Println(r.Name)
	}
	return nil
}

func (h *Handler) handleSortRating(context.Context) error {
	h.p.Println("Recipes sorted by rating:")
	for _, r := range h.service.SortedByRating() {
		h.p.Printf("%s - Average Rating: %.1f\n", r.Name, r.AverageRating())
	}
	return nil
}

func (h *Handler) handleSortCategory(context.Context) error {
	h.p.Println("Recipes sorted by category:")
	for _, r := range h.service.SortedByCategory() {
		h.p.Printf("%s - Category: %s\n", r.Name, r.Category)
	}
	return nil
}

func (h *Handler) handlePrint(context.Context) error {
	name, err := h.p.Line("Enter recipe name to print: ")
	if err != nil {
		return err
	}
	r, err := h.service.Recipe(name)
	if err != nil {
		return err
	}
	h.p.Println(r)
	return nil
}

func (h *Handler) handleSave(ctx context.Context) error {
	path, err := h.p.Line("Enter file path to save recipes: ")
	if err != nil {
		return err
	}
	if err := h.service.Save(ctx, path); err != nil {
		return err
	}
	h.p.Println("Recipes saved successfully.")
	return nil
}

func (h *Handler) handleLoad(ctx context.Context) error {
	path, err := h.p.Line("Enter file path to load recipes: ")
	if err != nil {
		return err
	}
	res, err := h.service.Load(ctx, path)
	if err != nil {
		return err
	}
	h.p.Printf("Loaded %d recipes.\n", res.Loaded)
	return nil
}

func (h *Handler) print(recipes []Recipe, empty string) {
	if len(recipes) == 0 {
		h.p.Println(empty)
		return
	}
	for _, r := range recipes {
		h.p.Println(r)
		h.p.Println()
	}
}
