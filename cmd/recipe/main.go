// cmd/recipe/main.go
package main

import (
	"context"

	"recordbook/internal/cli"
	"recordbook/internal/recipe"
)

var app = cli.App{
	Name:  "recipe",
	Short: "Recipe book",
	Run: func(ctx context.Context, env *cli.Env) error {
		svc := recipe.NewService(env.Logger, env.StoreOptions...)
		return recipe.NewHandler(svc, env.Prompter).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
