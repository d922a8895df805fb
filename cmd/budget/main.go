// cmd/budget/main.go
package main

import (
	"context"

	"recordbook/internal/budget"
	"recordbook/internal/cli"
)

var app = cli.App{
	Name:  "budget",
	Short: "Budgeting tool",
	Run: func(ctx context.Context, env *cli.Env) error {
		svc := budget.NewService(env.Logger, env.StoreOptions...)
		return budget.NewHandler(svc, env.Prompter).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
