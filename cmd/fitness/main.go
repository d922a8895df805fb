// cmd/fitness/main.go
package main

import (
	"context"

	"recordbook/internal/cli"
	"recordbook/internal/fitness"
)

var app = cli.App{
	Name:  "fitness",
	Short: "Fitness tracker",
	Run: func(ctx context.Context, env *cli.Env) error {
		svc := fitness.NewService(env.Logger, env.StoreOptions...)
		return fitness.NewHandler(svc, env.Prompter).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
