// cmd/rental/main.go
package main

import (
	"context"

	"recordbook/internal/cli"
	"recordbook/internal/rental"
)

var app = cli.App{
	Name:  "rental",
	Short: "Movie rental system",
	Run: func(ctx context.Context, env *cli.Env) error {
		svc := rental.NewService(env.Logger, env.StoreOptions...)
		return rental.NewHandler(svc, env.Prompter, env.Config.DataDir).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
