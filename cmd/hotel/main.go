// cmd/hotel/main.go
package main

import (
	"context"

	"recordbook/internal/cli"
	"recordbook/internal/hotel"
)

var app = cli.App{
	Name:  "hotel",
	Short: "Hotel management system",
	Run: func(ctx context.Context, env *cli.Env) error {
		svc := hotel.NewService(env.Logger, env.StoreOptions...)
		return hotel.NewHandler(svc, env.Prompter, env.Config.DataDir).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
