// cmd/drills/main.go
package main

import (
	"context"

	"recordbook/internal/cli"
	"recordbook/internal/drills"
)

var app = cli.App{
	Name:  "drills",
	Short: "Small math and conversion drills",
	Run: func(ctx context.Context, env *cli.Env) error {
		return drills.NewHandler(env.Prompter).Run(ctx)
	},
}

func main() {
	cli.Main(app)
}
