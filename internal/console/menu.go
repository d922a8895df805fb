// internal/console/menu.go
package console

import (
	"context"
	"errors"
	"io"
	"strconv"
)

// Item is one numbered menu entry.
type Item struct {
	Label  string
	Action func(ctx context.Context) error
}

// Menu is a numbered list of actions followed by an exit entry.
type Menu struct {
	Title     string
	Items     []Item
	ExitLabel string
}

// Run shows menu until the operator picks the exit entry or the input ends.
// Errors returned by actions are printed and the loop continues.
func (p *Prompter) Run(ctx context.Context, menu Menu) error {
	exitLabel := menu.ExitLabel
	if exitLabel == "" {
		exitLabel = "Exit"
	}
	exitChoice := len(menu.Items) + 1

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Println()
		p.Println(menu.Title)
		for i, item := range menu.Items {
			p.Printf("%d. %s\n", i+1, item.Label)
		}
		p.Printf("%d. %s\n", exitChoice, exitLabel)

		answer, err := p.Line("Choose an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(answer)
		switch {
		case err != nil || choice < 1 || choice > exitChoice:
			p.Println("Invalid option, please try again.")
		case choice == exitChoice:
			return nil
		default:
			if err := menu.Items[choice-1].Action(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				p.Println(err)
			}
		}
	}
}
