// internal/drills/handler.go
package drills

import (
	"context"

	"recordbook/internal/console"

	"github.com/shopspring/decimal"
)

type Handler struct {
	p *console.Prompter
}

func NewHandler(p *console.Prompter) *Handler {
	return &Handler{p: p}
}

func (h *Handler) Run(ctx context.Context) error {
	return h.p.Run(ctx, console.Menu{
		Title: "Math Drills",
		Items: []console.Item{
			{Label: "Armstrong Number Check", Action: h.handleArmstrong},
			{Label: "Factorial", Action: h.handleFactorial},
			{Label: "Simple Interest", Action: h.handleInterest},
			{Label: "Celsius to Kelvin", Action: h.handleCelsius},
			{Label: "Kelvin to Celsius", Action: h.handleKelvin},
		},
	})
}

func (h *Handler) handleArmstrong(context.Context) error {
	n, err := h.p.Int("Enter a Number: ", "Please enter a valid number: ", nil)
	if err != nil {
		return err
	}
	if IsArmstrong(n) {
		h.p.Printf("The No. %d is an Armstrong Number.\n", n)
	} else {
		h.p.Printf("The No. %d is not an Armstrong Number.\n", n)
	}
	return nil
}

func (h *Handler) handleFactorial(context.Context) error {
	n, err := h.p.Int("Enter a number: ", "Please enter a number between 0 and 20: ", func(n int) bool {
		return n >= 0 && n <= MaxFactorial
	})
	if err != nil {
		return err
	}
	f, err := Factorial(n)
	if err != nil {
		return err
	}
	h.p.Println(f)
	return nil
}

func (h *Handler) handleInterest(context.Context) error {
	const retry = "Please enter a valid non-negative number: "
	nonNegative := func(s string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, err
		}
		if d.IsNegative() {
			return decimal.Zero, ErrNegative
		}
		return d, nil
	}
	principal, err := console.Ask(h.p, "Enter Principal Amount: ", retry, nonNegative)
	if err != nil {
		return err
	}
	rate, err := console.Ask(h.p, "Enter Rate of Interest (in %): ", retry, nonNegative)
	if err != nil {
		return err
	}
	years, err := h.p.Int("Enter Time Period (in years): ", retry, console.NonNegative[int])
	if err != nil {
		return err
	}
	h.p.Printf("Simple Interest for the given amount is: %s\n", SimpleInterest(principal, rate, years).StringFixed(2))
	return nil
}

func (h *Handler) handleCelsius(context.Context) error {
	c, err := h.p.Float("Enter Temperature to be converted (in Celsius): ", "Please enter a valid temperature: ", nil)
	if err != nil {
		return err
	}
	h.p.Printf("The Temperature in Kelvin for the given temperature is: %g K\n", CelsiusToKelvin(c))
	return nil
}

func (h *Handler) handleKelvin(context.Context) error {
	k, err := h.p.Float("Enter Temperature to be converted (in Kelvin): ", "Please enter a valid temperature: ", nil)
	if err != nil {
		return err
	}
	h.p.Printf("The Temperature in Celsius for the given temperature is: %g C\n", KelvinToCelsius(k))
	return nil
}
