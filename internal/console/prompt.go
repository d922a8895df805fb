// internal/console/prompt.go
package console

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"recordbook/pkg/recordstore"
)

// DateLayout is the format operators type dates in.
const DateLayout = "2006-01-02"

// Prompter reads line-based answers from an operator and writes prompts and results.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter wraps an input and an output stream.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Printf writes formatted output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line of output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints prompt and returns the next trimmed input line.
// It returns io.EOF once the input is exhausted.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// Ask prompts until parse accepts the answer, printing retry after every rejection.
func Ask[T any](p *Prompter, prompt, retry string, parse func(string) (T, error)) (T, error) {
	answer, err := p.Line(prompt)
	for {
		if err != nil {
			var zero T
			return zero, err
		}
		v, perr := parse(answer)
		if perr == nil {
			return v, nil
		}
		answer, err = p.Line(retry)
	}
}

// Int prompts for an integer satisfying valid. A nil valid accepts any integer.
func (p *Prompter) Int(prompt, retry string, valid func(int) bool) (int, error) {
	return Ask(p, prompt, retry, func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, err
		}
		if valid != nil && !valid(n) {
			return 0, fmt.Errorf("%d rejected", n)
		}
		return n, nil
	})
}

// Float prompts for a finite number satisfying valid. A nil valid accepts any
// finite number.
func (p *Prompter) Float(prompt, retry string, valid func(float64) bool) (float64, error) {
	return Ask(p, prompt, retry, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, fmt.Errorf("%q is not a finite number", s)
		}
		if valid != nil && !valid(f) {
			return 0, fmt.Errorf("%g rejected", f)
		}
		return f, nil
	})
}

// Date prompts for a DateLayout date, returned as midnight UTC.
func (p *Prompter) Date(prompt, retry string) (time.Time, error) {
	return Ask(p, prompt, retry, func(s string) (time.Time, error) {
		return time.Parse(DateLayout, s)
	})
}

// YesNo prompts for a y/n answer; anything but y or yes is no.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	answer, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return recordstore.EqualFold(answer, "y") || recordstore.EqualFold(answer, "yes"), nil
}

// Positive accepts values greater than zero.
func Positive[N int | float64](v N) bool { return v > 0 }

// NonNegative accepts zero and above.
func NonNegative[N int | float64](v N) bool { return v >= 0 }
