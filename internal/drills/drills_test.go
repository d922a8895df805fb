package drills

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"recordbook/internal/console"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIsArmstrong(t *testing.T) {
	for _, n := range []int{0, 1, 9, 153, 370, 371, 407, 1634, 9474} {
		assert.True(t, IsArmstrong(n), n)
	}
	for _, n := range []int{10, 100, 152, 9475, -153} {
		assert.False(t, IsArmstrong(n), n)
	}
}

func TestFactorial(t *testing.T) {
	cases := map[int]uint64{0: 1, 1: 1, 5: 120, 10: 3628800, 20: 2432902008176640000}
	for n, want := range cases {
		got, err := Factorial(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, n)
	}

	_, err := Factorial(-1)
	assert.ErrorIs(t, err, ErrNegative)
	_, err = Factorial(21)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFactorialRecurrence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, MaxFactorial).Draw(t, "n")
		f, err := Factorial(n)
		if err != nil {
			t.Fatal(err)
		}
		prev, err := Factorial(n - 1)
		if err != nil {
			t.Fatal(err)
		}
		if f != uint64(n)*prev {
			t.Fatalf("%d! = %d, (n-1)! = %d", n, f, prev)
		}
	})
}

func TestSimpleInterest(t *testing.T) {
	got := SimpleInterest(decimal.NewFromInt(1000), decimal.RequireFromString("5.5"), 3)
	assert.True(t, got.Equal(decimal.NewFromInt(165)), got.String())
	assert.True(t, SimpleInterest(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0).IsZero())
}

func TestTemperatureRoundTrip(t *testing.T) {
	assert.InDelta(t, 273.0, CelsiusToKelvin(0), 1e-9)
	assert.InDelta(t, 100.0, KelvinToCelsius(373), 1e-9)

	rapid.Check(t, func(t *rapid.T) {
		c := float64(rapid.IntRange(-273, 10000).Draw(t, "celsius"))
		if got := KelvinToCelsius(CelsiusToKelvin(c)); got != c {
			t.Fatalf("round trip %v -> %v", c, got)
		}
	})
}

func TestHandler(t *testing.T) {
	input := "1\n153\n2\n-1\n5\n3\n1000\n5\n2\n4\n25\n6\n"
	var out bytes.Buffer
	h := NewHandler(console.NewPrompter(strings.NewReader(input), &out))

	require.NoError(t, h.Run(context.Background()))
	assert.Contains(t, out.String(), "The No. 153 is an Armstrong Number.")
	assert.Contains(t, out.String(), "Please enter a number between 0 and 20: ")
	assert.Contains(t, out.String(), "120\n")
	assert.Contains(t, out.String(), "Simple Interest for the given amount is: 100.00")
	assert.Contains(t, out.String(), "298 K")
}
