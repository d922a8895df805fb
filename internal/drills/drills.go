// internal/drills/drills.go
package drills

import (
	"errors"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// KelvinOffset is the integer offset used between the Celsius and Kelvin scales.
const KelvinOffset = 273

// MaxFactorial is the largest n whose factorial fits in a uint64.
const MaxFactorial = 20

var (
	ErrNegative = errors.New("negative input")
	ErrOverflow = errors.New("result overflows")
)

// IsArmstrong reports whether n equals the sum of its digits each raised to the
// number of digits. Negative numbers are never Armstrong numbers.
func IsArmstrong(n int) bool {
	if n < 0 {
		return false
	}
	digits := strconv.Itoa(n)
	sum := 0
	for _, d := range digits {
		sum += int(math.Pow(float64(d-'0'), float64(len(digits))))
	}
	return sum == n
}

// Factorial returns n! for 0 <= n <= MaxFactorial.
func Factorial(n int) (uint64, error) {
	if n < 0 {
		return 0, ErrNegative
	}
	if n > MaxFactorial {
		return 0, ErrOverflow
	}
	result := uint64(1)
	for i := 2; i <= n; i++ {
		result *= uint64(i)
	}
	return result, nil
}

// SimpleInterest is principal × rate% × years.
func SimpleInterest(principal, ratePercent decimal.Decimal, years int) decimal.Decimal {
	return principal.Mul(ratePercent).Mul(decimal.NewFromInt(int64(years))).Div(decimal.NewFromInt(100))
}

func CelsiusToKelvin(c float64) float64 { return c + KelvinOffset }

func KelvinToCelsius(k float64) float64 { return k - KelvinOffset }
