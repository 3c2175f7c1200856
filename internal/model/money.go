package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money in hundredths of the single supported currency.
type Cents int64

// ParseCents parses a decimal amount such as "49.90" or "50".
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return FromFloat(f), nil
}

// FromFloat converts a decimal amount to cents, rounding to the nearest cent.
func FromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

// Float returns the amount in whole currency units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// String formats the amount with two decimals.
func (c Cents) String() string {
	return strconv.FormatFloat(c.Float(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as a decimal number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts a decimal number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	*c = FromFloat(f)
	return nil
}
