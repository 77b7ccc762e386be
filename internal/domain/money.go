package domain

import "math"

// Epsilon is the absolute tolerance used when comparing cash balances
// and holding quantities, absorbing float64 rounding from repeated
// debits and credits.
const Epsilon = 1e-9

// RoundCash rounds a dollar amount to 2 decimal places.
func RoundCash(v float64) float64 {
	return math.Round(v*100) / 100
}

// GTE reports whether a >= b within Epsilon.
func GTE(a, b float64) bool {
	return a >= b-Epsilon
}
