// Package gf256 implements arithmetic in the finite field GF(2^8) using precomputed
// logarithm and exponent tables.
//
// Elements are bytes. Addition and subtraction are both XOR; multiplication and division
// go through the log/exp tables built for the generator 0xe5 over the reduction polynomial
// x^8 + x^4 + x^3 + x + 1. The tables are read-only, so every function here is safe for
// concurrent use.
package gf256

import "errors"

const (
	// Generator is the field element whose powers fill the exponent table.
	Generator = 0xe5

	// Polynomial is the reduction polynomial x^8 + x^4 + x^3 + x + 1.
	Polynomial = 0x11b

	// order of the multiplicative group
	order = 255
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("gf256: division by zero")

// Add adds two elements. It is also used for subtraction.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub subtracts b from a, which in characteristic 2 is the same as Add.
func Sub(a, b byte) byte {
	return a ^ b
}

// Mul multiplies two elements.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}

	sum := (int(logTable[a]) + int(logTable[b])) % order

	return expTable[sum]
}

// Div divides a by b.
func Div(a, b byte) (byte, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == 0 {
		return 0, nil
	}

	diff := (int(logTable[a]) - int(logTable[b]) + order) % order

	return expTable[diff], nil
}
