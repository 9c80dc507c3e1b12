package shamir

import (
	"io"

	"github.com/privy-io/shamir-secret-sharing/csprng"
	"github.com/privy-io/shamir-secret-sharing/gf256"
)

// coordinateCount is the number of nonzero field elements usable as X coordinates.
const coordinateCount = 255

// polynomial holds coefficients from the constant term up to the leading one.
type polynomial []byte

// newPolynomial creates a random polynomial of the given degree with intercept as its
// constant term. The leading coefficient is never zero, so the degree is exact.
func newPolynomial(r io.Reader, intercept uint8, degree int) (polynomial, error) {
	coefficients := make(polynomial, degree+1)
	coefficients[0] = intercept

	if degree > 1 {
		if err := csprng.Fill(r, coefficients[1:degree]); err != nil {
			return nil, err
		}
	}

	leading := coefficients[degree : degree+1]
	for leading[0] == 0 {
		if err := csprng.Fill(r, leading); err != nil {
			return nil, err
		}
	}

	return coefficients, nil
}

// evaluate evaluates the polynomial at x using Horner's method.
func (p polynomial) evaluate(x uint8) (uint8, error) {
	if x == 0 {
		return 0, ErrZeroEvaluationPoint
	}

	degree := len(p) - 1
	result := p[degree]

	for i := degree - 1; i >= 0; i-- {
		result = gf256.Add(gf256.Mul(result, x), p[i])
	}

	return result, nil
}

// interpolate returns the value at x of the polynomial passing through the samples
// using Lagrange interpolation. X samples must be distinct.
func interpolate(xSamples, ySamples []uint8, x uint8) (uint8, error) {
	if len(xSamples) != len(ySamples) {
		return 0, ErrSampleLengthMismatch
	}

	var result uint8
	for i := range xSamples {
		var basis uint8 = 1
		for j := range xSamples {
			if i == j {
				continue
			}

			// basis *= (x - x_j) / (x_i - x_j)
			num := gf256.Sub(x, xSamples[j])
			denom := gf256.Sub(xSamples[i], xSamples[j])

			term, err := gf256.Div(num, denom)
			if err != nil {
				return 0, err
			}

			basis = gf256.Mul(basis, term)
		}

		result = gf256.Add(result, gf256.Mul(ySamples[i], basis))
	}

	return result, nil
}

// newCoordinates returns a random permutation of the values 1..255.
//
// Each position is swapped with the index given by one random byte reduced modulo 255.
// The byte value 255 therefore maps onto index 0 as well, a slight bias kept for
// compatibility with existing implementations.
func newCoordinates(r io.Reader) ([coordinateCount]uint8, error) {
	var coordinates [coordinateCount]uint8
	for i := range coordinates {
		coordinates[i] = uint8(i + 1)
	}

	var indices [coordinateCount]uint8
	if err := csprng.Fill(r, indices[:]); err != nil {
		return coordinates, err
	}

	for i := range coordinates {
		j := int(indices[i]) % coordinateCount
		coordinates[i], coordinates[j] = coordinates[j], coordinates[i]
	}

	return coordinates, nil
}
