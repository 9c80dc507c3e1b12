package shamir

import "fmt"

// Verify checks that all shares lie on the same polynomial of degree threshold-1.
//
// The first threshold shares define the polynomial; every remaining share must match
// its value at that share's X coordinate for each byte position. With exactly threshold
// shares there is nothing to cross-check and Verify succeeds, so it detects corrupted
// or foreign shares only when extra shares are available.
func Verify(shares []Share, threshold int) error {
	if threshold < minParts || threshold > maxParts {
		return ErrThresholdOutOfRange
	}

	if err := validateShares(shares); err != nil {
		return err
	}

	if len(shares) < threshold {
		return ErrInsufficientShares
	}

	base := shares[:threshold]
	xSamples := xCoordinates(base)
	ySamples := make([]uint8, threshold)

	secretLen := len(shares[0]) - 1

	for byteIdx := range secretLen {
		for i, share := range base {
			ySamples[i] = share[byteIdx]
		}

		for i := threshold; i < len(shares); i++ {
			extra := shares[i]

			expected, err := interpolate(xSamples, ySamples, extra.X())
			if err != nil {
				return err
			}

			if expected != extra[byteIdx] {
				return fmt.Errorf("%w: share %d", ErrVerificationFailed, i)
			}
		}
	}

	return nil
}
