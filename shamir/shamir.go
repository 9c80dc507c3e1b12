package shamir

import (
	"io"

	"github.com/privy-io/shamir-secret-sharing/csprng"
)

const (
	minParts = 2
	maxParts = 255
)

// Split divides secret into shares, any threshold of which reconstruct it.
// Randomness comes from csprng.Reader.
//
// Parameters:
//   - secret: the secret data to split (any non-zero length)
//   - shares: total shares to generate (2-255)
//   - threshold: minimum shares required for reconstruction (2-shares)
//
// Each returned share is len(secret)+1 bytes: [y_0, y_1, ..., y_n, x].
func Split(secret []byte, shares, threshold int) ([]Share, error) {
	return SplitWithRand(csprng.Reader, secret, shares, threshold)
}

// SplitWithRand is Split with an explicit random source. r must be a cryptographically
// secure generator; the secrecy of the scheme rests entirely on it.
//
// Arguments are validated before anything is read from r.
func SplitWithRand(r io.Reader, secret []byte, shares, threshold int) ([]Share, error) {
	if err := validateSplit(secret, shares, threshold); err != nil {
		return nil, err
	}

	xCoords, err := newCoordinates(r)
	if err != nil {
		return nil, err
	}

	secretLen := len(secret)

	result := make([]Share, shares)
	for i := range result {
		result[i] = make(Share, secretLen+1)
		result[i][secretLen] = xCoords[i]
	}

	degree := threshold - 1

	for byteIdx, secretByte := range secret {
		poly, err := newPolynomial(r, secretByte, degree)
		if err != nil {
			return nil, err
		}

		for shareIdx := range result {
			y, err := poly.evaluate(xCoords[shareIdx])
			if err != nil {
				return nil, err
			}
			result[shareIdx][byteIdx] = y
		}
	}

	return result, nil
}

// Combine reconstructs the secret from shares produced by Split.
//
// Combine cannot tell whether at least threshold shares were supplied: with fewer
// shares it returns a wrong secret of the right length and no error. Use Verify
// with a known threshold when that matters.
func Combine(shares []Share) ([]byte, error) {
	if err := validateShares(shares); err != nil {
		return nil, err
	}

	xSamples := xCoordinates(shares)
	ySamples := make([]uint8, len(shares))

	secret := make([]byte, len(shares[0])-1)

	for byteIdx := range secret {
		for shareIdx, share := range shares {
			ySamples[shareIdx] = share[byteIdx]
		}

		b, err := interpolate(xSamples, ySamples, 0)
		if err != nil {
			return nil, err
		}
		secret[byteIdx] = b
	}

	return secret, nil
}

func validateSplit(secret []byte, shares, threshold int) error {
	if len(secret) == 0 {
		return ErrEmptySecret
	}

	if shares < minParts || shares > maxParts {
		return ErrShareCountOutOfRange
	}

	if threshold < minParts || threshold > maxParts {
		return ErrThresholdOutOfRange
	}

	if threshold > shares {
		return ErrThresholdExceedsShareCount
	}

	return nil
}

// validateShares checks the collection size, share lengths and X coordinate uniqueness,
// in that order.
func validateShares(shares []Share) error {
	if len(shares) < minParts || len(shares) > maxParts {
		return ErrShareCollectionLengthOutOfRange
	}

	shareLen := len(shares[0])
	for _, share := range shares {
		if len(share) < 2 {
			return ErrShareTooShort
		}
		if len(share) != shareLen {
			return ErrShareLengthMismatch
		}
	}

	var seen [256]bool
	for _, share := range shares {
		x := share.X()
		if seen[x] {
			return ErrDuplicateShareCoordinate
		}
		seen[x] = true
	}

	return nil
}

func xCoordinates(shares []Share) []uint8 {
	xs := make([]uint8, len(shares))
	for i, share := range shares {
		xs[i] = share.X()
	}
	return xs
}
