package shamir

import "errors"

var (
	// ErrEmptySecret is returned when trying to split an empty secret.
	ErrEmptySecret = errors.New("shamir: secret cannot be empty")

	// ErrShareCountOutOfRange is returned when the number of shares to create is not in [2, 255].
	ErrShareCountOutOfRange = errors.New("shamir: shares must be at least 2 and at most 255")

	// ErrThresholdOutOfRange is returned when the threshold is not in [2, 255].
	ErrThresholdOutOfRange = errors.New("shamir: threshold must be at least 2 and at most 255")

	// ErrThresholdExceedsShareCount is returned when the threshold is larger than the number of shares.
	ErrThresholdExceedsShareCount = errors.New("shamir: shares cannot be less than threshold")

	// ErrShareCollectionLengthOutOfRange is returned when combining fewer than 2 or more than 255 shares.
	ErrShareCollectionLengthOutOfRange = errors.New("shamir: shares must have at least 2 and at most 255 elements")

	// ErrShareTooShort is returned when a share has fewer than 2 bytes.
	ErrShareTooShort = errors.New("shamir: each share must be at least 2 bytes")

	// ErrShareLengthMismatch is returned when shares differ in length.
	ErrShareLengthMismatch = errors.New("shamir: all shares must have the same byte length")

	// ErrDuplicateShareCoordinate is returned when two shares carry the same X coordinate.
	ErrDuplicateShareCoordinate = errors.New("shamir: shares must contain unique values but a duplicate was found")

	// ErrInsufficientShares is returned by Verify when fewer than threshold shares are given.
	ErrInsufficientShares = errors.New("shamir: insufficient shares for verification")

	// ErrVerificationFailed is returned when a share does not lie on the polynomial of the others.
	ErrVerificationFailed = errors.New("shamir: share verification failed")

	// ErrInvalidShareFormat is returned when share data is malformed.
	ErrInvalidShareFormat = errors.New("shamir: invalid share format")

	// ErrInvalidShareX is returned when a parsed share has a zero X coordinate.
	ErrInvalidShareX = errors.New("shamir: share X coordinate must be non-zero")

	// ErrZeroEvaluationPoint means a polynomial was evaluated at zero, which would reveal the secret byte.
	ErrZeroEvaluationPoint = errors.New("shamir: cannot evaluate secret polynomial at zero")

	// ErrSampleLengthMismatch means interpolation got a different number of X and Y samples.
	ErrSampleLengthMismatch = errors.New("shamir: sample length mismatch")
)
