package shamir

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

// Share is a single share of a secret.
// Format: [y_0, y_1, ..., y_n, x] where x is the last byte.
// Share size is always len(secret) + 1.
//
// Share implements encoding.TextMarshaler and encoding.TextUnmarshaler using the
// base64 form of String, so it encodes as a plain string in JSON and YAML share
// bundles. Decoding goes through ParseShare and rejects a zero X coordinate.
type Share []byte

// X returns the X coordinate of the share.
func (s Share) X() uint8 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1]
}

// Y returns the Y values (all bytes except the last).
func (s Share) Y() []byte {
	if len(s) < 2 {
		return nil
	}
	return s[:len(s)-1]
}

// Clone creates a copy of the share.
func (s Share) Clone() Share {
	if s == nil {
		return nil
	}
	clone := make(Share, len(s))
	copy(clone, s)
	return clone
}

// Equal checks if two shares are equal in constant time.
func (s Share) Equal(other Share) bool {
	if len(s) != len(other) {
		return false
	}
	return subtle.ConstantTimeCompare(s, other) == 1
}

// String returns the share as a base64-encoded string.
func (s Share) String() string {
	return base64.StdEncoding.EncodeToString(s)
}

// MarshalText encodes the share as base64, so shares appear as strings in JSON and YAML.
func (s Share) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a base64 share produced by MarshalText.
func (s *Share) UnmarshalText(text []byte) error {
	share, err := ParseShare(string(text))
	if err != nil {
		return err
	}
	*s = share
	return nil
}

// ParseShare deserializes a share from a base64-encoded string.
func ParseShare(str string) (Share, error) {
	data, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, errors.Join(ErrInvalidShareFormat, err)
	}
	if len(data) < 2 {
		return nil, ErrInvalidShareFormat
	}
	if data[len(data)-1] == 0 {
		return nil, ErrInvalidShareX
	}
	return Share(data), nil
}

// ParseShares parses each string with ParseShare.
func ParseShares(strs []string) ([]Share, error) {
	shares := make([]Share, len(strs))
	for i, str := range strs {
		share, err := ParseShare(str)
		if err != nil {
			return nil, err
		}
		shares[i] = share
	}
	return shares, nil
}
