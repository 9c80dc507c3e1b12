// Package csprng provides the cryptographically secure random source used to draw
// polynomial coefficients and share coordinates.
//
// On Linux the source reads directly from getrandom(2). On every other platform it is
// crypto/rand.Reader. There is no fallback to a non-cryptographic generator.
package csprng

import (
	"fmt"
	"io"
)

// Reader is the platform's secure random source. It is safe for concurrent use.
var Reader io.Reader = newReader()

// Fill reads exactly len(buf) bytes from r into buf.
// An empty buf is left untouched and r is not read.
func Fill(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("csprng: read %d bytes: %w", len(buf), err)
	}
	return nil
}
