//go:build !linux

package csprng

import (
	"crypto/rand"
	"io"
)

func newReader() io.Reader {
	return rand.Reader
}
