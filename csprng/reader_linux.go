//go:build linux

package csprng

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// maxGetrandom is the largest request getrandom(2) serves without a short read.
const maxGetrandom = 1 << 25

type getrandomReader struct{}

func newReader() io.Reader {
	return getrandomReader{}
}

// Read blocks until the kernel entropy pool is initialized and then fills p.
func (getrandomReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		chunk := p[n:min(len(p), n+maxGetrandom)]

		read, err := unix.Getrandom(chunk, 0)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return n, err
		}

		n += read
	}

	return n, nil
}
