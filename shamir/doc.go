// Package shamir implements Shamir's Secret Sharing over GF(2^8).
//
// A secret of any non-zero length is split byte by byte: every secret byte becomes the
// constant term of its own random polynomial of degree threshold-1, and each share holds
// that polynomial's value at the share's X coordinate. The X coordinate is stored as the
// share's last byte, so a share is always one byte longer than the secret. The layout and
// field tables are compatible with hashicorp/vault's shamir package.
//
// Fewer than threshold shares reveal nothing about the secret. They also cannot be told
// apart from a valid set: Combine given too few shares returns a wrong secret without an
// error. Verify can detect inconsistent shares when more than threshold are available.
package shamir
