package common

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandByteArray returns n cryptographically random bytes.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// MakeRandHexString returns a random hex string of n bytes of entropy
// (2n characters). Used for challenge nonces and refresh tokens.
func MakeRandHexString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// WipeByteArray zeroes a sensitive buffer in place.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
