package common

import (
	"crypto/rand"
	"fmt"
	"io"
)

// ReadRandom fills a new slice of size n from r, or from crypto/rand when r
// is nil. A failing source panics: there is no weaker fallback.
func ReadRandom(r io.Reader, n int) []byte {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		panic(fmt.Sprintf("secure random source unavailable: %v", err))
	}
	return b
}

// GenerateRandByteArray returns size bytes from crypto/rand.
func GenerateRandByteArray(size int) []byte {
	return ReadRandom(nil, size)
}

// WipeByteArray overwrites b with zeros. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
