// Package passgen generates random passwords for credentials stored without
// an explicit secret.
package passgen

import (
	"io"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
)

// DefaultLength is the length used when configuration does not override it.
const DefaultLength = 12

// Alphabet is the 76-character set passwords are drawn from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()-_=+"

// bytes at or above this value are rejected so every symbol is equally likely
const rejectAbove = 256 - 256%len(Alphabet)

// Generate returns length characters chosen uniformly from Alphabet using rnd
// (crypto/rand when nil). It panics if the random source fails.
func Generate(rnd io.Reader, length int) []byte {
	out := make([]byte, 0, length)
	for len(out) < length {
		buf := common.ReadRandom(rnd, length-len(out)+8)
		for _, b := range buf {
			if int(b) >= rejectAbove {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	return out
}
