package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4

	passwordSaltSize = 16
	passwordScheme   = "argon2id"
)

// DeriveMasterKey stretches a passphrase into a KeySize process key with argon2id.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
}

// HashPassword returns a one-way, salted encoding of password in the form
// "argon2id$<salt hex>$<hash hex>". The salt is read from rnd (crypto/rand
// when nil); a failing source panics.
func HashPassword(rnd io.Reader, password []byte) string {
	salt := common.ReadRandom(rnd, passwordSaltSize)
	sum := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
	return fmt.Sprintf("%s$%x$%x", passwordScheme, salt, sum)
}

// VerifyPassword reports whether password hashes to encoded. Malformed
// encodings never verify.
func VerifyPassword(encoded string, password []byte) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != passwordScheme {
		return false
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != KeySize {
		return false
	}
	got := argon2.IDKey(password, salt, argonTime, argonMemory, argonThreads, KeySize)
	return subtle.ConstantTimeCompare(want, got) == 1
}
