// Package cryptox implements the sealed-envelope format used for stored
// secrets, plus the key and password derivation helpers around it.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the length of the process key in bytes (AES-256).
	KeySize = 32
	// NonceSize is the length of the per-envelope nonce, used as the CBC IV.
	NonceSize = aes.BlockSize

	tagSize = sha256.Size
)

var subkeyInfo = []byte("vaultkeeper envelope v1")

// ErrInvalidKey is returned by NewCipher when the key is not KeySize bytes.
var ErrInvalidKey = errors.New("cipher key must be 32 bytes")

// Cipher seals and opens envelopes under a single immutable key.
//
// Envelopes are AES-256-CBC with PKCS#7 padding, IV = nonce, followed by an
// HMAC-SHA256 tag over nonce||ciphertext. Both subkeys are expanded from the
// process key with HKDF. The tag is checked before any padding is inspected.
type Cipher struct {
	block  cipher.Block
	macKey []byte
	rnd    io.Reader
}

// NewCipher builds a Cipher for key. rnd is the random source for nonces;
// nil selects crypto/rand.
func NewCipher(key []byte, rnd io.Reader) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	sub := make([]byte, 2*KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, key, nil, subkeyInfo), sub); err != nil {
		return nil, fmt.Errorf("subkey derivation: %w", err)
	}
	defer common.WipeByteArray(sub[:KeySize])

	block, err := aes.NewCipher(sub[:KeySize])
	if err != nil {
		return nil, fmt.Errorf("aes init: %w", err)
	}

	return &Cipher{block: block, macKey: sub[KeySize:], rnd: rnd}, nil
}

// Seal encrypts plaintext under a fresh random nonce. Sealing the same
// plaintext twice yields different envelopes. It panics if the random
// source fails.
func (c *Cipher) Seal(plaintext []byte) Envelope {
	nonce := common.ReadRandom(c.rnd, NonceSize)

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	defer common.WipeByteArray(padded)

	ct := make([]byte, len(padded), len(padded)+tagSize)
	cipher.NewCBCEncrypter(c.block, nonce).CryptBlocks(ct, padded)
	ct = append(ct, c.tag(nonce, ct)...)

	return Envelope{Ciphertext: ct, Nonce: nonce}
}

// Open authenticates and decrypts env. Every failure is reported as
// common.ErrDecrypt without further detail.
func (c *Cipher) Open(env Envelope) ([]byte, error) {
	if len(env.Nonce) != NonceSize {
		return nil, common.ErrDecrypt
	}

	n := len(env.Ciphertext) - tagSize
	if n < aes.BlockSize || n%aes.BlockSize != 0 {
		return nil, common.ErrDecrypt
	}
	body, tag := env.Ciphertext[:n], env.Ciphertext[n:]

	if !hmac.Equal(tag, c.tag(env.Nonce, body)) {
		return nil, common.ErrDecrypt
	}

	pt := make([]byte, n)
	cipher.NewCBCDecrypter(c.block, env.Nonce).CryptBlocks(pt, body)

	out, ok := pkcs7Unpad(pt, aes.BlockSize)
	if !ok {
		common.WipeByteArray(pt)
		return nil, common.ErrDecrypt
	}
	return out, nil
}

// SealedLen reports the ciphertext length Seal produces for n plaintext bytes.
func SealedLen(n int) int {
	return (n/aes.BlockSize+1)*aes.BlockSize + tagSize
}

func (c *Cipher) tag(nonce, body []byte) []byte {
	m := hmac.New(sha256.New, c.macKey)
	m.Write(nonce)
	m.Write(body)
	return m.Sum(nil)
}

func pkcs7Pad(b []byte, size int) []byte {
	pad := size - len(b)%size
	out := make([]byte, len(b)+pad)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(b []byte, size int) ([]byte, bool) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, false
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > size {
		return nil, false
	}
	for _, v := range b[len(b)-pad:] {
		if int(v) != pad {
			return nil, false
		}
	}
	return b[:len(b)-pad], true
}
