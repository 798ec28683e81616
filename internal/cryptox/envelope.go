package cryptox

import (
	"encoding/hex"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
)

// Envelope is one sealed secret: ciphertext (with trailing tag) and the nonce
// it was sealed under.
type Envelope struct {
	Ciphertext []byte
	Nonce      []byte
}

// Hex returns the lowercase hex text form used by text-based storage.
func (e Envelope) Hex() (ciphertext, nonce string) {
	return hex.EncodeToString(e.Ciphertext), hex.EncodeToString(e.Nonce)
}

// EnvelopeFromHex parses the storage form produced by Hex. Malformed input is
// reported as common.ErrDecrypt, same as any other unreadable envelope.
func EnvelopeFromHex(ciphertext, nonce string) (Envelope, error) {
	ct, err := hex.DecodeString(ciphertext)
	if err != nil {
		return Envelope{}, common.ErrDecrypt
	}
	n, err := hex.DecodeString(nonce)
	if err != nil {
		return Envelope{}, common.ErrDecrypt
	}
	return Envelope{Ciphertext: ct, Nonce: n}, nil
}
