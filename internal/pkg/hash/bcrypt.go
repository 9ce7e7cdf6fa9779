package hash

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// bcryptMaxInput is the number of bytes bcrypt reads from its input.
	bcryptMaxInput = 72
	// MaxPlaintextBytes bounds the plaintext accepted by Bcrypt.
	MaxPlaintextBytes = 1024
)

// ErrPasswordTooLong means the plaintext is over MaxPlaintextBytes.
var ErrPasswordTooLong = errors.New("hash: password exceeds 1024 bytes")

// Bcrypt hashes peppered plaintext with golang.org/x/crypto/bcrypt. The pepper
// lives in configuration only, never next to the hash.
//
// Peppered input longer than 72 bytes is first reduced to the base64 form of
// its SHA-256 digest, so long or multibyte passwords are hashed in full
// instead of being rejected or truncated.
type Bcrypt struct {
	cost   int
	pepper []byte
}

// NewBcrypt returns a hasher with the given work factor. Out-of-range costs
// use bcrypt.DefaultCost.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Bcrypt{cost: cost, pepper: []byte(pepper)}
}

func (h *Bcrypt) input(plaintext string) []byte {
	in := append([]byte(plaintext), h.pepper...)
	if len(in) <= bcryptMaxInput {
		return in
	}

	sum := sha256.Sum256(in)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	if len(plaintext) > MaxPlaintextBytes {
		return nil, ErrPasswordTooLong
	}
	return bcrypt.GenerateFromPassword(h.input(plaintext), h.cost)
}

func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	if len(plaintext) > MaxPlaintextBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), h.input(plaintext)) == nil
}
