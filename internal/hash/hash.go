// Package hash is the one-way hashing primitive shared by magic-link
// tokens and refresh tokens. Plaintext secrets never leave this package
// in any stored or logged form.
package hash

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies opaque secrets.
type Hasher interface {
	Hash(secret string) (string, error)
	// Verify reports whether secret matches the stored hash. Malformed
	// hashes count as a mismatch, not an error.
	Verify(secret, hash string) bool
}

type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost == 0 {
		cost = 10
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
