package hash_test

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/peoplecare/hrportal/internal/hash"
)

func TestBcrypt_RoundTrip(t *testing.T) {
	h := hash.NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("a0b1c2d3")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "a0b1c2d3" {
		t.Fatal("digest equals plaintext")
	}
	if !h.Verify("a0b1c2d3", digest) {
		t.Error("matching plaintext rejected")
	}
	if h.Verify("a0b1c2d4", digest) {
		t.Error("wrong plaintext accepted")
	}
}

func TestBcrypt_RejectsInputOver72Bytes(t *testing.T) {
	// bcrypt's hard input limit. Callers hashing anything longer (signed
	// refresh tokens) must digest it first.
	h := hash.NewBcrypt(bcrypt.MinCost)
	if _, err := h.Hash(strings.Repeat("a", 100)); err == nil {
		t.Fatal("input over 72 bytes accepted")
	}
}

func TestBcrypt_MalformedDigest(t *testing.T) {
	h := hash.NewBcrypt(bcrypt.MinCost)
	if h.Verify("anything", "not-a-bcrypt-digest") {
		t.Error("malformed digest verified")
	}
}

func TestBcrypt_DefaultCost(t *testing.T) {
	h := hash.NewBcrypt(0)
	digest, err := h.Hash("x")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost: %v", err)
	}
	if cost != 10 {
		t.Errorf("default cost = %d, want 10", cost)
	}
}
