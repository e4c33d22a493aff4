package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher error: %v", err)
	}
	return h
}

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	hash, err := h.Hash("12345")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "12345" {
		t.Fatalf("hash must differ from plaintext")
	}

	if !h.Verify("12345", hash) {
		t.Fatalf("Verify must accept the original password")
	}
	if h.Verify("wrong", hash) {
		t.Fatalf("Verify must reject a wrong password")
	}
}

func TestHasher_HashesAreSalted(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	h1, err := h.Hash("12345")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("12345")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password must differ (random salt)")
	}
}

func TestNewHasher_CostBounds(t *testing.T) {
	t.Parallel()

	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatalf("expected error for cost above maximum")
	}
	if _, err := NewHasher(-1); err == nil {
		t.Fatalf("expected error for negative cost")
	}
	if _, err := NewHasher(DefaultCost); err != nil {
		t.Fatalf("default cost must be accepted: %v", err)
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	t.Parallel()
	h := newTestHasher(t)

	if h.Verify("12345", "not-a-bcrypt-hash") {
		t.Fatalf("Verify must reject a malformed stored hash")
	}
}
