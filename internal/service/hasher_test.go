package service

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// bcryptTestCost keeps hashing fast in tests.
const bcryptTestCost = bcrypt.MinCost

func TestHasher_RoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	passwords := []string{"pw1", "correct horse battery staple", "päss wörd", " "}
	for _, p := range passwords {
		hash, err := hasher.Hash(p)
		if err != nil {
			t.Fatalf("Hash(%q) error = %v", p, err)
		}
		if !hasher.Verify(p, hash) {
			t.Errorf("Verify(%q, Hash(%q)) = false, want true", p, p)
		}
	}
}

func TestHasher_WrongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	hash, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hasher.Verify("pw2", hash) {
		t.Error("Verify() = true for a different password")
	}
}

func TestHasher_Salted(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	h1, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	h2, err := hasher.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if bytes.Equal(h1, h2) {
		t.Error("two hashes of the same password should differ (salt)")
	}
	if !hasher.Verify("pw1", h1) || !hasher.Verify("pw1", h2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestHasher_NeverPlaintext(t *testing.T) {
	hasher := NewBcryptHasher(bcryptTestCost)

	hash, err := hasher.Hash("supersecret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if bytes.Contains(hash, []byte("supersecret")) {
		t.Error("hash must not contain the plaintext password")
	}
}

func TestHasher_DefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(0).(*bcryptHasher)
	if hasher.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", hasher.cost, bcrypt.DefaultCost)
	}
}
