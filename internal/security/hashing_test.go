package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash([]byte("acme-dev-secret"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if err := h.Compare(hash, []byte("acme-dev-secret")); err != nil {
		t.Errorf("Compare() with correct secret error = %v, want nil", err)
	}
	if err := h.Compare(hash, []byte("wrong-secret")); err == nil {
		t.Error("Compare() with wrong secret error = nil, want error")
	}
}

func TestHasher_CompareInvalidHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	if err := h.Compare("not-a-bcrypt-hash", []byte("x")); err == nil {
		t.Error("Compare() with invalid hash error = nil, want error")
	}
}

func TestNewHasher_CostClamping(t *testing.T) {
	cases := []struct {
		cost int
		want int
	}{
		{0, bcrypt.DefaultCost},
		{-1, bcrypt.DefaultCost},
		{2, bcrypt.MinCost},
		{12, 12},
		{99, bcrypt.MaxCost},
	}
	for _, c := range cases {
		if got := NewHasher(c.cost).Cost; got != c.want {
			t.Errorf("NewHasher(%d).Cost = %d, want %d", c.cost, got, c.want)
		}
	}
}
