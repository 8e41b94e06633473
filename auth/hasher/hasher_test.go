package hasher

import (
	"bytes"
	"errors"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := New()
	secret, err := h.Hash("pw1")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Verify("pw1", secret) {
		t.Error("want match for the original password")
	}
	if h.Verify("pw2", secret) {
		t.Error("want mismatch for a different password")
	}
	if h.Verify("", secret) {
		t.Error("want mismatch for an empty password")
	}
}

func TestHashEmptyPassword(t *testing.T) {
	h := New()
	_, err := h.Hash("")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestHashIsSalted(t *testing.T) {
	h := New()
	first, err := h.Hash("pw1")
	if err != nil {
		t.Fatal(err)
	}
	second, err := h.Hash("pw1")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(first.PasswordHash, second.PasswordHash) {
		t.Error("two hashes of the same password must not be equal")
	}
}
