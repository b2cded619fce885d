package identity

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateSeedBoundaries(t *testing.T) {
	if ValidateSeed("") {
		t.Fatal("empty seed must be invalid")
	}
	if !ValidateSeed("a") {
		t.Fatal("1-byte seed must be valid")
	}
	if !ValidateSeed(strings.Repeat("a", 32)) {
		t.Fatal("32-byte seed must be valid")
	}
	if ValidateSeed(strings.Repeat("a", 33)) {
		t.Fatal("33-byte seed must be invalid")
	}
}

func TestValidateSeedCountsUTF8Bytes(t *testing.T) {
	// 11 runes, 33 bytes.
	if ValidateSeed(strings.Repeat("€", 11)) {
		t.Fatal("seed longer than 32 bytes must be invalid")
	}
	if !ValidateSeed(strings.Repeat("€", 10)) {
		t.Fatal("30-byte seed must be valid")
	}
}

func TestIsSeedEmpty(t *testing.T) {
	if !IsSeedEmpty("") {
		t.Fatal("expected empty seed")
	}
	if IsSeedEmpty("x") {
		t.Fatal("expected non-empty seed")
	}
}

func TestSeedKeyMaterialIsLeftAlignedAndZeroPadded(t *testing.T) {
	km, err := SeedKeyMaterial("valid-seed")
	if err != nil {
		t.Fatalf("key material failed: %v", err)
	}
	want := make([]byte, KeyMaterialSize)
	copy(want, "valid-seed")
	if !bytes.Equal(km[:], want) {
		t.Fatalf("unexpected key material: %x", km)
	}
}

func TestSeedKeyMaterialTrailingZerosCollide(t *testing.T) {
	a, err := SeedKeyMaterial("ab")
	if err != nil {
		t.Fatalf("key material failed: %v", err)
	}
	b, err := SeedKeyMaterial("ab\x00\x00")
	if err != nil {
		t.Fatalf("key material failed: %v", err)
	}
	if a != b {
		t.Fatal("seeds differing only by trailing NULs share key material")
	}
}

func TestSeedToIdentityRejectsOutOfRange(t *testing.T) {
	for _, seed := range []string{"", strings.Repeat("a", 33)} {
		if _, err := SeedToIdentity(seed); !errors.Is(err, ErrInvalidSeed) {
			t.Fatalf("seed len %d: expected ErrInvalidSeed, got %v", len(seed), err)
		}
	}
}

func TestSeedToIdentityAcceptsMaxLength(t *testing.T) {
	id, err := SeedToIdentity(strings.Repeat("a", 32))
	if err != nil {
		t.Fatalf("seed to identity failed: %v", err)
	}
	if id.Scheme() != SchemeEd25519 {
		t.Fatalf("expected ed25519 scheme, got %s", id.Scheme())
	}
}
