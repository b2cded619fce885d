package identity

import (
	"errors"
	"path/filepath"
	"testing"

	"icauth/go-backend/internal/securestore"
	"icauth/go-backend/internal/testutil/fsperm"
)

func TestIdentityFileRoundTrip(t *testing.T) {
	id, err := MnemonicToIdentitySecp256k1(validMnemonic)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	path := filepath.Join(t.TempDir(), "keys", "identity.enc")
	if err := SaveIdentityFile(path, "correct horse", id); err != nil {
		t.Fatalf("save: %v", err)
	}
	fsperm.AssertPrivateFilePerm(t, path)

	loaded, err := LoadIdentityFile(path, "correct horse")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Scheme() != SchemeSecp256k1 || loaded.Principal().String() != mnemonicSecp256k1Princ {
		t.Fatalf("unexpected identity %s %s", loaded.Scheme(), loaded.Principal())
	}

	if _, err := LoadIdentityFile(path, "wrong"); !errors.Is(err, securestore.ErrAuthFailed) {
		t.Fatalf("expected ErrAuthFailed, got %v", err)
	}
}

func TestSaveIdentityFileRequiresPassphrase(t *testing.T) {
	id, _ := SeedToIdentity("valid-seed")
	path := filepath.Join(t.TempDir(), "identity.enc")
	if err := SaveIdentityFile(path, "", id); !errors.Is(err, securestore.ErrPassphraseRequired) {
		t.Fatalf("expected ErrPassphraseRequired, got %v", err)
	}
	if err := SaveIdentityFile(" ", "pass", id); err == nil {
		t.Fatal("expected error for empty path")
	}
}
