package identity

import (
	"errors"
	"fmt"
	"strings"

	"icauth/go-backend/internal/securestore"
)

var identityFileAAD = []byte("icauth/identity/v1")

// SaveIdentityFile seals id's exported key under passphrase at path.
func SaveIdentityFile(path, passphrase string, id SignIdentity) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("identity file path is empty")
	}
	key, err := Export(id)
	if err != nil {
		return err
	}
	return securestore.WriteSealedJSON(path, passphrase, identityFileAAD, key)
}

// LoadIdentityFile opens a file written by SaveIdentityFile.
func LoadIdentityFile(path, passphrase string) (SignIdentity, error) {
	var key ExportedKey
	if err := securestore.ReadSealedJSON(strings.TrimSpace(path), passphrase, identityFileAAD, &key); err != nil {
		return nil, fmt.Errorf("load identity file: %w", err)
	}
	return FromExported(key)
}
