package identity

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// ExportedKey is the serialisable form of a signing identity.
type ExportedKey struct {
	Scheme    Scheme `json:"scheme"`
	SecretKey string `json:"secret_key"`
	PublicKey string `json:"public_key"`
	KeyID     string `json:"key_id"`
}

// Export captures the secret needed to rebuild id. The result is as sensitive
// as the credential it was derived from.
func Export(id SignIdentity) (ExportedKey, error) {
	holder, ok := id.(secretHolder)
	if !ok {
		return ExportedKey{}, fmt.Errorf("%w: %s identity is not exportable", ErrUnsupportedScheme, id.Scheme())
	}
	keyID, err := KeyID(id)
	if err != nil {
		return ExportedKey{}, err
	}
	secret := holder.secretKey()
	defer zeroBytes(secret)
	return ExportedKey{
		Scheme:    id.Scheme(),
		SecretKey: hex.EncodeToString(secret),
		PublicKey: hex.EncodeToString(id.DER()),
		KeyID:     keyID,
	}, nil
}

// FromExported rebuilds the identity and, when a public key is present,
// checks that it matches the secret.
func FromExported(k ExportedKey) (SignIdentity, error) {
	secret, err := hex.DecodeString(strings.TrimSpace(k.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecretKey, err)
	}
	defer zeroBytes(secret)

	id, err := FromSecretKey(k.Scheme, secret)
	if err != nil {
		return nil, err
	}
	if k.PublicKey == "" {
		return id, nil
	}
	der, err := hex.DecodeString(strings.TrimSpace(k.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("%w: public key: %v", ErrInvalidSecretKey, err)
	}
	if !bytes.Equal(der, id.DER()) {
		return nil, fmt.Errorf("%w: public key does not match secret", ErrInvalidSecretKey)
	}
	return id, nil
}
