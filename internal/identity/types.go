package identity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMnemonic     = errors.New("invalid mnemonic")
	ErrInvalidSeed         = errors.New("invalid seed")
	ErrMissingCredential   = errors.New("mnemonic, seed or identity is required")
	ErrAmbiguousCredential = errors.New("more than one credential supplied")
	ErrUnsupportedScheme   = errors.New("unsupported signature scheme")
	ErrInvalidSecretKey    = errors.New("invalid secret key")
	ErrInvalidPrincipal    = errors.New("invalid principal")
)

type Scheme string

const (
	SchemeEd25519   Scheme = "ed25519"
	SchemeSecp256k1 Scheme = "secp256k1"
	SchemeAnonymous Scheme = "anonymous"
)

func (s Scheme) String() string { return string(s) }

// ParseScheme accepts the signing schemes a credential can be derived into.
// The anonymous scheme is never derived, so it is rejected here.
func ParseScheme(raw string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(raw))) {
	case SchemeEd25519, "eddsa":
		return SchemeEd25519, nil
	case SchemeSecp256k1, "ecdsa":
		return SchemeSecp256k1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, raw)
	}
}

// Identity is a credential an agent can act as.
type Identity interface {
	Scheme() Scheme
	Principal() Principal
}

// SignIdentity is an Identity backed by a keypair.
type SignIdentity interface {
	Identity
	// PublicKey returns the raw public key: 32 bytes for Ed25519,
	// a 65-byte uncompressed point for secp256k1.
	PublicKey() []byte
	// DER returns the public key as a DER SubjectPublicKeyInfo.
	DER() []byte
	Sign(msg []byte) ([]byte, error)
}

// secretHolder is implemented by identities that can be exported.
type secretHolder interface {
	secretKey() []byte
}
