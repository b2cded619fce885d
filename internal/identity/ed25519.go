package identity

import (
	"crypto/ed25519"
	"fmt"
)

// Ed25519Identity is an immutable EdDSA identity.
type Ed25519Identity struct {
	priv      ed25519.PrivateKey
	pub       ed25519.PublicKey
	der       []byte
	principal Principal
}

// NewEd25519Identity builds the keypair deterministically from a 32-byte seed.
func NewEd25519Identity(seed []byte) (*Ed25519Identity, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: ed25519 seed must be %d bytes, got %d", ErrInvalidSecretKey, ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	der, err := ed25519DER(pub)
	if err != nil {
		return nil, err
	}
	return &Ed25519Identity{
		priv:      priv,
		pub:       pub,
		der:       der,
		principal: SelfAuthenticatingPrincipal(der),
	}, nil
}

func (id *Ed25519Identity) Scheme() Scheme { return SchemeEd25519 }

func (id *Ed25519Identity) Principal() Principal { return id.principal }

func (id *Ed25519Identity) PublicKey() []byte { return append([]byte(nil), id.pub...) }

func (id *Ed25519Identity) DER() []byte { return append([]byte(nil), id.der...) }

func (id *Ed25519Identity) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(id.priv, msg), nil
}

func (id *Ed25519Identity) secretKey() []byte {
	return append([]byte(nil), id.priv.Seed()...)
}
