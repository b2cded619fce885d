package identity

import (
	"crypto/sha256"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const secp256k1SignatureSize = 64

// Secp256k1Identity is an immutable ECDSA identity over secp256k1.
type Secp256k1Identity struct {
	priv      *secp256k1.PrivateKey
	pub       []byte
	der       []byte
	principal Principal
}

// NewSecp256k1Identity wraps a 32-byte big-endian secret scalar.
// Zero and values >= the group order are rejected.
func NewSecp256k1Identity(secret []byte) (*Secp256k1Identity, error) {
	if len(secret) != secp256k1.PrivKeyBytesLen {
		return nil, fmt.Errorf("%w: secp256k1 key must be %d bytes, got %d", ErrInvalidSecretKey, secp256k1.PrivKeyBytesLen, len(secret))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(secret); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: secp256k1 scalar out of range", ErrInvalidSecretKey)
	}
	priv := secp256k1.NewPrivateKey(&scalar)
	pub := priv.PubKey().SerializeUncompressed()
	der, err := secp256k1DER(pub)
	if err != nil {
		return nil, err
	}
	return &Secp256k1Identity{
		priv:      priv,
		pub:       pub,
		der:       der,
		principal: SelfAuthenticatingPrincipal(der),
	}, nil
}

func (id *Secp256k1Identity) Scheme() Scheme { return SchemeSecp256k1 }

func (id *Secp256k1Identity) Principal() Principal { return id.principal }

func (id *Secp256k1Identity) PublicKey() []byte { return append([]byte(nil), id.pub...) }

func (id *Secp256k1Identity) DER() []byte { return append([]byte(nil), id.der...) }

// Sign returns r||s over SHA-256(msg), using RFC 6979 nonces.
func (id *Secp256k1Identity) Sign(msg []byte) ([]byte, error) {
	hash := sha256.Sum256(msg)
	compact := ecdsa.SignCompact(id.priv, hash[:], false)
	// Drop the leading recovery byte.
	return compact[1:], nil
}

func (id *Secp256k1Identity) secretKey() []byte {
	return id.priv.Serialize()
}

func verifySecp256k1(pub, msg, sig []byte) bool {
	if len(sig) != secp256k1SignatureSize {
		return false
	}
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return false
	}
	hash := sha256.Sum256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(hash[:], key)
}
