package identity

import (
	"crypto/ed25519"
	"fmt"

	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// ICPCoinType is the SLIP-44 coin type registered for the Internet Computer.
const ICPCoinType = 223

// secp256k1Path is m/44'/223'/0'/0/0.
var secp256k1Path = []uint32{
	bip32.FirstHardenedChild + 44,
	bip32.FirstHardenedChild + ICPCoinType,
	bip32.FirstHardenedChild + 0,
	0,
	0,
}

// MnemonicToIdentity stretches the mnemonic into a BIP-39 seed (empty
// passphrase) and uses its first 32 bytes as the Ed25519 seed.
func MnemonicToIdentity(mnemonic string) (*Ed25519Identity, error) {
	if err := checkMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed := bip39.NewSeed(mnemonic, "")
	defer zeroBytes(seed)
	return NewEd25519Identity(seed[:ed25519.SeedSize])
}

// MnemonicToIdentitySecp256k1 derives the secp256k1 key at m/44'/223'/0'/0/0
// of the BIP-32 tree rooted at the mnemonic's BIP-39 seed.
func MnemonicToIdentitySecp256k1(mnemonic string) (*Secp256k1Identity, error) {
	if err := checkMnemonic(mnemonic); err != nil {
		return nil, err
	}
	seed := bip39.NewSeed(mnemonic, "")
	defer zeroBytes(seed)

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("bip32 master key: %w", err)
	}
	for _, index := range secp256k1Path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("bip32 child %d: %w", index, err)
		}
	}
	secret := leftPad(key.Key, 32)
	defer zeroBytes(secret)
	return NewSecp256k1Identity(secret)
}

// SeedToIdentity builds an Ed25519 identity from the zero-padded seed buffer.
func SeedToIdentity(seed string) (*Ed25519Identity, error) {
	km, err := SeedKeyMaterial(seed)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(km[:])
	return NewEd25519Identity(km[:])
}

// MnemonicToScheme dispatches to the derivation for scheme.
func MnemonicToScheme(mnemonic string, scheme Scheme) (SignIdentity, error) {
	var (
		id  SignIdentity
		err error
	)
	switch scheme {
	case SchemeEd25519:
		var ed *Ed25519Identity
		if ed, err = MnemonicToIdentity(mnemonic); err == nil {
			id = ed
		}
	case SchemeSecp256k1:
		var k1 *Secp256k1Identity
		if k1, err = MnemonicToIdentitySecp256k1(mnemonic); err == nil {
			id = k1
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	if err != nil {
		return nil, err
	}
	return id, nil
}

// FromSecretKey rebuilds an identity from exported secret key bytes.
func FromSecretKey(scheme Scheme, secret []byte) (SignIdentity, error) {
	switch scheme {
	case SchemeEd25519:
		id, err := NewEd25519Identity(secret)
		if err != nil {
			return nil, err
		}
		return id, nil
	case SchemeSecp256k1:
		id, err := NewSecp256k1Identity(secret)
		if err != nil {
			return nil, err
		}
		return id, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func leftPad(b []byte, size int) []byte {
	out := make([]byte, size)
	if len(b) >= size {
		copy(out, b[len(b)-size:])
		return out
	}
	copy(out[size-len(b):], b)
	return out
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
