package identity

import (
	"crypto/ed25519"
	"encoding/asn1"
	"fmt"
)

var (
	oidEd25519     = asn1.ObjectIdentifier{1, 3, 101, 112}
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

type ed25519Algorithm struct {
	Algorithm asn1.ObjectIdentifier
}

type ecAlgorithm struct {
	Algorithm asn1.ObjectIdentifier
	Curve     asn1.ObjectIdentifier
}

type ed25519SPKI struct {
	Algorithm ed25519Algorithm
	PublicKey asn1.BitString
}

type ecSPKI struct {
	Algorithm ecAlgorithm
	PublicKey asn1.BitString
}

func ed25519DER(pub ed25519.PublicKey) ([]byte, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("ed25519 public key: want %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	return asn1.Marshal(ed25519SPKI{
		Algorithm: ed25519Algorithm{Algorithm: oidEd25519},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: 8 * len(pub)},
	})
}

// secp256k1DER expects the 65-byte uncompressed point.
func secp256k1DER(pub []byte) ([]byte, error) {
	if len(pub) != 65 || pub[0] != 0x04 {
		return nil, fmt.Errorf("secp256k1 public key: want 65-byte uncompressed point, got %d bytes", len(pub))
	}
	return asn1.Marshal(ecSPKI{
		Algorithm: ecAlgorithm{Algorithm: oidECPublicKey, Curve: oidSecp256k1},
		PublicKey: asn1.BitString{Bytes: pub, BitLength: 8 * len(pub)},
	})
}
