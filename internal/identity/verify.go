package identity

import "crypto/ed25519"

// Verify checks sig over msg for a raw public key of the given scheme.
func Verify(scheme Scheme, pub, msg, sig []byte) bool {
	switch scheme {
	case SchemeEd25519:
		if len(pub) != ed25519.PublicKeySize {
			return false
		}
		return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
	case SchemeSecp256k1:
		return verifySecp256k1(pub, msg, sig)
	default:
		return false
	}
}
