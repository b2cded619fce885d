package identity

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/multiformats/go-base32"
	"golang.org/x/crypto/blake2b"
)

const (
	selfAuthenticatingTag = 0x02
	anonymousTag          = 0x04
	maxPrincipalLength    = 29
	principalGroupSize    = 5
	keyIDPrefix           = "icid1"
)

// Principal is the network-level id of an Identity.
type Principal struct {
	raw []byte
}

// SelfAuthenticatingPrincipal binds a principal to a DER-encoded public key:
// SHA-224 of the key followed by the self-authenticating tag byte.
func SelfAuthenticatingPrincipal(der []byte) Principal {
	sum := sha256.Sum224(der)
	raw := make([]byte, 0, len(sum)+1)
	raw = append(raw, sum[:]...)
	raw = append(raw, selfAuthenticatingTag)
	return Principal{raw: raw}
}

func AnonymousPrincipal() Principal {
	return Principal{raw: []byte{anonymousTag}}
}

// PrincipalFromBytes wraps raw principal bytes.
func PrincipalFromBytes(raw []byte) (Principal, error) {
	if len(raw) > maxPrincipalLength {
		return Principal{}, fmt.Errorf("%w: %d bytes", ErrInvalidPrincipal, len(raw))
	}
	return Principal{raw: append([]byte(nil), raw...)}, nil
}

// ParsePrincipal decodes the dashed textual form and checks its CRC32 prefix.
func ParsePrincipal(text string) (Principal, error) {
	text = strings.TrimSpace(text)
	compact := strings.ReplaceAll(text, "-", "")
	decoded, err := base32.RawStdEncoding.DecodeString(strings.ToUpper(compact))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidPrincipal, err)
	}
	if len(decoded) < 4 {
		return Principal{}, fmt.Errorf("%w: too short", ErrInvalidPrincipal)
	}
	p, err := PrincipalFromBytes(decoded[4:])
	if err != nil {
		return Principal{}, err
	}
	if binary.BigEndian.Uint32(decoded[:4]) != crc32.ChecksumIEEE(p.raw) {
		return Principal{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidPrincipal)
	}
	if p.String() != strings.ToLower(text) {
		return Principal{}, fmt.Errorf("%w: non-canonical text", ErrInvalidPrincipal)
	}
	return p, nil
}

func (p Principal) Bytes() []byte { return append([]byte(nil), p.raw...) }

func (p Principal) IsAnonymous() bool {
	return len(p.raw) == 1 && p.raw[0] == anonymousTag
}

func (p Principal) IsSelfAuthenticating() bool {
	return len(p.raw) == sha256.Size224+1 && p.raw[len(p.raw)-1] == selfAuthenticatingTag
}

func (p Principal) Equal(other Principal) bool { return bytes.Equal(p.raw, other.raw) }

// String renders lowercase base32 of crc32(raw) || raw, grouped by five.
func (p Principal) String() string {
	buf := make([]byte, 4, 4+len(p.raw))
	binary.BigEndian.PutUint32(buf, crc32.ChecksumIEEE(p.raw))
	buf = append(buf, p.raw...)
	enc := strings.ToLower(base32.RawStdEncoding.EncodeToString(buf))

	var b strings.Builder
	b.Grow(len(enc) + len(enc)/principalGroupSize)
	for i := 0; i < len(enc); i += principalGroupSize {
		if i > 0 {
			b.WriteByte('-')
		}
		end := min(i+principalGroupSize, len(enc))
		b.WriteString(enc[i:end])
	}
	return b.String()
}

// KeyID returns a short, stable id for a signing identity's public key.
func KeyID(id SignIdentity) (string, error) {
	der := id.DER()
	if len(der) == 0 {
		return "", fmt.Errorf("%w: no public key", ErrUnsupportedScheme)
	}
	h := blake2b.Sum256(der)
	return keyIDPrefix + base58.Encode(h[:]), nil
}
