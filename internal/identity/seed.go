package identity

const (
	MinSeedLength   = 1
	MaxSeedLength   = 32
	KeyMaterialSize = 32
)

// IsSeedEmpty reports whether the seed has zero length.
func IsSeedEmpty(seed string) bool {
	return len(seed) == 0
}

// ValidateSeed reports whether the seed length, in UTF-8 bytes, lies in
// [MinSeedLength, MaxSeedLength]. Exactly MaxSeedLength is valid.
func ValidateSeed(seed string) bool {
	n := len(seed)
	return n >= MinSeedLength && n <= MaxSeedLength
}

// SeedKeyMaterial places the seed bytes at the start of a zeroed 32-byte
// buffer. Seeds differing only in trailing NUL bytes map to the same buffer.
func SeedKeyMaterial(seed string) ([KeyMaterialSize]byte, error) {
	var km [KeyMaterialSize]byte
	if IsSeedEmpty(seed) || !ValidateSeed(seed) {
		return km, ErrInvalidSeed
	}
	copy(km[:], seed)
	return km, nil
}
