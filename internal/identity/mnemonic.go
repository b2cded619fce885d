package identity

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// DefaultMnemonicBits yields a 24-word phrase.
const DefaultMnemonicBits = 256

// IsMnemonicEmpty reports whether the mnemonic has zero length.
func IsMnemonicEmpty(mnemonic string) bool {
	return len(mnemonic) == 0
}

// ValidateMnemonic applies the BIP-39 word list and checksum rules.
// Unknown words, wrong word counts and checksum mismatches all yield false.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// NewMnemonic draws fresh entropy of the given size (128..256, a multiple of 32)
// and encodes it as an English BIP-39 phrase.
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("mnemonic entropy: %w", err)
	}
	defer zeroBytes(entropy)
	return bip39.NewMnemonic(entropy)
}

func checkMnemonic(mnemonic string) error {
	if IsMnemonicEmpty(mnemonic) || !ValidateMnemonic(mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}
