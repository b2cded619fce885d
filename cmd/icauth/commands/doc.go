// Package commands defines the icauth CLI.
//
// Commands
//
//   - validate mnemonic|seed  Check a credential without deriving keys
//   - derive                  Derive an identity and print its principal
//   - resolve                 Resolve credentials and bind them to a replica host
//   - anonymous               Print the anonymous agent binding
//   - mnemonic new            Generate a fresh BIP-39 phrase
//   - export                  Seal a derived identity into a passphrase-protected file
//
// Credentials may be passed as flags or through ICAUTH_MNEMONIC, ICAUTH_SEED
// and ICAUTH_PASSPHRASE so they stay out of shell history.
package commands
