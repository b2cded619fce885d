package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/identity"
)

func deriveCmd(app *appContext) *cobra.Command {
	var (
		creds  credentialFlags
		scheme string
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive an identity from exactly one mnemonic or seed",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.deriveOne(creds.request(), scheme)
			if err != nil {
				return err
			}
			return printIdentity(cmd, id)
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&scheme, "scheme", "", "mnemonic scheme: ed25519 or secp256k1 (default from config)")
	return cmd
}

// deriveOne rejects requests carrying both credentials and returns a signing identity.
func (a *appContext) deriveOne(req identity.CredentialRequest, scheme string) (identity.SignIdentity, error) {
	target := a.resolver.MnemonicScheme()
	if scheme != "" {
		parsed, err := identity.ParseScheme(scheme)
		if err != nil {
			return nil, err
		}
		target = parsed
	}
	resolver, err := a.newResolver(target, true)
	if err != nil {
		return nil, err
	}
	res, err := resolver.Resolve(req)
	if err != nil {
		return nil, err
	}
	signer, ok := res.Identity.(identity.SignIdentity)
	if !ok {
		return nil, fmt.Errorf("%w: %s", identity.ErrUnsupportedScheme, res.Identity.Scheme())
	}
	return signer, nil
}
