package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/identity"
)

func exportCmd(app *appContext) *cobra.Command {
	var (
		creds      credentialFlags
		scheme     string
		out        string
		passphrase string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Seal a derived identity into a passphrase-protected file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("output path required (--out)")
			}
			pass := flagOrEnv(passphrase, "ICAUTH_PASSPHRASE")
			if pass == "" {
				return errors.New("passphrase required (--passphrase or ICAUTH_PASSPHRASE)")
			}
			id, err := app.deriveOne(creds.request(), scheme)
			if err != nil {
				return err
			}
			if err := identity.SaveIdentityFile(out, pass, id); err != nil {
				return err
			}
			app.logger.Info("identity exported", "scheme", id.Scheme(), "principal", id.Principal().String())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return printIdentity(cmd, id)
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&scheme, "scheme", "", "mnemonic scheme: ed25519 or secp256k1 (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "path of the sealed identity file")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "file passphrase (or ICAUTH_PASSPHRASE)")
	return cmd
}
