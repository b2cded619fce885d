package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/identity"
)

func resolveCmd(app *appContext) *cobra.Command {
	var (
		creds        credentialFlags
		identityFile string
		passphrase   string
		host         string
		strict       bool
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve credentials and bind the identity to a replica host",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := creds.request()
			req.Host = host

			if identityFile == "" && req.Mnemonic == "" && req.Seed == "" {
				identityFile = app.cfg.Identity.IdentityFile
			}
			if identityFile != "" {
				id, err := identity.LoadIdentityFile(identityFile, flagOrEnv(passphrase, "ICAUTH_PASSPHRASE"))
				if err != nil {
					return err
				}
				req.Identity = id
			}

			resolver := app.resolver
			if strict && !app.cfg.Identity.StrictCredentials {
				var err error
				if resolver, err = app.newResolver(resolver.MnemonicScheme(), true); err != nil {
					return err
				}
			}
			res, err := resolver.Resolve(req)
			if err != nil {
				return err
			}
			ag, err := app.factory.BuildResolved(res)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "source: %s\n", res.Source)
			if err := printIdentity(cmd, ag.Identity()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "host: %s\n", ag.Host())
			return nil
		},
	}
	creds.register(cmd)
	cmd.Flags().StringVar(&identityFile, "identity-file", "", "sealed identity file written by export")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "identity file passphrase (or ICAUTH_PASSPHRASE)")
	cmd.Flags().StringVar(&host, "host", "", "replica URL, host[:port] or multiaddr (default from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when more than one credential is supplied")
	return cmd
}

func anonymousCmd(app *appContext) *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "anonymous",
		Short: "Bind the anonymous identity to a replica host",
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := app.factory.BuildAnonymous(host, nil)
			if err != nil {
				return err
			}
			if err := printIdentity(cmd, ag.Identity()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "host: %s\n", ag.Host())
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "replica URL, host[:port] or multiaddr (default from config)")
	return cmd
}
