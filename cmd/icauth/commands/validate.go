package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/identity"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a mnemonic or seed without deriving keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "mnemonic <word>...",
			Short: "Validate a BIP-39 mnemonic",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !identity.ValidateMnemonic(strings.Join(args, " ")) {
					return identity.ErrInvalidMnemonic
				}
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed <seed>",
			Short: "Validate a raw seed (1-32 bytes)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !identity.ValidateSeed(args[0]) {
					return identity.ErrInvalidSeed
				}
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			},
		},
	)
	return cmd
}
