package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"icauth/go-backend/internal/identity"
)

func mnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Mnemonic utilities",
	}
	var bits int
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a BIP-39 mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := identity.NewMnemonic(bits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
	newCmd.Flags().IntVar(&bits, "bits", identity.DefaultMnemonicBits, "entropy bits: 128, 160, 192, 224 or 256")
	cmd.AddCommand(newCmd)
	return cmd
}
