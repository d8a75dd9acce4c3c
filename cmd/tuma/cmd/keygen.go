package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tuma "github.com/tuma-exchange/client-go"
)

var keygenOutput string

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new storage credential key file",
	Args:  cobra.NoArgs,
	RunE:  runKeygen,
}

func init() {
	rootCmd.AddCommand(keygenCmd)

	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "tuma-key.json", "Where to write the key file")
}

func runKeygen(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(keygenOutput); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", keygenOutput)
	}

	data, err := tuma.GenerateCredential()
	if err != nil {
		return err
	}
	if err := os.WriteFile(keygenOutput, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", keygenOutput, err)
	}

	client, err := tuma.New(tuma.WithCredentialJSON(data))
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\nstorage address: %s\n", keygenOutput, client.StorageAddress())
	return nil
}
