package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch <content-id>",
	Short: "Retrieve, verify and decrypt a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Write plaintext to this file (default: original document name)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	caller, err := requireIdentity()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	doc, err := client.Open(context.Background(), args[0], caller)
	if err != nil {
		return err
	}

	out := fetchOutput
	if out == "" {
		out = doc.Metadata.Name
	}
	if out == "" {
		out = doc.ContentID
	}

	if err := os.WriteFile(out, doc.Plaintext, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	if doc.LegacyUnverified {
		fmt.Fprintln(os.Stderr, "warning: document carries no integrity tag, ciphertext was not verified")
	}
	fmt.Printf("wrote %d bytes to %s\n", len(doc.Plaintext), out)
	return nil
}
