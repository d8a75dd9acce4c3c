package cmd

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	tuma "github.com/tuma-exchange/client-go"
)

var (
	sendRecipient   string
	sendDescription string
	sendChargeID    string
	sendContentType string
	sendNoWait      bool
)

var sendCmd = &cobra.Command{
	Use:   "send <file>",
	Short: "Encrypt a file and upload it to the storage network",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendRecipient, "to", "t", "", "Recipient identity")
	sendCmd.Flags().StringVarP(&sendDescription, "description", "d", "", "Optional document description")
	sendCmd.Flags().StringVar(&sendChargeID, "charge-id", "", "Payment charge gating recipient access (optional)")
	sendCmd.Flags().StringVar(&sendContentType, "content-type", "", "MIME type (default: detected from the file)")
	sendCmd.Flags().BoolVar(&sendNoWait, "no-wait", false, "Return immediately after upload instead of waiting for confirmation")
	sendCmd.MarkFlagRequired("to")
}

func runSend(cmd *cobra.Command, args []string) error {
	sender, err := requireIdentity()
	if err != nil {
		return err
	}

	path := args[0]
	plaintext, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	contentType := sendContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(path))
	}
	if contentType == "" {
		contentType = http.DetectContentType(plaintext)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if !client.CanSend() {
		return fmt.Errorf("sending requires a storage credential; pass --credential or run: tuma keygen")
	}

	req := tuma.SendRequest{
		FileName:    filepath.Base(path),
		ContentType: contentType,
		Sender:      sender,
		Recipient:   sendRecipient,
		Description: sendDescription,
		ChargeID:    sendChargeID,
	}

	opts := []tuma.SendOption{
		tuma.WithProgress(func(pct float64) {
			fmt.Fprintf(os.Stderr, "\ruploading... %3.0f%%", pct)
			if pct >= 100 {
				fmt.Fprintln(os.Stderr)
			}
		}),
	}
	if sendNoWait {
		opts = append(opts, tuma.WithoutConfirmationWait())
	}

	result, err := client.Send(context.Background(), plaintext, req, opts...)
	if errors.Is(err, tuma.ErrConfirmationTimeout) {
		// The upload itself succeeded; the document just is not mined yet.
		fmt.Printf("uploaded %s (confirmation pending, check later with: tuma status %s)\n",
			result.ContentID, result.ContentID)
		return nil
	}
	if err != nil {
		return err
	}

	if result.Confirmed {
		fmt.Printf("sent %s (confirmed)\n", result.ContentID)
	} else {
		fmt.Printf("sent %s\n", result.ContentID)
	}
	return nil
}
