package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <content-id>",
	Short: "Check whether an uploaded document has been confirmed",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	st, err := client.Status(context.Background(), args[0])
	if err != nil {
		return err
	}

	if !st.Confirmed {
		fmt.Println("pending")
		return nil
	}
	fmt.Printf("confirmed: block %d, %d confirmations\n", st.BlockHeight, st.Confirmations)
	return nil
}
