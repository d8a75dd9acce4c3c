package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	tuma "github.com/tuma-exchange/client-go"
)

var sentCmd = &cobra.Command{
	Use:   "sent",
	Short: "List documents sent by the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(func(ctx context.Context, client *tuma.Client, id string) ([]tuma.StoredDocument, error) {
			return client.ListSent(ctx, id)
		})
	},
}

var receivedCmd = &cobra.Command{
	Use:   "received",
	Short: "List documents addressed to the current identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(func(ctx context.Context, client *tuma.Client, id string) ([]tuma.StoredDocument, error) {
			return client.ListReceived(ctx, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(sentCmd)
	rootCmd.AddCommand(receivedCmd)
}

func runList(list func(context.Context, *tuma.Client, string) ([]tuma.StoredDocument, error)) error {
	id, err := requireIdentity()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	docs, err := list(context.Background(), client, id)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Println("no documents")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTENT ID\tNAME\tSIZE\tFROM\tTO\tCREATED")
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			d.ContentID,
			d.Metadata.Name,
			d.Metadata.Size,
			d.Metadata.Sender,
			d.Metadata.Recipient,
			d.Metadata.CreatedAt().Format("2006-01-02 15:04"),
		)
	}
	return w.Flush()
}
