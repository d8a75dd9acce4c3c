package tuma

import (
	"context"
	"strings"

	"github.com/tuma-exchange/client-go/internal/gateway"
)

// ListSent returns the documents uploaded with the given identity as
// sender, newest-first as reported by the network.
func (c *Client) ListSent(ctx context.Context, identity string) ([]StoredDocument, error) {
	return c.listByTag(ctx, tagSender, identity)
}

// ListReceived returns the documents addressed to the given identity.
func (c *Client) ListReceived(ctx context.Context, identity string) ([]StoredDocument, error) {
	return c.listByTag(ctx, tagRecipient, identity)
}

// listByTag queries the gateways for records of this application
// carrying the identity under the given participant tag. Gateways are
// tried in order; the first successful response wins.
func (c *Client) listByTag(ctx context.Context, tagName, identity string) ([]StoredDocument, error) {
	if identity == "" {
		return nil, ErrMissingIdentity
	}

	filters := []gateway.TagFilter{
		{Name: tagAppName, Values: []string{AppName}},
		{Name: tagName, Values: []string{strings.ToLower(identity)}},
	}

	var lastErr error
	for _, gw := range c.gateways {
		edges, err := gw.QueryTransactions(ctx, filters, c.cfg.listLimit)
		if err != nil {
			c.logger.WithField("gateway", gw.Host()).
				WithError(err).Debug("gateway query failed")
			lastErr = err
			continue
		}

		docs := make([]StoredDocument, 0, len(edges))
		for _, edge := range edges {
			docs = append(docs, StoredDocument{
				ContentID: edge.ID,
				Metadata:  metadataFromTags(edge.Tags),
			})
		}
		return docs, nil
	}

	return nil, &RetrievalError{Gateways: c.Gateways(), Err: lastErr}
}
