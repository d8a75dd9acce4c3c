package tuma

import (
	"context"
	"errors"

	"github.com/tuma-exchange/client-go/internal/gateway"
)

// ConfirmationStatus is the network's view of an uploaded document.
type ConfirmationStatus struct {
	Confirmed     bool
	BlockHeight   int64
	Confirmations int
}

// Status asks the gateways whether a document has been accepted into a
// block. A document the network knows about but has not yet mined
// yields Confirmed false without error.
func (c *Client) Status(ctx context.Context, contentID string) (*ConfirmationStatus, error) {
	var lastErr error
	for _, gw := range c.gateways {
		st, err := gw.GetStatus(ctx, contentID)
		if errors.Is(err, gateway.ErrPendingConfirmation) {
			return &ConfirmationStatus{}, nil
		}
		if err != nil {
			c.logger.WithField("gateway", gw.Host()).
				WithError(err).Debug("gateway status check failed")
			lastErr = err
			continue
		}
		return &ConfirmationStatus{
			Confirmed:     true,
			BlockHeight:   st.BlockHeight,
			Confirmations: st.Confirmations,
		}, nil
	}
	return nil, &RetrievalError{ContentID: contentID, Gateways: c.Gateways(), Err: lastErr}
}
