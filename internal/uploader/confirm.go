package uploader

import (
	"context"
	"errors"
	"time"

	"github.com/tuma-exchange/client-go/internal/gateway"
)

// ErrNotConfirmed is returned when a transaction was not confirmed
// within the wall-clock bound. The upload itself has already been
// submitted; the record may simply not be queryable yet.
var ErrNotConfirmed = errors.New("transaction not confirmed in time")

// WaitForConfirmation polls the gateway until the transaction reports
// at least one confirmation, the timeout elapses, or the context is
// cancelled. Poll errors are tolerated: an unreachable or lagging
// gateway on one poll does not abort the wait.
func WaitForConfirmation(ctx context.Context, gw *gateway.Client, txID string, timeout, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := gw.GetStatus(ctx, txID)
		if err == nil && status.Confirmations > 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrNotConfirmed
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
