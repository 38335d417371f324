package transport

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Retry decorates a Doer with exponential-backoff retries for transient
// failures (network errors and 5xx statuses). Client errors and anything
// that is not a transport failure pass through immediately.
//
// The adapter itself never retries; wire a Retry in front of the base
// Client only where at-least-once delivery toward the provider is
// acceptable for the operations being made.
type Retry struct {
	next            Doer
	maxTries        uint
	initialInterval time.Duration
}

// NewRetry wraps next with up to maxTries attempts per call.
func NewRetry(next Doer, maxTries uint) *Retry {
	return &Retry{
		next:            next,
		maxTries:        maxTries,
		initialInterval: 500 * time.Millisecond,
	}
}

// Do delegates to the wrapped Doer, retrying transient failures until the
// attempt budget or the context runs out.
func (r *Retry) Do(ctx context.Context, req *Request) (*Response, error) {
	operation := func() (*Response, error) {
		resp, err := r.next.Do(ctx, req)
		if err != nil {
			var te *Error
			if errors.As(err, &te) && !te.Transient() {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return resp, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.initialInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(r.maxTries),
	)
}
