package sheets

import (
	"fmt"
	"time"

	"github.com/bookroll/bookroll/pkg/constants"
	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/logging"
)

// retrySheet wraps a Sheet so that throttled reads are retried with
// exponential backoff. Only the rate-limit class of failure is retried;
// anything else propagates immediately. Writes are never retried: the
// store has no transactions, so a blind write retry could double-append.
type retrySheet struct {
	inner    Sheet
	attempts int
	backoff  time.Duration
	cap      time.Duration
	sleep    func(time.Duration)
}

// WithRetry decorates a sheet with the standard bounded read retry.
func WithRetry(inner Sheet) Sheet {
	return &retrySheet{
		inner:    inner,
		attempts: constants.MaxReadAttempts,
		backoff:  constants.RetryBackoff,
		cap:      constants.MaxRetryBackoff,
		sleep:    time.Sleep,
	}
}

func (r *retrySheet) Name() string { return r.inner.Name() }

func (r *retrySheet) ReadAll() ([][]string, error) {
	delay := r.backoff
	var lastErr error

	for attempt := 1; attempt <= r.attempts; attempt++ {
		rows, err := r.inner.ReadAll()
		if err == nil {
			return rows, nil
		}
		if !errors.IsRateLimited(err) {
			return nil, err
		}
		lastErr = err

		if attempt < r.attempts {
			logging.Warn().
				Str("sheet", r.inner.Name()).
				Int("attempt", attempt).
				Dur("backoff", delay).
				Msg("Sheet read throttled, backing off")
			r.sleep(delay)
			delay *= 2
			if delay > r.cap {
				delay = r.cap
			}
		}
	}

	return nil, fmt.Errorf("read_all of %s after %d attempts (%v): %w",
		r.inner.Name(), r.attempts, lastErr, errors.ErrServiceBusy)
}

func (r *retrySheet) AppendRow(values []string) error {
	return r.inner.AppendRow(values)
}

func (r *retrySheet) UpdateRow(index int, values []string) error {
	return r.inner.UpdateRow(index, values)
}

func (r *retrySheet) DeleteRow(index int) error {
	return r.inner.DeleteRow(index)
}
