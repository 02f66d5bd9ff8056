package notify

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Dispatcher delivers notices in the background so callers never wait on the mail server.
// Each delivery gets its own deadline; Wait drains pending deliveries on shutdown.
type Dispatcher struct {
	sender  Sender
	timeout time.Duration

	wg      sync.WaitGroup
	pending atomic.Int64
}

func NewDispatcher(sender Sender, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		timeout: timeout,
	}
}

// Dispatch queues one best-effort delivery. ctx only carries the request logger;
// its cancellation does not stop the delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, to, subject, body string) {
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	d.pending.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.pending.Add(-1)

		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		defer cancel()
		SendBestEffort(sendCtx, d.sender, to, subject, body)
	}()
}

// Pending returns the number of deliveries still in flight
func (d *Dispatcher) Pending() int64 {
	return d.pending.Load()
}

// Wait blocks until every queued delivery finished or ctx ends
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
