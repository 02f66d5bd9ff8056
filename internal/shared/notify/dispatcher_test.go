package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gateSender blocks every send until release is closed or the send deadline passes
type gateSender struct {
	release  chan struct{}
	deadline chan bool
}

func (g *gateSender) Send(ctx context.Context, _, _, _ string) error {
	_, ok := ctx.Deadline()
	g.deadline <- ok
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestDispatcher_DoesNotBlockCaller(t *testing.T) {
	// Given: A sender that never answers on its own
	sender := &gateSender{release: make(chan struct{}), deadline: make(chan bool, 1)}
	d := NewDispatcher(sender, time.Minute)

	// When
	d.Dispatch(context.Background(), "reader@example.com", "Book Borrowed", "body")

	// Then: The call returned while delivery is still pending, with a bounded deadline
	assert.True(t, <-sender.deadline)
	assert.Equal(t, int64(1), d.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Wait(ctx), context.DeadlineExceeded)

	close(sender.release)
	require.NoError(t, d.Wait(context.Background()))
	assert.Zero(t, d.Pending())
}

func TestDispatcher_CanceledRequestStillDelivers(t *testing.T) {
	sender := &failingSender{}
	d := NewDispatcher(sender, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, "reader@example.com", "Book Returned", "body")

	require.NoError(t, d.Wait(context.Background()))
	assert.Equal(t, 1, sender.calls)
}

func TestDispatcher_TimeoutEndsDelivery(t *testing.T) {
	sender := &gateSender{release: make(chan struct{}), deadline: make(chan bool, 1)}
	d := NewDispatcher(sender, 20*time.Millisecond)

	d.Dispatch(context.Background(), "reader@example.com", "Book Borrowed", "body")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Wait(ctx))
	assert.Zero(t, d.Pending())
}
