package client

import (
	"context"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestContextFromChannel(t *testing.T) {
	t.Run("closing the channel cancels", func(t *testing.T) {
		ch := make(chan any)
		ctx, cancel := contextFromChannel(ch)
		defer cancel()
		assert.NilError(t, ctx.Err())
		close(ch)
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context was not cancelled")
		}
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("cancel releases the watcher", func(t *testing.T) {
		ch := make(chan any)
		ctx, cancel := contextFromChannel(ch)
		cancel()
		<-ctx.Done()
		// the channel may now be closed by the next event without anyone listening
		close(ch)
	})
}

func TestPrepare_UnknownEvent(t *testing.T) {
	q := &messageEventsHandler{}
	_, _, _, err := q.prepare(context.Background(), "not an event")
	assert.ErrorContains(t, err, "unknown event type: string")
}
