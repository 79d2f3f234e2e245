// Package client provides Discord client setup and event handling utilities.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"golang.org/x/sync/errgroup"

	"github.com/norio-nomura/transcript_discord_bot/pkg/mapx"
	"github.com/norio-nomura/transcript_discord_bot/pkg/message"
	"github.com/norio-nomura/transcript_discord_bot/pkg/options"
)

// messageEventsHandler handles Discord message events and manages event processing for each message ID.
// Only the latest event of a message is processed; a newer event cancels work on an older one.
type messageEventsHandler struct {
	options *options.Options
	syncMap sync.Map
}

// onMessageCreate handles the MessageCreate event and stores it for processing.
func (q *messageEventsHandler) onMessageCreate(e *events.MessageCreate) {
	if message.ShouldIgnore(e.GenericMessage) {
		return
	}
	q.storeLatestEventForMessageID(e.MessageID, e)
}

// onMessageUpdate handles the MessageUpdate event and stores it for processing.
func (q *messageEventsHandler) onMessageUpdate(e *events.MessageUpdate) {
	if message.ShouldIgnore(e.GenericMessage) {
		return
	}
	q.storeLatestEventForMessageID(e.MessageID, e)
}

// onMessageDelete handles the MessageDelete event and stores it for processing.
// The cached message is empty when it was posted before the bot connected.
func (q *messageEventsHandler) onMessageDelete(e *events.MessageDelete) {
	if e.Message.ID != 0 && message.ShouldIgnore(e.GenericMessage) {
		return
	}
	q.storeLatestEventForMessageID(e.MessageID, e)
}

// storeLatestEventForMessageID stores the latest event for a given message ID in the sync map.
// If the event is newly stored, it starts a goroutine to process events for that message ID.
func (q *messageEventsHandler) storeLatestEventForMessageID(id snowflake.ID, e any) {
	ch := make(chan any, 1)
	ch <- e
	if old, stored := mapx.StoreLatest(&q.syncMap, id, ch); stored {
		go q.processEventsForMessageID(id)
	} else {
		// the goroutine already running for id picks up ch; closing old cancels its current work
		close(old)
	}
}

// contextFromChannel creates a context that is cancelled when the provided channel is closed.
func contextFromChannel[T any](ch chan T) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-ch:
		case <-ctx.Done():
		}
		cancel()
	}()
	return ctx, cancel
}

// processEventsForMessageID processes the latest event for a message ID until no newer one arrives.
func (q *messageEventsHandler) processEventsForMessageID(id snowflake.ID) {
	for {
		ch, err := mapx.Load[snowflake.ID, chan any](&q.syncMap, id)
		if err != nil {
			slog.Error("Failed to load channel from sync map", slog.Any("id", id), slog.Any("err", err))
			return
		}
		e, ok := <-ch
		if !ok {
			// superseded before we got to it, the map already holds the next channel
			continue
		}
		ctx, cancel := contextFromChannel(ch)
		gm, replies, existing, err := q.prepare(ctx, e)
		if err != nil {
			cancel()
			if !errors.Is(err, context.Canceled) {
				slog.Error("Failed to prepare replies", slog.Any("id", id), slog.Any("err", err))
			}
			if q.syncMap.CompareAndDelete(id, ch) {
				return
			}
			continue
		}
		if q.syncMap.CompareAndDelete(id, ch) {
			if err := message.Reconcile(ctx, q.options, gm, replies, existing); err != nil {
				slog.Error("Failed to reconcile replies", slog.Any("id", id), slog.Any("err", err))
			}
			cancel()
			return
		}
		cancel()
	}
}

// prepare computes the replies wanted for e and fetches the replies already posted.
func (q *messageEventsHandler) prepare(ctx context.Context, e any) (*events.GenericMessage, []*message.Reply, []discord.Message, error) {
	var (
		gm       *events.GenericMessage
		replies  []*message.Reply
		existing []discord.Message
	)
	g, gctx := errgroup.WithContext(ctx)
	switch event := e.(type) {
	case *events.MessageCreate:
		gm = event.GenericMessage
		g.Go(func() (err error) {
			replies, err = message.Transcribe(gctx, q.options, gm)
			return
		})
	case *events.MessageUpdate:
		gm = event.GenericMessage
		g.Go(func() (err error) {
			replies, err = message.Transcribe(gctx, q.options, gm)
			return
		})
		g.Go(func() (err error) {
			existing, err = message.GetReplies(gctx, q.options, gm)
			return
		})
	case *events.MessageDelete:
		gm = event.GenericMessage
		g.Go(func() (err error) {
			existing, err = message.GetReplies(gctx, q.options, gm)
			return
		})
	default:
		return nil, nil, nil, fmt.Errorf("unknown event type: %T", event)
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return gm, replies, existing, nil
}
