// Package message provides utilities for parsing transcript requests and replying to Discord messages.
package message

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/norio-nomura/transcript_discord_bot/pkg/options"
	"github.com/norio-nomura/transcript_discord_bot/pkg/transcript"
	"github.com/norio-nomura/transcript_discord_bot/pkg/xiter"
)

// --- Public API ---

// ChannelType returns the channel type for the given message.
func ChannelType(ctx context.Context, e *events.GenericMessage) (discord.ChannelType, error) {
	ch, err := e.Client().Rest().GetChannel(e.ChannelID, rest.WithCtx(ctx))
	if err != nil {
		var zero discord.ChannelType
		return zero, fmt.Errorf("failed to get channel type: %w", err)
	}
	return ch.Type(), nil
}

// Transcribe answers a message that asks the bot for a transcript.
// It returns no replies if the message is not addressed to the bot.
func Transcribe(ctx context.Context, o *options.Options, e *events.GenericMessage) ([]*Reply, error) {
	if ShouldIgnore(e) || !o.IsChannelAllowed(e.ChannelID) {
		return nil, nil
	}
	restCtx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()

	channelType, err := ChannelType(restCtx, e)
	if err != nil {
		return nil, err
	}
	switch channelType {
	case discord.ChannelTypeGuildText, discord.ChannelTypeGuildPublicThread, discord.ChannelTypeGuildPrivateThread:
		if !mentioning(e, e.Client().ID()) {
			return nil, nil
		}
	case discord.ChannelTypeDM:
	default:
		return nil, nil
	}

	req, err := ParseRequest(o, e.Message.Content, e.Client().ID())
	if err != nil {
		return []*Reply{usageReply(err)}, nil
	}
	_ = e.Client().Rest().SendTyping(e.ChannelID, rest.WithCtx(restCtx))

	history, err := FetchHistory(ctx, o, e, req.Limit)
	if err != nil {
		return nil, err
	}
	t, err := transcript.Build(history, req.Mode, o.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to build transcript: %w", err)
	}
	slog.Info("transcribe", slog.Any("message.id", e.MessageID), slog.Int("messages", t.Messages), slog.Int("blocks", len(t.Blocks)), slog.String("mode", string(req.Mode)))
	return repliesFromTranscript(t, o.ReplyPages()), nil
}

// FetchHistory returns up to limit messages posted before e, excluding the bot's own.
func FetchHistory(ctx context.Context, o *options.Options, e *events.GenericMessage, limit int) ([]discord.Message, error) {
	ctx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()
	messages, err := e.Client().Rest().GetMessages(e.ChannelID, 0, e.MessageID, 0, limit, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get history of channel %s: %w", e.ChannelID, err)
	}
	botID := e.Client().ID()
	return slices.Collect(xiter.Filter(slices.Values(messages), func(m discord.Message) bool {
		return m.Author.ID != botID
	})), nil
}

// GetReplies returns the bot's replies to e, oldest first.
func GetReplies(ctx context.Context, o *options.Options, e *events.GenericMessage) ([]discord.Message, error) {
	ctx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()
	messages, err := e.Client().Rest().GetMessages(e.ChannelID, 0, 0, e.MessageID, 0, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get messages in channel %s: %w", e.ChannelID, err)
	}
	return repliesTo(messages, e.Client().ID(), e.MessageID), nil
}

// Reconcile makes the bot's replies to e match replies: existing replies are updated in order,
// missing ones are sent and surplus ones deleted.
func Reconcile(ctx context.Context, o *options.Options, e *events.GenericMessage, replies []*Reply, existing []discord.Message) error {
	for z := range xiter.ZipLongest(slices.Values(replies), slices.Values(existing)) {
		switch {
		case z.OK1 && z.OK2:
			if _, err := UpdateMessage(ctx, o, e, z.V2, z.V1); err != nil {
				return fmt.Errorf("failed to update reply %s: %w", z.V2.ID, err)
			}
		case z.OK1:
			if _, err := SendReply(ctx, o, e, z.V1); err != nil {
				return fmt.Errorf("failed to send reply: %w", err)
			}
		default:
			if err := DeleteMessage(ctx, o, e, z.V2.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// SendReply sends r as a reply to e.
func SendReply(ctx context.Context, o *options.Options, e *events.GenericMessage, r *Reply) (*discord.Message, error) {
	reply := discord.NewMessageCreateBuilder().
		SetContent(r.Content).
		SetFiles(r.files()...).
		SetMessageReferenceByID(e.MessageID).
		Build()
	ctx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()
	return e.Client().Rest().CreateMessage(e.ChannelID, reply, rest.WithCtx(ctx))
}

// UpdateMessage replaces the content and files of the reply m with r.
func UpdateMessage(ctx context.Context, o *options.Options, e *events.GenericMessage, m discord.Message, r *Reply) (*discord.Message, error) {
	msg := discord.NewMessageUpdateBuilder().SetContent(r.Content).SetFiles(r.files()...).RetainAttachments().Build()
	ctx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()
	return e.Client().Rest().UpdateMessage(m.ChannelID, m.ID, msg, rest.WithCtx(ctx))
}

// DeleteMessage deletes the specified message in the channel of e.
func DeleteMessage(ctx context.Context, o *options.Options, e *events.GenericMessage, id snowflake.ID) error {
	ctx, cancel := o.ContextWithRestTimeout(ctx)
	defer cancel()
	if err := e.Client().Rest().DeleteMessage(e.ChannelID, id, rest.WithCtx(ctx)); err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}
	return nil
}

// ShouldIgnore returns true if the message should be ignored (e.g., from a bot or unsupported type).
func ShouldIgnore(e *events.GenericMessage) bool {
	switch e.Message.Type {
	case discord.MessageTypeDefault, discord.MessageTypeReply:
		return e.Message.Author.Bot
	default:
		return true
	}
}

// --- Private helpers ---

// repliesTo picks the bot's replies to messageID out of messages, oldest first.
func repliesTo(messages []discord.Message, botID, messageID snowflake.ID) []discord.Message {
	replies := xiter.Filter(slices.Values(messages), func(m discord.Message) bool {
		return m.Author.ID == botID &&
			m.Type == discord.MessageTypeReply &&
			m.MessageReference != nil &&
			m.MessageReference.MessageID != nil &&
			*m.MessageReference.MessageID == messageID
	})
	return slices.SortedFunc(replies, func(m1, m2 discord.Message) int {
		return cmp.Compare(m1.ID, m2.ID)
	})
}

// mentioning returns true if the specified user ID is mentioned in the message.
func mentioning(e *events.GenericMessage, userID snowflake.ID) bool {
	return slices.ContainsFunc(e.Message.Mentions, func(m discord.User) bool { return m.ID == userID })
}
