package client

import (
	"context"
	"log/slog"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/rest"

	"github.com/norio-nomura/transcript_discord_bot/pkg/options"
)

// onReady sets the bot's presence and makes its nickname match the options in every joined guild.
func onReady(o *options.Options, e *events.Ready) {
	nickname, playing := o.Discord()
	ctx, cancel := o.ContextWithRestTimeout(context.Background())
	defer cancel()
	if err := e.Client().SetPresence(ctx, gateway.WithPlayingActivity(playing)); err != nil {
		slog.Error("Failed to set presence", slog.Any("err", err))
	} else {
		slog.Info("`ready`: changed status to", slog.String("playing", playing), slog.Int("guilds", len(e.Guilds)))
	}
	for _, g := range e.Guilds {
		member, err := e.Client().Rest().GetMember(g.ID, e.User.ID, rest.WithCtx(ctx))
		if err != nil {
			slog.Error("Failed to get member", slog.Any("guild.id", g.ID), slog.Any("err", err))
			continue
		}
		if member.Nick != nil && *member.Nick == nickname {
			continue
		}
		// UpdateCurrentMember() fails to unmarshal its response, so the route is called directly.
		err = e.Client().Rest().Do(rest.UpdateCurrentMember.Compile(nil, g.ID), discord.CurrentMemberUpdate{Nick: nickname}, nil, rest.WithCtx(ctx))
		if err != nil {
			slog.Error("Failed to update member nickname", slog.Any("guild.id", g.ID), slog.Any("err", err))
			continue
		}
		slog.Info("Updated member nickname", slog.Any("guild.id", g.ID), slog.String("nickname", nickname))
	}
}
