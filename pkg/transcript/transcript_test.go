package transcript

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gotest.tools/v3/assert"
)

var (
	alice = discord.User{ID: 1, Username: "alice"}
	bob   = discord.User{ID: 2, Username: "bob"}
	base  = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
)

func msg(id int, author discord.User, at time.Time, text string) discord.Message {
	return discord.Message{
		ID:        snowflake.ID(id),
		Author:    author,
		CreatedAt: at,
		Content:   text,
		Type:      discord.MessageTypeDefault,
	}
}

// newestFirst mirrors the order the Discord API returns history in.
func newestFirst(msgs ...discord.Message) []discord.Message {
	out := make([]discord.Message, len(msgs))
	for i, m := range msgs {
		out[len(msgs)-1-i] = m
	}
	return out
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"author", "DAY", "Kind"} {
		m, err := ParseMode(s)
		assert.NilError(t, err)
		assert.Equal(t, string(m), strings.ToLower(s))
	}
	_, err := ParseMode("channel")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestBuild_Author(t *testing.T) {
	history := newestFirst(
		msg(10, alice, base, "hello"),
		msg(11, alice, base.Add(time.Minute), "anyone\nhere?"),
		msg(12, bob, base.Add(2*time.Minute), "yes"),
		msg(13, alice, base.Add(3*time.Minute), "great"),
	)
	tr, err := Build(history, ModeAuthor, time.UTC)
	assert.NilError(t, err)

	assert.Equal(t, tr.Messages, 4)
	assert.DeepEqual(t, tr.Blocks, []Block{
		{Heading: "**alice** · 2026-10-18 09:30 · 2 messages", Lines: []string{"`09:30` hello", "`09:31` anyone here?"}},
		{Heading: "**bob** · 2026-10-18 09:32 · 1 message", Lines: []string{"`09:32` yes"}},
		{Heading: "**alice** · 2026-10-18 09:33 · 1 message", Lines: []string{"`09:33` great"}},
	})
	assert.DeepEqual(t, tr.Turns, []snowflake.ID{1, 2, 1})
	assert.DeepEqual(t, tr.Participants, []Participant{
		{ID: 1, Name: "alice", Messages: 3, Turns: 2},
		{ID: 2, Name: "bob", Messages: 1, Turns: 1},
	})
}

func TestBuild_Day(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	history := newestFirst(
		msg(1, alice, base, "morning"),
		msg(2, bob, base.Add(time.Hour), "hi"),
		// 2026-10-19 00:10 in JST
		msg(3, bob, time.Date(2026, 10, 18, 15, 10, 0, 0, time.UTC), "late"),
	)
	tr, err := Build(history, ModeDay, tokyo)
	assert.NilError(t, err)
	assert.DeepEqual(t, tr.Blocks, []Block{
		{Heading: "__2026-10-18__ · 2 messages", Lines: []string{"`18:30` **alice**: morning", "`19:30` **bob**: hi"}},
		{Heading: "__2026-10-19__ · 1 message", Lines: []string{"`00:10` **bob**: late"}},
	})
}

func TestBuild_Kind(t *testing.T) {
	reply := msg(3, bob, base, "")
	reply.Type = discord.MessageTypeReply
	reply.Attachments = []discord.Attachment{{Filename: "a.png"}, {Filename: "b.png"}}
	tr, err := Build([]discord.Message{reply, msg(2, alice, base, "x"), msg(1, bob, base, "y")}, ModeKind, nil)
	assert.NilError(t, err)
	assert.Equal(t, len(tr.Blocks), 2)
	assert.Equal(t, tr.Blocks[0].Heading, "**Messages** · 2 messages")
	assert.Equal(t, tr.Blocks[1].Heading, "**Replies** · 1 message")
	assert.DeepEqual(t, tr.Blocks[1].Lines, []string{"`09:30` **bob**: [2 attachments]"})
}

func TestBuild_Empty(t *testing.T) {
	tr, err := Build(nil, ModeAuthor, time.UTC)
	assert.NilError(t, err)
	assert.DeepEqual(t, tr.Blocks, []Block{}, cmpopts.EquateEmpty())
	assert.DeepEqual(t, tr.Participants, []Participant{}, cmpopts.EquateEmpty())
	assert.Equal(t, tr.Markdown(), "No messages to transcribe.")
	assert.DeepEqual(t, tr.Pages(2000), []string{"No messages to transcribe."})
}

func TestBuild_UnknownMode(t *testing.T) {
	_, err := Build(nil, Mode("thread"), time.UTC)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestSummary(t *testing.T) {
	global := "Bobby"
	bobby := bob
	bobby.GlobalName = &global
	tr, err := Build([]discord.Message{msg(1, alice, base, "a"), msg(2, bobby, base, "b")}, ModeAuthor, time.UTC)
	assert.NilError(t, err)
	assert.Equal(t, tr.Summary(), "Transcript of 2 messages by 2 authors, grouped by author.\nTurns: alice → Bobby")
}

func TestPages(t *testing.T) {
	var history []discord.Message
	for i := range 30 {
		author := alice
		if i/5%2 == 1 {
			author = bob
		}
		history = append(history, msg(i+1, author, base, strings.Repeat("word ", i%4+1)))
	}
	tr, err := Build(history, ModeAuthor, time.UTC)
	assert.NilError(t, err)
	assert.Equal(t, len(tr.Blocks), 6)

	const limit = 120
	pages := tr.Pages(limit)
	assert.Assert(t, len(pages) > 1)
	for i, p := range pages {
		assert.Assert(t, utf8.RuneCountInString(p) <= limit, "page %d has %d runes", i, utf8.RuneCountInString(p))
	}
	joined := strings.Join(pages, "\n")
	for _, b := range tr.Blocks {
		assert.Assert(t, strings.Contains(joined, b.Heading))
		for _, l := range b.Lines {
			assert.Assert(t, strings.Contains(joined, l))
		}
	}

	assert.DeepEqual(t, tr.Pages(1_000_000), []string{tr.Markdown()})
}

func TestPages_LongLine(t *testing.T) {
	tr, err := Build([]discord.Message{msg(1, alice, base, strings.Repeat("あ", 50))}, ModeAuthor, time.UTC)
	assert.NilError(t, err)
	pages := tr.Pages(30)
	for _, p := range pages {
		assert.Assert(t, utf8.RuneCountInString(p) <= 30)
	}
	assert.Assert(t, strings.HasSuffix(pages[len(pages)-1], "…"))
}
