// Package transcript renders Discord channel history as markdown in which consecutive
// messages sharing an author, a day or a message type are collapsed into one block.
package transcript

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/norio-nomura/transcript_discord_bot/pkg/mapx"
	"github.com/norio-nomura/transcript_discord_bot/pkg/xiter"
)

// Mode selects the key that splits the history into blocks.
type Mode string

const (
	ModeAuthor Mode = "author"
	ModeDay    Mode = "day"
	ModeKind   Mode = "kind"
)

// ErrUnknownMode is returned by ParseMode for anything other than the Mode constants.
var ErrUnknownMode = errors.New("unknown mode")

// ParseMode parses a user supplied mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeAuthor, ModeDay, ModeKind:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Block is one run of consecutive messages.
type Block struct {
	Heading string
	Lines   []string
}

// Participant summarizes one author of the transcript.
type Participant struct {
	ID       snowflake.ID
	Name     string
	Messages int
	// Turns counts how many times the author took over the conversation.
	Turns int
}

// Transcript is the grouped rendering of a list of messages.
type Transcript struct {
	Mode         Mode
	Messages     int
	Blocks       []Block
	Participants []Participant
	Turns        []snowflake.ID
}

// Build groups msgs by mode. Messages are ordered by ID first, since the Discord API
// returns history newest first. loc is used for timestamps.
func Build(msgs []discord.Message, mode Mode, loc *time.Location) (*Transcript, error) {
	if loc == nil {
		loc = time.UTC
	}
	sorted := slices.SortedFunc(slices.Values(msgs), func(m1, m2 discord.Message) int {
		return cmp.Compare(m1.ID, m2.ID)
	})

	var blocks []Block
	var err error
	switch mode {
	case ModeAuthor:
		blocks, err = chunkBlocks(sorted, authorID, func(g *xiter.Group[snowflake.ID, discord.Message]) Block {
			first := g.Values()[0]
			return Block{
				Heading: fmt.Sprintf("**%s** · %s · %s", displayName(first.Author), first.CreatedAt.In(loc).Format("2006-01-02 15:04"), plural(g.Len(), "message")),
				Lines:   slices.Collect(xiter.Map(g.All(), timedLine(loc))),
			}
		})
	case ModeDay:
		blocks, err = chunkBlocks(sorted, day(loc), func(g *xiter.Group[string, discord.Message]) Block {
			return Block{
				Heading: fmt.Sprintf("__%s__ · %s", g.Key(), plural(g.Len(), "message")),
				Lines:   slices.Collect(xiter.Map(g.All(), namedLine(loc))),
			}
		})
	case ModeKind:
		blocks, err = chunkBlocks(sorted, kind, func(g *xiter.Group[discord.MessageType, discord.Message]) Block {
			return Block{
				Heading: fmt.Sprintf("**%s** · %s", kindName(g.Key()), plural(g.Len(), "message")),
				Lines:   slices.Collect(xiter.Map(g.All(), namedLine(loc))),
			}
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		return nil, err
	}

	t := &Transcript{
		Mode:     mode,
		Messages: len(sorted),
		Blocks:   blocks,
		Turns:    slices.Collect(xiter.CompactFunc(slices.Values(sorted), authorID)),
	}
	t.Participants = participants(sorted, t.Turns)
	return t, nil
}

func chunkBlocks[K comparable](msgs []discord.Message, keyFn func(discord.Message) K, block func(*xiter.Group[K, discord.Message]) Block) ([]Block, error) {
	chunks, err := xiter.ChunkGroupBy(slices.Values(msgs), keyFn)
	if err != nil {
		return nil, fmt.Errorf("failed to group messages: %w", err)
	}
	return slices.Collect(xiter.Map(chunks.All(), block)), nil
}

// participants lists authors in order of their first message.
func participants(msgs []discord.Message, turns []snowflake.ID) []Participant {
	byID := make(map[snowflake.ID]*Participant)
	var order []snowflake.ID
	for _, m := range msgs {
		p := mapx.GetOrAddFunc(byID, m.Author.ID, func() *Participant {
			order = append(order, m.Author.ID)
			return &Participant{ID: m.Author.ID, Name: displayName(m.Author)}
		})
		p.Messages++
	}
	for _, id := range turns {
		byID[id].Turns++
	}
	result := make([]Participant, 0, len(order))
	for _, id := range order {
		result = append(result, *byID[id])
	}
	return result
}

func authorID(m discord.Message) snowflake.ID {
	return m.Author.ID
}

func day(loc *time.Location) func(discord.Message) string {
	return func(m discord.Message) string {
		return m.CreatedAt.In(loc).Format(time.DateOnly)
	}
}

func kind(m discord.Message) discord.MessageType {
	return m.Type
}

func kindName(t discord.MessageType) string {
	switch t {
	case discord.MessageTypeDefault:
		return "Messages"
	case discord.MessageTypeReply:
		return "Replies"
	default:
		return fmt.Sprintf("Type %d", t)
	}
}

func displayName(u discord.User) string {
	if u.GlobalName != nil && *u.GlobalName != "" {
		return *u.GlobalName
	}
	return u.Username
}

func timedLine(loc *time.Location) func(discord.Message) string {
	return func(m discord.Message) string {
		return fmt.Sprintf("`%s` %s", m.CreatedAt.In(loc).Format("15:04"), content(m))
	}
}

func namedLine(loc *time.Location) func(discord.Message) string {
	return func(m discord.Message) string {
		return fmt.Sprintf("`%s` **%s**: %s", m.CreatedAt.In(loc).Format("15:04"), displayName(m.Author), content(m))
	}
}

// content flattens a message body to a single line.
func content(m discord.Message) string {
	text := strings.Join(strings.Fields(m.Content), " ")
	if n := len(m.Attachments); n > 0 {
		text = strings.TrimSpace(text + " " + fmt.Sprintf("[%s]", plural(n, "attachment")))
	}
	if text == "" {
		return "[no content]"
	}
	return text
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
