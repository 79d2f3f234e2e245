package message

import (
	"bytes"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/norio-nomura/transcript_discord_bot/pkg/transcript"
)

// contentMax is the Discord limit on message content, in runes.
const contentMax = 2000

// Reply is the content of one message the bot sends in answer to a request.
type Reply struct {
	Content     string
	Attachments []Attachment
}

// Attachment is a file uploaded with a Reply.
type Attachment struct {
	Name string
	Data []byte
}

// files creates fresh readers so a Reply can be sent more than once.
func (r *Reply) files() []*discord.File {
	files := make([]*discord.File, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		files = append(files, &discord.File{
			Name:   a.Name,
			Reader: bytes.NewReader(a.Data),
		})
	}
	return files
}

// repliesFromTranscript pages t into at most maxPages replies.
// When it does not fit, the last reply carries the full transcript as a markdown file.
func repliesFromTranscript(t *transcript.Transcript, maxPages int) []*Reply {
	maxPages = max(maxPages, 1)
	pages := t.Pages(contentMax)
	if len(pages) <= maxPages {
		replies := make([]*Reply, 0, len(pages))
		for _, p := range pages {
			replies = append(replies, &Reply{Content: p})
		}
		return replies
	}
	kept := pages[:maxPages-1]
	replies := make([]*Reply, 0, maxPages)
	for _, p := range kept {
		replies = append(replies, &Reply{Content: p})
	}
	return append(replies, &Reply{
		Content: fmt.Sprintf("%d more pages omitted, the full transcript is attached.", len(pages)-len(kept)),
		Attachments: []Attachment{{
			Name: "transcript.md",
			Data: []byte(t.Markdown()),
		}},
	})
}

// usageReply explains how to ask for a transcript.
func usageReply(err error) *Reply {
	const tripleBackticks = "```"
	return &Reply{
		Content: err.Error() + "\n" + tripleBackticks + `
Usage:
@bot [count] [author|day|kind]

count  number of messages to look back (at most 100)
author group consecutive messages by author (default)
day    group consecutive messages by day
kind   group consecutive messages by message type
` + tripleBackticks,
	}
}
