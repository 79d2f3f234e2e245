package message

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/norio-nomura/transcript_discord_bot/pkg/options"
	"github.com/norio-nomura/transcript_discord_bot/pkg/transcript"
)

// ErrInvalidRequest is returned by ParseRequest for arguments it does not understand.
var ErrInvalidRequest = errors.New("invalid request")

var mentionPattern = regexp.MustCompile(`<@!?\d+>`)

// Request is what a user asked for: how many messages to look back and how to group them.
type Request struct {
	Limit int
	Mode  transcript.Mode
}

// ParseRequest reads "[count] [mode]" from the line of content that mentions botID,
// or from the first line if the bot is not mentioned (direct messages).
func ParseRequest(o *options.Options, content string, botID snowflake.ID) (Request, error) {
	req := Request{Limit: o.HistoryLimit(0), Mode: transcript.ModeAuthor}
	if mode, err := transcript.ParseMode(o.DefaultMode); err == nil {
		req.Mode = mode
	}
	for _, arg := range strings.Fields(argumentLine(content, botID)) {
		if n, err := strconv.Atoi(arg); err == nil {
			if n <= 0 {
				return Request{}, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, n)
			}
			req.Limit = o.HistoryLimit(n)
			continue
		}
		mode, err := transcript.ParseMode(arg)
		if err != nil {
			return Request{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		req.Mode = mode
	}
	return req, nil
}

// argumentLine returns the text following the first mention of botID on its line,
// with any other mentions removed.
func argumentLine(content string, botID snowflake.ID) string {
	mentionLinePattern := regexp.MustCompile(`<@!?` + botID.String() + `>(.*)`)
	line, _, _ := strings.Cut(content, "\n")
	if match := mentionLinePattern.FindStringSubmatch(content); match != nil {
		line = match[1]
	}
	return mentionPattern.ReplaceAllString(line, " ")
}
