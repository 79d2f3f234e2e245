package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/disgoorg/snowflake/v2"
)

// maxTurnsInSummary bounds the "Turns:" line of the summary.
const maxTurnsInSummary = 12

// Summary returns the header printed above the blocks.
func (t *Transcript) Summary() string {
	if t.Messages == 0 {
		return "No messages to transcribe."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Transcript of %s by %s, grouped by %s.", plural(t.Messages, "message"), plural(len(t.Participants), "author"), t.Mode)
	if len(t.Turns) > 1 {
		names := make(map[snowflake.ID]string, len(t.Participants))
		for _, p := range t.Participants {
			names[p.ID] = p.Name
		}
		turns := make([]string, 0, min(len(t.Turns), maxTurnsInSummary))
		for _, id := range t.Turns[:min(len(t.Turns), maxTurnsInSummary)] {
			turns = append(turns, names[id])
		}
		if len(t.Turns) > maxTurnsInSummary {
			turns = append(turns, "…")
		}
		sb.WriteString("\nTurns: " + strings.Join(turns, " → "))
	}
	return sb.String()
}

// Markdown renders the whole transcript.
func (t *Transcript) Markdown() string {
	return strings.Join(t.units(), "\n\n")
}

// units are the summary followed by one string per block. Pages never split a unit
// unless it is longer than a page by itself.
func (t *Transcript) units() []string {
	units := make([]string, 0, len(t.Blocks)+1)
	units = append(units, t.Summary())
	for _, b := range t.Blocks {
		units = append(units, b.Heading+"\n"+strings.Join(b.Lines, "\n"))
	}
	return units
}

// Pages splits the markdown rendering into pages of at most maxRunes runes.
func (t *Transcript) Pages(maxRunes int) []string {
	maxRunes = max(maxRunes, 2)
	var pages []string
	var page strings.Builder
	pageRunes := 0
	flush := func() {
		if pageRunes > 0 {
			pages = append(pages, page.String())
			page.Reset()
			pageRunes = 0
		}
	}
	for _, unit := range t.units() {
		n := utf8.RuneCountInString(unit)
		sep := 0
		if pageRunes > 0 {
			sep = 2
		}
		if pageRunes+sep+n <= maxRunes {
			if sep > 0 {
				page.WriteString("\n\n")
			}
			page.WriteString(unit)
			pageRunes += sep + n
			continue
		}
		flush()
		if n <= maxRunes {
			page.WriteString(unit)
			pageRunes = n
			continue
		}
		pages = append(pages, packLines(strings.Split(unit, "\n"), maxRunes)...)
	}
	flush()
	return pages
}

// packLines joins lines with newlines into chunks of at most maxRunes runes,
// truncating any line that does not fit on its own.
func packLines(lines []string, maxRunes int) []string {
	var chunks []string
	var chunk []string
	runes := 0
	for _, line := range lines {
		line = truncate(line, maxRunes)
		n := utf8.RuneCountInString(line)
		if len(chunk) > 0 && runes+1+n > maxRunes {
			chunks = append(chunks, strings.Join(chunk, "\n"))
			chunk, runes = nil, 0
		}
		if len(chunk) > 0 {
			runes++
		}
		chunk = append(chunk, line)
		runes += n
	}
	if len(chunk) > 0 {
		chunks = append(chunks, strings.Join(chunk, "\n"))
	}
	return chunks
}

func truncate(s string, maxRunes int) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes-1]) + "…"
}
