// Package embeds turns stats API records into chat display payloads.
package embeds

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const (
	colorLeague = 0x041e42
	colorLive   = 0xc8102e
	colorGoal   = 0xffb81c

	// Discord rejects embeds over these limits, counted in characters.
	maxFields     = 25
	maxFieldValue = 1024
	maxTitle      = 256
	maxEmbedChars = 6000
	missing       = "--"
	ellipsis      = "..."
	continued     = " (cont.)"
)

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	if strings.TrimSpace(value) == "" {
		value = missing
	}
	return &discordgo.MessageEmbedField{Name: name, Value: truncate(value, maxFieldValue), Inline: inline}
}

// truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// splitField spreads a line-oriented value over as many fields as it needs.
// Lines are never split; later fields carry the name with a continuation
// marker.
func splitField(name, value string) []*discordgo.MessageEmbedField {
	var (
		fields []*discordgo.MessageEmbedField
		chunk  strings.Builder
		size   int
	)
	flush := func() {
		if size == 0 {
			return
		}
		n := name
		if len(fields) > 0 {
			n = name + continued
		}
		fields = append(fields, field(n, chunk.String(), false))
		chunk.Reset()
		size = 0
	}
	for _, line := range strings.SplitAfter(value, "\n") {
		if line == "" {
			continue
		}
		n := utf8.RuneCountInString(line)
		if size+n > maxFieldValue {
			flush()
		}
		chunk.WriteString(line)
		size += n
	}
	flush()
	if len(fields) == 0 {
		return []*discordgo.MessageEmbedField{field(name, value, false)}
	}
	return fields
}

// capFields keeps the leading fields that fit both the field count limit and
// the embed character budget left after a full-length title.
func capFields(fields []*discordgo.MessageEmbedField) []*discordgo.MessageEmbedField {
	budget := maxEmbedChars - maxTitle
	for i, f := range fields {
		budget -= utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
		if i == maxFields || budget < 0 {
			return fields[:i]
		}
	}
	return fields
}
