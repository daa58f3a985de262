package embeds

import (
	"github.com/bwmarrin/discordgo"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

type statKey struct {
	key   string
	label string
}

var teamStatKeys = []statKey{
	{"gamesPlayed", "GP"},
	{"wins", "W"},
	{"losses", "L"},
	{"ot", "OT"},
	{"pts", "PTS"},
	{"ptPctg", "PT%"},
	{"goalsPerGame", "GF/GP"},
	{"goalsAgainstPerGame", "GA/GP"},
	{"powerPlayPercentage", "PP%"},
	{"penaltyKillPercentage", "PK%"},
	{"shotsPerGame", "S/GP"},
	{"faceOffWinPercentage", "FO%"},
}

var skaterStatKeys = []statKey{
	{"games", "GP"},
	{"goals", "G"},
	{"assists", "A"},
	{"points", "P"},
	{"plusMinus", "+/-"},
	{"pim", "PIM"},
	{"shots", "S"},
	{"shotPct", "S%"},
	{"powerPlayGoals", "PPG"},
	{"gameWinningGoals", "GWG"},
	{"timeOnIcePerGame", "TOI/GP"},
}

var goalieStatKeys = []statKey{
	{"games", "GP"},
	{"gamesStarted", "GS"},
	{"wins", "W"},
	{"losses", "L"},
	{"ot", "OT"},
	{"goalAgainstAverage", "GAA"},
	{"savePercentage", "SV%"},
	{"shutouts", "SO"},
}

// firstSplit returns the first split of the group named displayName, or of
// the first group when displayName is empty.
func firstSplit(groups []statsapi.StatGroup, displayName string) (statsapi.StatSplit, bool) {
	for _, g := range groups {
		if displayName != "" && g.Type.DisplayName != displayName {
			continue
		}
		if len(g.Splits) > 0 {
			return g.Splits[0], true
		}
	}
	return statsapi.StatSplit{}, false
}

func statFields(line statsapi.StatLine, keys []statKey) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField
	for _, k := range keys {
		if v, ok := line.Lookup(k.key); ok {
			fields = append(fields, field(k.label, v, true))
		}
	}
	return fields
}
