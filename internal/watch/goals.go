package watch

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	opAdd     = "add"
	opReplace = "replace"

	pathTimeStamp = "/metaData/timeStamp"
)

// Goal is a scoring play picked out of a diff payload.
type Goal struct {
	Path string        `json:"path"`
	Play statsapi.Play `json:"play"`
}

// ExtractGoals flattens the containers in order and keeps the entries that
// add a goal play. The result is empty (not nil) when nothing matched.
func ExtractGoals(containers []statsapi.DiffContainer) []Goal {
	goals := make([]Goal, 0)
	for _, c := range containers {
		for _, entry := range c.Diff {
			if !strings.EqualFold(entry.Op, opAdd) {
				continue
			}
			play, ok := decodePlay(entry.Value)
			if !ok || !play.IsGoal() {
				continue
			}
			goals = append(goals, Goal{Path: entry.Path, Play: play})
		}
	}
	return goals
}

// decodePlay accepts only JSON objects; scalar values added by a patch
// (timestamps, counters) are never plays.
func decodePlay(raw []byte) (statsapi.Play, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "{") {
		return statsapi.Play{}, false
	}
	var play statsapi.Play
	if err := json.Unmarshal([]byte(trimmed), &play); err != nil {
		return statsapi.Play{}, false
	}
	return play, true
}

// DiffWatermark returns the newest /metaData/timeStamp a diff payload
// replaces, or "" when it carries none. Timecodes are fixed-width
// yyyyMMdd_HHmmss, so they order as strings.
func DiffWatermark(containers []statsapi.DiffContainer) string {
	newest := ""
	for _, c := range containers {
		for _, entry := range c.Diff {
			if entry.Path != pathTimeStamp || !strings.EqualFold(entry.Op, opReplace) {
				continue
			}
			var ts string
			if err := json.Unmarshal(entry.Value, &ts); err != nil {
				continue
			}
			if ts > newest {
				newest = ts
			}
		}
	}
	return newest
}
