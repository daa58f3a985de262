// Package lookup resolves free-text chat queries to teams and roster entries.
package lookup

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
)

// FindTeam matches query against, in order: team id, abbreviation, team
// name, location, short name and full name (case-insensitive), and finally
// a substring of the full name when exactly one team contains it.
func FindTeam(teams []statsapi.Team, query string) (statsapi.Team, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return statsapi.Team{}, false
	}
	if id, err := strconv.Atoi(q); err == nil {
		for _, t := range teams {
			if t.ID == id {
				return t, true
			}
		}
	}

	exact := []func(statsapi.Team) string{
		func(t statsapi.Team) string { return t.Abbreviation },
		func(t statsapi.Team) string { return t.TeamName },
		func(t statsapi.Team) string { return t.LocationName },
		func(t statsapi.Team) string { return t.ShortName },
		func(t statsapi.Team) string { return t.Name },
	}
	for _, key := range exact {
		for _, t := range teams {
			if strings.EqualFold(key(t), q) {
				return t, true
			}
		}
	}

	lower := strings.ToLower(q)
	var match statsapi.Team
	found := 0
	for _, t := range teams {
		if strings.Contains(strings.ToLower(t.Name), lower) {
			match = t
			found++
		}
	}
	return match, found == 1
}

// FindPlayer matches query against a roster by jersey number (an optional
// leading '#' is ignored), full name, or the second whitespace token of the
// full name. Names whose surname is not the second token (single names,
// multi-word surnames, "Jr." suffixes after a middle name) only match by
// full name or number.
func FindPlayer(roster []statsapi.RosterEntry, query string) (statsapi.RosterEntry, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return statsapi.RosterEntry{}, false
	}
	if num := strings.TrimPrefix(q, "#"); isDigits(num) {
		for _, e := range roster {
			if jersey, ok := e.JerseyNumber.Get(); ok && jersey == num {
				return e, true
			}
		}
		return statsapi.RosterEntry{}, false
	}
	for _, e := range roster {
		if strings.EqualFold(e.Person.Name, q) {
			return e, true
		}
	}
	for _, e := range roster {
		tokens := strings.Fields(e.Person.Name)
		if len(tokens) >= 2 && strings.EqualFold(tokens[1], q) {
			return e, true
		}
	}
	return statsapi.RosterEntry{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
