package watch

import "github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"

// Filter decides which of the day's games get watched.
type Filter func(statsapi.ScheduleGame) bool

// AllGames accepts every game.
func AllGames(statsapi.ScheduleGame) bool { return true }

// TeamFilter accepts games where any of ids plays home or away. With no ids
// it accepts everything.
func TeamFilter(ids ...int) Filter {
	if len(ids) == 0 {
		return AllGames
	}
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return func(g statsapi.ScheduleGame) bool {
		_, home := set[g.Teams.Home.Team.ID]
		_, away := set[g.Teams.Away.Team.ID]
		return home || away
	}
}
