package watch

import (
	"fmt"
	"time"
)

// GameID is the upstream gamePk.
type GameID int

// Table names one of the watch tables a game can sit in.
type Table int

const (
	Scheduled Table = iota + 1
	Pregame
	InProgress
)

// Tables lists every watch table in lifecycle order.
var Tables = []Table{Scheduled, Pregame, InProgress}

func (t Table) String() string {
	switch t {
	case Scheduled:
		return "SCHEDULED"
	case Pregame:
		return "PREGAME"
	case InProgress:
		return "GAMES_IN_PROGRESS"
	}
	return fmt.Sprintf("Table(%d)", int(t))
}

func (t Table) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Cadences holds the check interval for each table.
type Cadences struct {
	Pregame   time.Duration
	GameStart time.Duration
	Live      time.Duration
}

// DefaultCadences checks scheduled games every 15 minutes, pre-game games
// every minute and live games every 10 seconds.
var DefaultCadences = Cadences{
	Pregame:   15 * time.Minute,
	GameStart: time.Minute,
	Live:      10 * time.Second,
}

// For returns the interval a task in table t runs at.
func (c Cadences) For(t Table) time.Duration {
	switch t {
	case Scheduled:
		return c.Pregame
	case Pregame:
		return c.GameStart
	case InProgress:
		return c.Live
	}
	return 0
}

func (c Cadences) withDefaults() Cadences {
	if c.Pregame <= 0 {
		c.Pregame = DefaultCadences.Pregame
	}
	if c.GameStart <= 0 {
		c.GameStart = DefaultCadences.GameStart
	}
	if c.Live <= 0 {
		c.Live = DefaultCadences.Live
	}
	return c
}
