package statsapi

import (
	"bytes"
	"fmt"
	"strconv"
)

// CodedState is the upstream codedGameState. The API sends it as a string
// but older payloads carry a bare number, so both decode.
type CodedState int

const (
	StateUnknown     CodedState = 0
	StatePreview     CodedState = 1
	StatePregame     CodedState = 2
	StateInProgress  CodedState = 3
	StateCritical    CodedState = 4
	StateGameOver    CodedState = 5
	StateAlmostFinal CodedState = 6
	StateFinal       CodedState = 7
	StatePreviewTBD  CodedState = 8
	StatePostponed   CodedState = 9
)

var stateNames = map[CodedState]string{
	StatePreview:     "preview",
	StatePregame:     "pre-game",
	StateInProgress:  "in-progress",
	StateCritical:    "in-progress-critical",
	StateGameOver:    "game-over",
	StateAlmostFinal: "almost-final",
	StateFinal:       "final",
	StatePreviewTBD:  "preview-tbd",
	StatePostponed:   "postponed",
}

func (s CodedState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(s)) + ")"
}

// IsLive reports whether the game is being played.
func (s CodedState) IsLive() bool {
	switch s {
	case StateInProgress, StateCritical:
		return true
	}
	return false
}

// IsTerminal reports whether the game has finished.
func (s CodedState) IsTerminal() bool {
	switch s {
	case StateGameOver, StateAlmostFinal, StateFinal:
		return true
	}
	return false
}

func (s *CodedState) UnmarshalJSON(data []byte) error {
	raw := bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*s = StateUnknown
		return nil
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return fmt.Errorf("codedGameState %q: %w", raw, err)
	}
	*s = CodedState(n)
	return nil
}

func (s CodedState) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.Itoa(int(s)))), nil
}
