package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/preston-bernstein/nhl-discord-bot/internal/statsapi"
	"github.com/preston-bernstein/nhl-discord-bot/internal/testutil"
	"github.com/preston-bernstein/nhl-discord-bot/internal/watch"
)

func TestTeamFilter(t *testing.T) {
	home := testutil.SampleGame(1, 15, 6, statsapi.StatePreview)
	away := testutil.SampleGame(2, 10, 15, statsapi.StatePreview)
	other := testutil.SampleGame(3, 10, 6, statsapi.StatePreview)

	f := watch.TeamFilter(15)
	assert.True(t, f(home))
	assert.True(t, f(away))
	assert.False(t, f(other))

	all := watch.TeamFilter()
	assert.True(t, all(other))
	assert.True(t, watch.AllGames(other))
}
