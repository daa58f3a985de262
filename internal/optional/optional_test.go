package optional

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct {
	Name   string        `json:"name"`
	Number Value[string] `json:"primaryNumber"`
	Team   Value[team]   `json:"currentTeam"`
}

type team struct {
	ID int `json:"id"`
}

func TestUnmarshalPresentMissingAndNull(t *testing.T) {
	var p player
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","primaryNumber":"8","currentTeam":{"id":15}}`), &p))
	num, ok := p.Number.Get()
	assert.True(t, ok)
	assert.Equal(t, "8", num)
	assert.Equal(t, 15, p.Team.OrElse(team{}).ID)

	var missing player
	require.NoError(t, json.Unmarshal([]byte(`{"name":"B"}`), &missing))
	assert.False(t, missing.Number.IsSet())
	assert.False(t, missing.Team.IsSet())

	var null player
	require.NoError(t, json.Unmarshal([]byte(`{"name":"C","primaryNumber":null}`), &null))
	assert.False(t, null.Number.IsSet())
	assert.Equal(t, "--", null.Number.OrElse("--"))
}

func TestUnmarshalTypeMismatchFails(t *testing.T) {
	var p player
	err := json.Unmarshal([]byte(`{"currentTeam":"oops"}`), &p)
	assert.Error(t, err)
}

func TestMapAndMarshal(t *testing.T) {
	n := Map(Some("19"), func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	})
	assert.Equal(t, 19, n.OrElse(0))
	assert.False(t, Map(None[string](), func(s string) int { return 1 }).IsSet())

	out, err := json.Marshal(struct {
		A Value[int] `json:"a"`
		B Value[int] `json:"b"`
	}{A: Some(3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(out))
}
