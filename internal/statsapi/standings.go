package statsapi

import (
	"context"
	"net/url"
)

// Standings fetches the default (by division) regular season standings.
func (c *Client) Standings(ctx context.Context) (Standings, error) {
	var out Standings
	if err := c.get(ctx, EndpointStandings, "/standings", nil, &out); err != nil {
		return Standings{}, err
	}
	return out, nil
}

// CustomStandings fetches a named standings variant.
func (c *Client) CustomStandings(ctx context.Context, kind StandingsType) (Standings, error) {
	if kind == "" {
		return c.Standings(ctx)
	}
	var out Standings
	if err := c.get(ctx, EndpointCustomStandings, "/standings/"+url.PathEscape(string(kind)), nil, &out); err != nil {
		return Standings{}, err
	}
	return out, nil
}
