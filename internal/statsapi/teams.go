package statsapi

import (
	"context"
	"fmt"
	"net/url"
)

// Teams lists every active franchise.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var env teamsEnvelope
	if err := c.get(ctx, EndpointTeams, "/teams", nil, &env); err != nil {
		return nil, err
	}
	return env.Teams, nil
}

// Team fetches one team, optionally with its current roster expanded.
func (c *Client) Team(ctx context.Context, id int, expandRoster bool) (Team, error) {
	var query url.Values
	if expandRoster {
		query = url.Values{"expand": {"team.roster"}}
	}
	var env teamsEnvelope
	if err := c.get(ctx, EndpointTeam, fmt.Sprintf("/teams/%d", id), query, &env); err != nil {
		return Team{}, err
	}
	if len(env.Teams) == 0 {
		return Team{}, ErrNotFound
	}
	return env.Teams[0], nil
}

// TeamStats fetches the team's season stats and league rankings.
func (c *Client) TeamStats(ctx context.Context, id int) ([]StatGroup, error) {
	var env statsEnvelope
	if err := c.get(ctx, EndpointTeamStats, fmt.Sprintf("/teams/%d/stats", id), nil, &env); err != nil {
		return nil, err
	}
	return env.Stats, nil
}
