package statsapi

import (
	"context"
	"fmt"
	"net/url"
)

const statsSingleSeason = "statsSingleSeason"

// Person fetches a player's biography.
func (c *Client) Person(ctx context.Context, id int) (Person, error) {
	var env peopleEnvelope
	if err := c.get(ctx, EndpointPerson, fmt.Sprintf("/people/%d", id), nil, &env); err != nil {
		return Person{}, err
	}
	if len(env.People) == 0 {
		return Person{}, ErrNotFound
	}
	return env.People[0], nil
}

// PlayerStats fetches a player's single-season stats. An empty season asks
// for the current one.
func (c *Client) PlayerStats(ctx context.Context, id int, season string) ([]StatGroup, error) {
	query := url.Values{"stats": {statsSingleSeason}}
	if season != "" {
		query.Set("season", season)
	}
	var env statsEnvelope
	if err := c.get(ctx, EndpointPlayerStats, fmt.Sprintf("/people/%d/stats", id), query, &env); err != nil {
		return nil, err
	}
	return env.Stats, nil
}
