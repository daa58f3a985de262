package statsapi

import (
	"context"
	"fmt"
	"net/url"
)

// GameFeed fetches the full live feed for a game.
func (c *Client) GameFeed(ctx context.Context, id int) (GameFeed, error) {
	var out GameFeed
	if err := c.get(ctx, EndpointGameFeed, fmt.Sprintf("/game/%d/feed/live", id), nil, &out); err != nil {
		return GameFeed{}, err
	}
	return out, nil
}

// GameDiff fetches the feed changes recorded since watermark.
func (c *Client) GameDiff(ctx context.Context, id int, watermark string) ([]DiffContainer, error) {
	var query url.Values
	if watermark != "" {
		query = url.Values{"startTimecode": {watermark}}
	}
	var out []DiffContainer
	if err := c.get(ctx, EndpointGameDiff, fmt.Sprintf("/game/%d/feed/live/diffPatch", id), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
