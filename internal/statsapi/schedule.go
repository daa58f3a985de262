package statsapi

import (
	"context"
	"net/url"
	"strconv"
)

// ScheduleQuery selects a single date or a date range, optionally one team.
// Dates are YYYY-MM-DD; an empty query asks for the upstream's today.
type ScheduleQuery struct {
	Date      string
	StartDate string
	EndDate   string
	TeamID    int
	Expand    []string
}

func (q ScheduleQuery) values() url.Values {
	v := url.Values{}
	switch {
	case q.StartDate != "" && q.EndDate != "":
		v.Set("startDate", q.StartDate)
		v.Set("endDate", q.EndDate)
	case q.Date != "":
		v.Set("date", q.Date)
	}
	if q.TeamID > 0 {
		v.Set("teamId", strconv.Itoa(q.TeamID))
	}
	for _, e := range q.Expand {
		v.Add("expand", e)
	}
	return v
}

// Schedule fetches the games for a date or range.
func (c *Client) Schedule(ctx context.Context, q ScheduleQuery) (Schedule, error) {
	var out Schedule
	if err := c.get(ctx, EndpointSchedule, "/schedule", q.values(), &out); err != nil {
		return Schedule{}, err
	}
	return out, nil
}
