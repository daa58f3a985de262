package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrEndpoint = "endpoint"
	AttrTable    = "table"
	AttrFrom     = "from"
	AttrTo       = "to"
	AttrCommand  = "command"
	AttrSink     = "sink"
)
