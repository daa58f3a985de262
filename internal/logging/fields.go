package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldEndpoint   = "endpoint"
	FieldGameID     = "game_id"
	FieldTable      = "table"
	FieldFrom       = "from"
	FieldTo         = "to"
	FieldState      = "coded_state"
	FieldWatermark  = "watermark"
	FieldCommand    = "command"
	FieldChannelID  = "channel_id"
	FieldSink       = "sink"
	FieldError      = "error"
)

// WithCommon appends service/version fields when provided.
func WithCommon(attrs []slog.Attr, service, version string) []slog.Attr {
	if service != "" {
		attrs = append(attrs, slog.String(FieldService, service))
	}
	if version != "" {
		attrs = append(attrs, slog.String(FieldVersion, version))
	}
	return attrs
}
