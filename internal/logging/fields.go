package logging

import "log/slog"

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldRequestID  = "request_id"
	FieldURL        = "url"
	FieldStatusCode = "status_code"
	FieldAttempt    = "attempt"
	FieldTournament = "tournament"
	FieldDate       = "date"
	FieldSeason     = "season"
	FieldGameID     = "game_id"
	FieldCount      = "count"
	FieldCache      = "cache"
	FieldDurationMS = "duration_ms"
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
