package liiga

import "time"

const (
	defaultHTTPTimeout    = 30 * time.Second
	maxIdleConnsPerHost   = 100
	idleConnTimeout       = 90 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	defaultUserAgent      = "liiga-teletext"
	errorBodyLimit        = 512
	breakerName           = "liiga-api"
	breakerTimeout        = 30 * time.Second
	breakerMaxFailures    = 5
	breakerHalfOpenProbes = 1
	headerRequestID       = "X-Request-ID"
	headerRetryAfter      = "Retry-After"
	scheduleWeek          = 1
)

// Endpoint kinds, used as metrics and log labels.
const (
	EndpointGames    = "games"
	EndpointDetail   = "game_detail"
	EndpointSchedule = "schedule"
)
