package viewer

import "time"

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 5 * time.Second
