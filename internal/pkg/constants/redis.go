package constants

import "time"

// Redis key formats
const (
	// Routing
	KeyRouteCache = "routing:route:%d:%d:%d:%d" // Format: routing:route:{x}:{y}:{dx}:{dy}
)

// RouteCacheTTL bounds how long a persisted route survives between runs
const RouteCacheTTL = 7 * 24 * time.Hour
