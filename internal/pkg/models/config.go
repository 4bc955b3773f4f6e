package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	Logger   LoggerConfig
	Sim      SimConfig
	Mesh     MeshConfig
	Routing  RoutingConfig
	Match    MatchConfig
	Dispatch DispatchConfig
	Demand   DemandConfig
	Events   EventsConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains the snapshot HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains NSQ producer configuration
type NSQConfig struct {
	Address string
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// SimConfig contains the clock and fleet settings of a run
type SimConfig struct {
	StartTime         int64   `json:"start_time"`          // unix seconds
	Timestep          int64   `json:"timestep"`            // seconds per tick
	Steps             int     `json:"steps"`               // ticks to run
	NumVehicles       int     `json:"num_vehicles"`        // vehicles populated at start
	Seed              int64   `json:"seed"`                // random source seed
	IdleDurationLimit int64   `json:"idle_duration_limit"` // seconds idle before a forced rest may happen
	RestProbability   float64 `json:"rest_probability"`    // per-tick chance of a forced rest
	RestDuration      int64   `json:"rest_duration"`       // seconds
}

// MeshConfig contains the grid used to bin coordinates into cells
type MeshConfig struct {
	CenterLatitude  float64 `json:"center_latitude"`
	CenterLongitude float64 `json:"center_longitude"`
	LatWidth        float64 `json:"lat_width"` // degrees
	LonWidth        float64 `json:"lon_width"` // degrees
	DeltaLat        float64 `json:"delta_lat"` // degrees per cell
	DeltaLon        float64 `json:"delta_lon"` // degrees per cell
}

// RoutingConfig contains routing engine configuration
type RoutingConfig struct {
	Engine      string  `json:"engine"` // "fast" or "osrm"
	OSRMURL     string  `json:"osrm_url"`
	Threads     int     `json:"threads"`
	HTTPTimeout int     `json:"http_timeout"` // seconds
	DataDir     string  `json:"data_dir"`
	MaxMove     int     `json:"max_move"`     // cells
	RefSpeed    float64 `json:"ref_speed"`    // m/s used when no reference distance exists
	MaxDistance float64 `json:"max_distance"` // meters beyond which an ETA is unreachable
	CacheSize   int     `json:"cache_size"`
}

// MatchConfig contains matching policy configuration
type MatchConfig struct {
	Policy          string  `json:"policy"`           // "greedy" or "rough"
	RejectDistance  float64 `json:"reject_distance"`  // meters
	RejectWaitTime  float64 `json:"reject_wait_time"` // seconds
	K               int     `json:"k"`                // cells per bucket side
	UnitLength      float64 `json:"unit_length"`      // meters per cell side
	MaxLocations    int     `json:"max_locations"`    // max requests per ETA query
	CandidateFactor int     `json:"candidate_factor"` // ring search stops above factor x requests
}

// DispatchConfig contains dispatch policy configuration
type DispatchConfig struct {
	Policy             string  `json:"policy"`               // "random" or "none"
	MinUpdateCycle     int64   `json:"min_update_cycle"`     // seconds
	MinDispatchCycle   int64   `json:"min_dispatch_cycle"`   // seconds idle before off duty is considered
	OffDutyProbability float64 `json:"offduty_probability"`
}

// DemandConfig contains demand generator configuration
type DemandConfig struct {
	Table string `json:"table"`
}

// EventsConfig contains event sink configuration
type EventsConfig struct {
	Sink             string `json:"sink"` // "log", "nats", "nsq" or comma separated
	GeohashPrecision uint   `json:"geohash_precision"`
}
