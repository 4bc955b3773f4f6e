package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/piresc/fleetsim/internal/pkg/models"
)

// InitConfig loads the dotenv file in local environments and reads the
// configuration from environment variables
func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "fleetsim")
	configs.App.Environment = GetEnv("APP_ENV", "")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 10)

	// Database config
	configs.Database.Driver = GetEnv("DB_DRIVER", "")
	configs.Database.Host = GetEnv("DB_HOST", "")
	configs.Database.Port = GetEnvAsInt("DB_PORT", 0)
	configs.Database.Username = GetEnv("DB_USERNAME", "")
	configs.Database.Password = GetEnv("DB_PASSWORD", "")
	configs.Database.Database = GetEnv("DB_DATABASE", "")
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.IdleConns = GetEnvAsInt("DB_IDLE_CONNS", 0)

	// Redis config
	configs.Redis.Enabled = GetEnvAsBool("REDIS_ENABLED", false)
	configs.Redis.Host = GetEnv("REDIS_HOST", "")
	configs.Redis.Port = GetEnvAsInt("REDIS_PORT", 0)
	configs.Redis.Password = GetEnv("REDIS_PASSWORD", "")
	configs.Redis.DB = GetEnvAsInt("REDIS_DB", 0)
	configs.Redis.PoolSize = GetEnvAsInt("REDIS_POOL_SIZE", 0)

	// NATS config
	configs.NATS.URL = GetEnv("NATS_URL", "")

	// NSQ config
	configs.NSQ.Address = GetEnv("NSQ_ADDRESS", "")

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	// Simulation config
	configs.Sim.StartTime = GetEnvAsInt64("SIM_START_TIME", 1464753600) // 2016-06-01T04:00:00Z
	configs.Sim.Timestep = GetEnvAsInt64("SIM_TIMESTEP", 60)
	configs.Sim.Steps = GetEnvAsInt("SIM_STEPS", 1440)
	configs.Sim.NumVehicles = GetEnvAsInt("SIM_NUM_VEHICLES", 1000)
	configs.Sim.Seed = GetEnvAsInt64("SIM_SEED", 1)
	configs.Sim.IdleDurationLimit = GetEnvAsInt64("SIM_IDLE_DURATION_LIMIT", 10800)
	configs.Sim.RestProbability = GetEnvAsFloat("SIM_REST_PROBABILITY", 0.01)
	configs.Sim.RestDuration = GetEnvAsInt64("SIM_REST_DURATION", 3600)

	// Mesh config
	configs.Mesh.CenterLatitude = GetEnvAsFloat("MESH_CENTER_LATITUDE", 40.75)
	configs.Mesh.CenterLongitude = GetEnvAsFloat("MESH_CENTER_LONGITUDE", -73.90)
	configs.Mesh.LatWidth = GetEnvAsFloat("MESH_LAT_WIDTH", 18.0/60)
	configs.Mesh.LonWidth = GetEnvAsFloat("MESH_LON_WIDTH", 18.0/60)
	configs.Mesh.DeltaLat = GetEnvAsFloat("MESH_DELTA_LAT", 16.0/3600)
	configs.Mesh.DeltaLon = GetEnvAsFloat("MESH_DELTA_LON", 21.0/3600)

	// Routing config
	configs.Routing.Engine = GetEnv("ROUTING_ENGINE", "fast")
	configs.Routing.OSRMURL = GetEnv("ROUTING_OSRM_URL", "http://localhost:5000")
	configs.Routing.Threads = GetEnvAsInt("ROUTING_THREADS", 8)
	configs.Routing.HTTPTimeout = GetEnvAsInt("ROUTING_HTTP_TIMEOUT", 30)
	configs.Routing.DataDir = GetEnv("ROUTING_DATA_DIR", "data")
	configs.Routing.MaxMove = GetEnvAsInt("ROUTING_MAX_MOVE", 7)
	configs.Routing.RefSpeed = GetEnvAsFloat("ROUTING_REF_SPEED", 5.0)
	configs.Routing.MaxDistance = GetEnvAsFloat("ROUTING_MAX_DISTANCE", 5000)
	configs.Routing.CacheSize = GetEnvAsInt("ROUTING_CACHE_SIZE", 100000)

	// Match config
	configs.Match.Policy = GetEnv("MATCH_POLICY", "greedy")
	configs.Match.RejectDistance = GetEnvAsFloat("MATCH_REJECT_DISTANCE", 5000)
	configs.Match.RejectWaitTime = GetEnvAsFloat("MATCH_REJECT_WAIT_TIME", 15*60)
	configs.Match.K = GetEnvAsInt("MATCH_K", 3)
	configs.Match.UnitLength = GetEnvAsFloat("MATCH_UNIT_LENGTH", 500)
	configs.Match.MaxLocations = GetEnvAsInt("MATCH_MAX_LOCATIONS", 40)
	configs.Match.CandidateFactor = GetEnvAsInt("MATCH_CANDIDATE_FACTOR", 2)

	// Dispatch config
	configs.Dispatch.Policy = GetEnv("DISPATCH_POLICY", "random")
	configs.Dispatch.MinUpdateCycle = GetEnvAsInt64("DISPATCH_MIN_UPDATE_CYCLE", 600)
	configs.Dispatch.MinDispatchCycle = GetEnvAsInt64("DISPATCH_MIN_DISPATCH_CYCLE", 450)
	configs.Dispatch.OffDutyProbability = GetEnvAsFloat("DISPATCH_OFFDUTY_PROBABILITY", 0.05)

	// Demand config
	configs.Demand.Table = GetEnv("DEMAND_TABLE", "request_backlog")

	// Events config
	configs.Events.Sink = GetEnv("EVENTS_SINK", "log")
	configs.Events.GeohashPrecision = uint(GetEnvAsInt("EVENTS_GEOHASH_PRECISION", 7))

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid int64 value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
