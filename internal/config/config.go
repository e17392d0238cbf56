package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Geometry
	EarthRadiusM = 6371000.0 // Mean Earth radius in meters

	// Signal to distance estimation
	MeasuredPower = -59.0 // RSSI at 1 meter (dBm)
	PathLossExp   = 2.5   // Path loss exponent (N)

	// Map display
	MapRange      = 400.0 // Default map range in meters
	MapRangeMin   = 50.0
	MapRangeMax   = 2000.0
	AspectRatio   = 0.5 // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4   // Number of concentric rings
	SweepSpeedRPM = 20  // Sweep rotations per minute
	SweepTrailDeg = 45.0
	TargetFPS     = 15

	// Course
	HoleCount      = 18
	HoleFlagOffset = 0.002 // Mock flag offset from the player in degrees (lat and lon)

	// Tracking
	ScanDelay          = 3 * time.Second  // Mock discovery delay
	BLEScanWindow      = 8 * time.Second  // How long a real scan listens
	StaleAfter         = 60 * time.Second // Ball telemetry considered stale after this
	TelemetryInterval  = 2 * time.Second  // Demo telemetry tick
	SignalHistory      = 60               // Samples kept per ball
	ConnectJitterDeg   = 0.01             // Synthetic position spread around the player
	TrackerNamePrefix  = "Golf"           // Local-name marker for ball trackers
	TrackerCompanyID   = 0xFFFF           // Manufacturer data company ID carrying battery level
	StatusMessageTTL   = 4 * time.Second
	DefaultStoragePath = "jacktrack.db"

	// App
	AppName    = "JACKTRACK"
	AppVersion = "1.0.0"
)

// Default player position used when no location provider is configured.
const (
	DefaultHomeLat = 37.7749
	DefaultHomeLon = -122.4194
)

// Config holds runtime settings resolved from the environment.
type Config struct {
	DBPath   string
	LogLevel string
	LogFile  string
	HomeLat  float64
	HomeLon  float64
	Addr     string
}

// Load reads .env (if present) and the JACKTRACK_* variables.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:   getEnv("JACKTRACK_DB", DefaultStoragePath),
		LogLevel: getEnv("JACKTRACK_LOG_LEVEL", "info"),
		LogFile:  getEnv("JACKTRACK_LOG_FILE", "jacktrack.log"),
		HomeLat:  getEnvFloat("JACKTRACK_HOME_LAT", DefaultHomeLat),
		HomeLon:  getEnvFloat("JACKTRACK_HOME_LON", DefaultHomeLon),
		Addr:     getEnv("JACKTRACK_ADDR", ":8080"),
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
