package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	AppURI         string
	AllowedOrigins string
	JWTSecret      string

	StorageDriver string
	MongoURI      string
	MongoDB       string
	PostgresDSN   string
	SQLitePath    string
	RedisURI      string

	Location      *time.Location
	LateThreshold time.Duration

	SweepInterval string
	SweepWorkers  int
	SweepLockTTL  time.Duration
	RunWorker     bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_URI", "8888")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("JWT_SECRET", "your_secret_key") // fallback for development
	v.SetDefault("STORAGE_DRIVER", DriverMongo)
	v.SetDefault("MONGO_DB", "AttendanceDB")
	v.SetDefault("SQLITE_PATH", "attendance.db")
	v.SetDefault("TIMEZONE", "Asia/Manila")
	v.SetDefault("LATE_THRESHOLD", "10m")
	v.SetDefault("SWEEP_INTERVAL", "@every 5m")
	v.SetDefault("SWEEP_WORKERS", 4)
	v.SetDefault("SWEEP_LOCK_TTL", "2m")
	v.SetDefault("RUN_WORKER", true)
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE: %w", err)
	}

	late, err := time.ParseDuration(v.GetString("LATE_THRESHOLD"))
	if err != nil || late < 0 {
		return nil, fmt.Errorf("config: invalid LATE_THRESHOLD %q", v.GetString("LATE_THRESHOLD"))
	}

	lockTTL, err := time.ParseDuration(v.GetString("SWEEP_LOCK_TTL"))
	if err != nil || lockTTL <= 0 {
		return nil, fmt.Errorf("config: invalid SWEEP_LOCK_TTL %q", v.GetString("SWEEP_LOCK_TTL"))
	}

	workers := v.GetInt("SWEEP_WORKERS")
	if workers <= 0 {
		return nil, fmt.Errorf("config: SWEEP_WORKERS must be positive, got %d", workers)
	}

	driver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	switch driver {
	case DriverMongo, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return nil, fmt.Errorf("config: unknown STORAGE_DRIVER %q", driver)
	}

	cfg := &Config{
		AppURI:         v.GetString("APP_URI"),
		AllowedOrigins: v.GetString("ALLOWED_ORIGINS"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		StorageDriver:  driver,
		MongoURI:       v.GetString("MONGO_URI"),
		MongoDB:        v.GetString("MONGO_DB"),
		PostgresDSN:    v.GetString("POSTGRES_DSN"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		RedisURI:       v.GetString("REDIS_URI"),
		Location:       loc,
		LateThreshold:  late,
		SweepInterval:  v.GetString("SWEEP_INTERVAL"),
		SweepWorkers:   workers,
		SweepLockTTL:   lockTTL,
		RunWorker:      v.GetBool("RUN_WORKER"),
	}

	if cfg.StorageDriver == DriverMongo && cfg.MongoURI == "" {
		return nil, fmt.Errorf("config: MONGO_URI environment variable not set")
	}
	if cfg.StorageDriver == DriverPostgres && cfg.PostgresDSN == "" {
		return nil, fmt.Errorf("config: POSTGRES_DSN environment variable not set")
	}
	return cfg, nil
}

// NewDefaults returns a viper instance with every default applied and nothing read
// from the environment.
func NewDefaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}
