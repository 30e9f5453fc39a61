package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Bunny      BunnyConfig
	Attendance AttendanceConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

// BunnyConfig locates the storage zone holding clock-in and enrollment photos
type BunnyConfig struct {
	StorageZone string
	AccessKey   string
	BaseURL     string
}

type AttendanceConfig struct {
	LockTimeout           time.Duration // max wait for the per-subject lock
	ConfigCacheTTL        time.Duration
	ActivityRetentionDays int
	// Create barbers/users/branches tables on startup (local development only)
	MigrateIdentityTables bool
}

type RateLimitConfig struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

type LogConfig struct {
	Dir string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists (optional for production)
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Barbershop Attendance"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "barbershop_attendance"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Bunny: BunnyConfig{
			StorageZone: getEnv("BUNNY_STORAGE_ZONE", ""),
			AccessKey:   getEnv("BUNNY_ACCESS_KEY", ""),
			BaseURL:     getEnv("BUNNY_BASE_URL", "https://storage.bunnycdn.com"),
		},
		Attendance: AttendanceConfig{
			LockTimeout:           time.Duration(getEnvInt("ATTENDANCE_LOCK_TIMEOUT_SECONDS", 5)) * time.Second,
			ConfigCacheTTL:        time.Duration(getEnvInt("ATTENDANCE_CONFIG_CACHE_SECONDS", 60)) * time.Second,
			ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 90),
			MigrateIdentityTables: getEnvBool("DB_MIGRATE_IDENTITY_TABLES", false),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			Max:     getEnvInt("RATE_LIMIT_MAX", 120),
			Window:  time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Log: LogConfig{
			Dir: getEnv("LOG_DIR", "logs"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
