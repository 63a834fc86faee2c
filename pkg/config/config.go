package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	TokenTTL                time.Duration
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	RedisAddr               string
	RedisPassword           string
	MediaBackend            string
	MediaDir                string
	SnapshotInterval        time.Duration
	SeedDemo                bool
	LogLevel                string
	LogPath                 string
}

const (
	MediaBackendLocal  = "local"
	MediaBackendGridFS = "gridfs"
)

// Load reads the configuration from the environment, after loading .env
// if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only
func FromEnv() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8000"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		TokenTTL:                time.Duration(getEnvInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "nightwalker"),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		MediaBackend:            getEnv("MEDIA_BACKEND", MediaBackendLocal),
		MediaDir:                getEnv("MEDIA_DIR", "static"),
		SnapshotInterval:        getEnvDuration("SNAPSHOT_INTERVAL", 5*time.Minute),
		SeedDemo:                getEnvBool("SEED_DEMO", false),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogPath:                 getEnv("LOG_PATH", ""),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// Zero disables the periodic snapshot
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v >= 0 {
		return v
	}
	return defaultValue
}
