package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds application configuration
type Config struct {
	// Storage
	StoreDriver  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string
	MySQLDSN     string
	DBMaxRetries int
	SeedCatalog  bool

	// Server
	ServerPort  string
	CORSOrigins []string
	MockUserID  string

	// Storefront client
	APIBaseURL        string
	HTTPTimeout       time.Duration
	SessionFile       string
	BookingCloseDelay time.Duration

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		StoreDriver:  getEnv("STORE_DRIVER", DriverMemory),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "rentalpass123"),
		DBName:       getEnv("DB_NAME", "carrental"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),
		MySQLDSN:     getEnv("MYSQL_DSN", "rental:rentalpass@tcp(localhost:3306)/carrental?charset=utf8mb4&parseTime=True&loc=Local"),
		DBMaxRetries: getEnvInt("DB_MAX_RETRIES", 30),
		SeedCatalog:  getEnvBool("SEED_CATALOG", true),

		ServerPort:  getEnv("SERVER_PORT", "8080"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
		MockUserID:  getEnv("MOCK_USER_ID", "1234"),

		APIBaseURL:        getEnv("API_BASE_URL", "http://localhost:8080/api"),
		HTTPTimeout:       getEnvDuration("HTTP_TIMEOUT", 0),
		SessionFile:       getEnv("SESSION_FILE", defaultSessionFile()),
		BookingCloseDelay: getEnvDuration("BOOKING_CLOSE_DELAY", 2*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	switch config.StoreDriver {
	case DriverMemory, DriverPostgres, DriverMySQL:
	default:
		log.Printf("WARNING: Unknown STORE_DRIVER: %s (using memory as fallback)\n", config.StoreDriver)
		config.StoreDriver = DriverMemory
	}

	return config
}

// PostgresDSN returns the lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSSLMode
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".carrental-session.json"
	}
	return filepath.Join(home, ".carrental", "session.json")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
