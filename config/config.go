package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server
	ServerPort string

	// Booking
	CartTTLMinutes     int
	GeneratorDaysAhead int
	// GeneratorSeed seeds the timetable/fare RNG; 0 means time-seeded.
	GeneratorSeed int64
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	config := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "trainpass123"),
		DBName:     getEnv("DB_NAME", "trainbooking"),

		ServerPort: getEnv("SERVER_PORT", "8080"),

		CartTTLMinutes:     getEnvInt("CART_TTL_MINUTES", 15),
		GeneratorDaysAhead: getEnvInt("GENERATOR_DAYS_AHEAD", 7),
		GeneratorSeed:      int64(getEnvInt("GENERATOR_SEED", 0)),
	}

	if config.CartTTLMinutes < 1 {
		log.Printf("WARNING: CART_TTL_MINUTES %d too small, using 15", config.CartTTLMinutes)
		config.CartTTLMinutes = 15
	}
	if config.GeneratorDaysAhead < 1 {
		log.Printf("WARNING: GENERATOR_DAYS_AHEAD %d too small, using 7", config.GeneratorDaysAhead)
		config.GeneratorDaysAhead = 7
	}

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a number, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
