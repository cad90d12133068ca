package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP            string // Host IP for the server
	RESTPort          int    // Port for the REST API
	GinMode           string // Mode for the Gin framework (e.g., release, debug, test)
	JWTSecret         string // Secret key for signing session tokens
	JWTIssuer         string // Issuer claim for session tokens
	RedisAddr         string // Address of the Redis server used for session locks, empty for in-process locks
	SessionTTLMinutes int    // Idle minutes before a session is evicted
	MaxBoardSize      int    // Largest board size accepted by the API
}

// Envs holds the configuration loaded by the last successful call to Load.
var Envs Config

// Load reads the configuration from the environment.
// Values from a .env file are used when the file exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("%s[INFO]%s .env file not found or could not be loaded: %v", LogInfoColor, LogColorReset, err)
	}

	var (
		c   Config
		err error
	)

	c.HostIP = getEnvWithDefault("HOST_IP", "0.0.0.0")
	c.GinMode = getEnvWithDefault("GIN_MODE", "release")
	c.JWTIssuer = getEnvWithDefault("JWT_ISSUER", "minesweeper")
	c.RedisAddr = getEnvWithDefault("REDIS_ADDR", "")

	if c.JWTSecret, err = mustGetEnv("JWT_SECRET"); err != nil {
		return Config{}, err
	}
	if c.RESTPort, err = getEnvAsIntWithDefault("REST_PORT", 8080); err != nil {
		return Config{}, err
	}
	if c.SessionTTLMinutes, err = getEnvAsIntWithDefault("SESSION_TTL_MINUTES", 30); err != nil {
		return Config{}, err
	}
	if c.MaxBoardSize, err = getEnvAsIntWithDefault("MAX_BOARD_SIZE", 50); err != nil {
		return Config{}, err
	}

	Envs = c
	return c, nil
}

// mustGetEnv retrieves the value of an environment variable or returns an error if not set.
func mustGetEnv(key string) (string, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return "", fmt.Errorf("environment variable %s is not set", key)
	}
	return value, nil
}

// getEnvAsIntWithDefault retrieves an integer environment variable or returns a default value if not set.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
