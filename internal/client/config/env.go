package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables. A .env
// file in the working directory, when present, is loaded first; variables
// already set in the process environment win over the file.
//
// Supported variables:
//
//	RECRUIT_SERVER_ADDR       base URL of the backend server
//	RECRUIT_REQUEST_TIMEOUT   request timeout in seconds
//	RECRUIT_DATABASE_PATH     path to the local database file
//
// Unset or empty variables leave the corresponding field untouched. A
// non-numeric timeout value is ignored.
func parseEnv(cfg *Config) {
	// godotenv never overrides existing process variables.
	_ = godotenv.Load()

	if v := os.Getenv("RECRUIT_SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("RECRUIT_REQUEST_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("RECRUIT_DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
}
