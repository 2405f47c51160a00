// Package config loads runtime configuration for the recruitcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (see parseEnv), optionally sourced from a .env file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-t int      request timeout (seconds)
//	-d string   path to the local database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_addr": "http://127.0.0.1:8000",
//	  "request_timeout": "15s",
//	  "database_path": "recruitcli.db"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerAddr, RequestTimeout and DatabasePath
//   - func LoadConfig() *Config       — builds Config by applying defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
