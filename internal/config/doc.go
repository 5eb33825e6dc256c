// Package config loads runtime configuration for the Fortress CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database holding the persisted session
//	-k string   secret used to sign session tokens
//	-t int      session lifetime in seconds (0 disables expiry)
//	-w int      simulated authentication latency in milliseconds
//	-u string   YAML file with seed users (embedded demo accounts otherwise)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations go through timex.Duration, so they can be strings like "1s" or
// integer nanoseconds:
//
//	{
//	  "database_path": "fortress.db",
//	  "session_namespace": "fortress.v1",
//	  "session_secret": "change-me",
//	  "session_ttl": "24h",
//	  "auth_delay": "1s",
//	  "seed_file": "users.yaml",
//	  "log_level": "info"
//	}
//
// Fields missing from the JSON file keep their previous value.
package config
