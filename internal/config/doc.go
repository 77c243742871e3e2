// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-d string   path to the local database file
//	-r string   bot-challenge token endpoint
//	-k string   bot-challenge site key
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "database_path": "ornata.db",
//	  "challenge_url": "https://challenge.example/token",
//	  "challenge_site_key": "site-key"
//	}
//
// Primary API
//
//   - type Config                     — holds the resolved runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
