// Package config loads runtime configuration for the vault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (VAULT_*), after loading a .env file if present.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-b string   storage backend: sqlite, postgres, mongo or memory
//	-f string   SQLite database file
//	-d string   PostgreSQL DSN
//	-m string   MongoDB connection URI
//	-n int      length of generated passwords
//	-l string   log level: debug, info, warn, error
//
// The passphrase is deliberately not accepted as a flag; set it in the JSON
// file or VAULT_PASSPHRASE.
//
// # JSON schema
//
//	{
//	  "backend": "sqlite",
//	  "sqlite_path": "vault.db",
//	  "database_dsn": "postgres://...",
//	  "mongo_uri": "mongodb://127.0.0.1:27017",
//	  "mongo_database": "vault",
//	  "mongo_connect_timeout": "10s",
//	  "passphrase": "...",
//	  "key_salt": "...",
//	  "password_length": 12,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
