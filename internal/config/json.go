package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/vaultkeeper/internal/flagx"
	"github.com/dmitrijs2005/vaultkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	Backend             string          `json:"backend"`
	SQLitePath          string          `json:"sqlite_path"`
	DatabaseDSN         string          `json:"database_dsn"`
	MongoURI            string          `json:"mongo_uri"`
	MongoDatabase       string          `json:"mongo_database"`
	MongoConnectTimeout *timex.Duration `json:"mongo_connect_timeout"`
	Passphrase          string          `json:"passphrase"`
	KeySalt             string          `json:"key_salt"`
	PasswordLength      int             `json:"password_length"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. It panics
// on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.SQLitePath, jc.SQLitePath)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.MongoURI, jc.MongoURI)
	setString(&cfg.MongoDatabase, jc.MongoDatabase)
	setString(&cfg.Passphrase, jc.Passphrase)
	setString(&cfg.KeySalt, jc.KeySalt)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)

	if jc.MongoConnectTimeout != nil {
		cfg.MongoConnectTimeout = jc.MongoConnectTimeout.Duration
	}
	if jc.PasswordLength != 0 {
		cfg.PasswordLength = jc.PasswordLength
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
