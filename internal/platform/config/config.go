// Package config carga la configuración del proceso desde env y, opcionalmente, un YAML.
// Precedencia: env > archivo > defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	keyPort             = "port"
	keyDBDriver         = "db_driver"
	keyDBDSN            = "db_dsn"
	keyDBAutoSchema     = "db_auto_schema"
	keyLogLevel         = "log_level"
	keyLogFormat        = "log_format"
	keyAppName          = "app_name"
	keyHTTPReadTimeout  = "http_read_timeout"
	keyHTTPWriteTimeout = "http_write_timeout"
)

type Config struct {
	Port string

	// DBDriver: memory | sqlite | postgres.
	// Con sqlite y DSN vacío se usa una base en memoria.
	DBDriver     string
	DBDSN        string
	DBAutoSchema bool

	LogLevel  string
	LogFormat string
	AppName   string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Load lee env y, si path no es vacío, el archivo YAML indicado.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:             strings.TrimSpace(v.GetString(keyPort)),
		DBDriver:         strings.ToLower(strings.TrimSpace(v.GetString(keyDBDriver))),
		DBDSN:            strings.TrimSpace(v.GetString(keyDBDSN)),
		DBAutoSchema:     v.GetBool(keyDBAutoSchema),
		LogLevel:         v.GetString(keyLogLevel),
		LogFormat:        v.GetString(keyLogFormat),
		AppName:          v.GetString(keyAppName),
		HTTPReadTimeout:  v.GetDuration(keyHTTPReadTimeout),
		HTTPWriteTimeout: v.GetDuration(keyHTTPWriteTimeout),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyPort, "8080")
	v.SetDefault(keyDBDriver, DriverSQLite)
	v.SetDefault(keyDBDSN, "")
	v.SetDefault(keyDBAutoSchema, true)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyAppName, "pet-registry")
	v.SetDefault(keyHTTPReadTimeout, 5*time.Second)
	v.SetDefault(keyHTTPWriteTimeout, 10*time.Second)
}

func (c Config) validate() error {
	switch c.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if c.DBDSN == "" {
			return errors.New("config: db_dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown db_driver %q (valid: memory, sqlite, postgres)", c.DBDriver)
	}
	if c.Port == "" {
		return errors.New("config: port must not be empty")
	}
	return nil
}
