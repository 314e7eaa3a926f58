package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from STOCKTRACK_* environment variables. Command line
// flags may override individual fields. An empty RemoteDSN selects
// local-only persistence, the default mode.
type Config struct {
	DataDir      string        `envconfig:"DATA_DIR" default:"./data"`
	RemoteDSN    string        `envconfig:"REMOTE_DSN" default:""`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	LogFile      string        `envconfig:"LOG_FILE" default:"stocktrack.log"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("stocktrack", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
