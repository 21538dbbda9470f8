package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	StorageBucket   string `env:"STORAGE_BUCKET,required"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Deadline applied to every aggregation call and the upper bound on
	// concurrent photo lookups during list hydration.
	OpTimeoutSeconds int `env:"OP_TIMEOUT_SECONDS" envDefault:"15"`
	FanOutLimit      int `env:"FAN_OUT_LIMIT" envDefault:"8"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) OpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutSeconds) * time.Second
}
