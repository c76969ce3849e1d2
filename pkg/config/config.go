package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PHARMACARE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"PHARMACARE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHARMACARE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Path is the sqlite database file. The :memory: form is accepted for tests.
	Path        string        `envconfig:"PHARMACARE_DB_PATH" default:"pharmacare.db"`
	BusyTimeout time.Duration `envconfig:"PHARMACARE_DB_BUSY_TIMEOUT" default:"5s"`

	// A single writer connection serializes sales against the invoice counter.
	MaxOpenConns int `envconfig:"PHARMACARE_DB_MAX_OPEN_CONNS" default:"1"`
}

func (db *DBConfig) validate() error {
	if strings.TrimSpace(db.Path) == "" {
		return fmt.Errorf("database path is required")
	}
	if db.MaxOpenConns < 1 {
		return fmt.Errorf("db max open conns must be at least 1")
	}
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PHARMACARE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PHARMACARE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PHARMACARE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PHARMACARE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PHARMACARE_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PHARMACARE_AUTO_MIGRATE" default:"true"`
}
