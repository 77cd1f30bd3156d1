package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"storehouse/internal/pkg/telemetry"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config is read from the environment. Every section has defaults, so an
// empty environment yields a development setup against a local postgres.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	HTTP      HTTPConfig      `envconfig:"HTTP"`
	Store     StoreConfig     `envconfig:"STORE"`
	Database  DatabaseConfig  `envconfig:"DB"`
	Intake    IntakeConfig    `envconfig:"INTAKE"`
	Kafka     KafkaConfig     `envconfig:"KAFKA"`
	Telemetry TelemetryConfig `envconfig:"OTEL"`
	Service   ServiceConfig   `envconfig:"SERVICE"`
}

type HTTPConfig struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	ShutdownGrace time.Duration `envconfig:"SHUTDOWN_GRACE" default:"15s"`
}

type StoreConfig struct {
	// Driver is postgres or memory.
	Driver string `envconfig:"DRIVER" default:"postgres"`
}

type DatabaseConfig struct {
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        string `envconfig:"PORT" default:"5432"`
	User        string `envconfig:"USER" default:"postgres"`
	Password    string `envconfig:"PASSWORD" default:"postgres"`
	Name        string `envconfig:"NAME" default:"storehouse"`
	SslMode     string `envconfig:"SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"true"`
}

type IntakeConfig struct {
	Schedule string `envconfig:"SCHEDULE" default:"*/5 * * * * *"`
}

type KafkaConfig struct {
	// Brokers is a comma-separated list. Empty disables event publication.
	Brokers          string `envconfig:"BROKERS"`
	OrderEventsTopic string `envconfig:"ORDER_EVENTS_TOPIC" default:"storehouse.orders"`
}

type TelemetryConfig struct {
	Endpoint      string  `envconfig:"ENDPOINT"`
	EnableTracing bool    `envconfig:"ENABLE_TRACING" default:"false"`
	EnableMetrics bool    `envconfig:"ENABLE_METRICS" default:"false"`
	SampleRate    float64 `envconfig:"SAMPLE_RATE" default:"1.0"`
}

type ServiceConfig struct {
	Name        string `envconfig:"NAME" default:"storehouse"`
	Version     string `envconfig:"VERSION" default:"0.1.0"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// LoadConfig loads envFile into the environment when it exists, without
// overriding variables that are already set, and then reads Config.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q",
			StoreDriverPostgres, StoreDriverMemory, cfg.Store.Driver)
	}
	return cfg, nil
}

// DSN is the key/value connection string understood by gorm and lib/pq.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SslMode,
	)
}

func (c Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		ServiceName:    c.Service.Name,
		ServiceVersion: c.Service.Version,
		Environment:    c.Service.Environment,
		OTLPEndpoint:   c.Telemetry.Endpoint,
		EnableTracing:  c.Telemetry.EnableTracing,
		EnableMetrics:  c.Telemetry.EnableMetrics,
		SampleRate:     c.Telemetry.SampleRate,
	}
}
