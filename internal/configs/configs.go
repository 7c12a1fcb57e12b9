package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"

	"mk-orders/internal/delivery/kafka"
	"mk-orders/internal/lifecycle"
	"mk-orders/internal/repository/postgres"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8081"`

	KafkaEnabled      bool          `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers      string        `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaCommandTopic string        `env:"KAFKA_COMMAND_TOPIC" envDefault:"orders.commands"`
	KafkaEventTopic   string        `env:"KAFKA_EVENT_TOPIC" envDefault:"orders.events"`
	KafkaGroupID      string        `env:"KAFKA_GROUP_ID" envDefault:"mk-orders"`
	KafkaDLQTopic     string        `env:"KAFKA_DLQ_TOPIC" envDefault:"orders.commands.dlq"`
	KafkaMaxRetries   int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	KafkaBaseBackoff  time.Duration `env:"KAFKA_BASE_BACKOFF" envDefault:"200ms"`

	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"0s"`
	CacheShards int           `env:"CACHE_SHARDS" envDefault:"16"`

	SaveDebounce    time.Duration `env:"SAVE_DEBOUNCE" envDefault:"1s"`
	RequireShipping bool          `env:"REQUIRE_SHIPPING" envDefault:"false"`
	EditablePending bool          `env:"EDITABLE_PENDING" envDefault:"false"`

	CommandFile string `env:"COMMAND_FILE" envDefault:"commands.json"`

	DatabaseURL     string `env:"DATABASE_URL" envDefault:""`
	PostgresHost    string `env:"POSTGRES_HOST" envDefault:""`
	PostgresPort    string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser    string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPass    string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB      string `env:"POSTGRES_DB" envDefault:"orders"`
	PostgresSSLMode string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	PostgresMaxConn int    `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	PostgresLog     bool   `env:"POSTGRES_LOG" envDefault:"false"`
}

func LoadConfig() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("config parse: %w", err)
	}
	if c.SaveDebounce < 0 {
		return Config{}, fmt.Errorf("config parse: SAVE_DEBOUNCE must not be negative")
	}
	return c, nil
}

func (c Config) KafkaBrokersSlice() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UsePostgres reports whether a database is configured. Without one the
// service keeps orders in memory.
func (c Config) UsePostgres() bool {
	return c.DatabaseURL != "" || c.PostgresHost != ""
}

func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		URL:          c.DatabaseURL,
		Host:         c.PostgresHost,
		Port:         c.PostgresPort,
		Username:     c.PostgresUser,
		Password:     c.PostgresPass,
		DbName:       c.PostgresDB,
		SslMode:      c.PostgresSSLMode,
		MaxOpenConns: c.PostgresMaxConn,
		LogMode:      c.PostgresLog,
	}
}

func (c Config) Consumer() kafka.Config {
	return kafka.Config{
		Brokers:     c.KafkaBrokersSlice(),
		GroupID:     c.KafkaGroupID,
		Topic:       c.KafkaCommandTopic,
		DLQ:         c.KafkaDLQTopic,
		MaxRetries:  c.KafkaMaxRetries,
		BaseBackoff: c.KafkaBaseBackoff,
	}
}

func (c Config) Policy() lifecycle.Policy {
	return lifecycle.Policy{
		RequireShipping: c.RequireShipping,
		EditablePending: c.EditablePending,
	}
}
