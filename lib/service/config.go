package service

import (
	"strings"
)

const (
	MemoryDatabasePrefix = "memory://"
)

type Config struct {
	DatabaseUri                  string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns             int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns         int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime      int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN                    string  `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl              string  `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate       float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath                  string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret                    []byte  `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenExpiry         int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`        // in seconds, default 2 days
	LoginMessageMaxAge           int     `envconfig:"LOGIN_MESSAGE_MAX_AGE" default:"300"`       // in seconds
	AdminToken                   string  `envconfig:"ADMIN_TOKEN" required:"true"`
	Host                         string  `envconfig:"HOST" default:"localhost:3000"`
	Port                         int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit             int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit              int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit               int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus             bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort               int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl                   string  `envconfig:"WEBHOOK_URL"`
	PendingWithdrawalTimeout     int     `envconfig:"PENDING_WITHDRAWAL_TIMEOUT" default:"600"`  // in seconds
	RabbitMQUri                  string  `envconfig:"RABBITMQ_URI"`
	RabbitMQPaymentExchange      string  `envconfig:"RABBITMQ_PAYMENT_EXCHANGE" default:"royalty_payment"`
	RabbitMQPaymentConsumerQueue string  `envconfig:"RABBITMQ_PAYMENT_CONSUMER_QUEUE_NAME" default:"royalty_payment_consumer"`
	RabbitMQPayoutExchange       string  `envconfig:"RABBITMQ_PAYOUT_EXCHANGE" default:"royalty_payout"`
	RabbitMQEventExchange        string  `envconfig:"RABBITMQ_EVENT_EXCHANGE" default:"royalty_event"`
	Currency                     string  `envconfig:"CURRENCY" default:"CORE"`
	Unit                         string  `envconfig:"UNIT" default:"wei"`
}

// UseMemoryStore reports whether state is kept in process instead of postgres.
func (c *Config) UseMemoryStore() bool {
	return strings.HasPrefix(c.DatabaseUri, MemoryDatabasePrefix)
}
