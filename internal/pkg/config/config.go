package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, retry bounds, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	CORS      CORSConfig
	Log       LogConfig
	Admission AdmissionConfig
	Retry     RetryConfig
	Lock      LockConfig
	Mail      MailConfig
	Expiry    ExpiryConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
	// Requests per second allowed on the issuance endpoints, 0 disables limiting
	IssueRateLimit float64 `envconfig:"ISSUE_RATE_LIMIT" default:"0"`
	IssueRateBurst int     `envconfig:"ISSUE_RATE_BURST" default:"100"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Seoul"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type KafkaConfig struct {
	Brokers            []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	IssuanceTopic      string   `envconfig:"KAFKA_ISSUANCE_TOPIC" default:"issuance-requests"`
	IssuanceDLQTopic   string   `envconfig:"KAFKA_ISSUANCE_DLQ_TOPIC" default:"issuance-requests-dlq"`
	UsageTopic         string   `envconfig:"KAFKA_USAGE_TOPIC" default:"usage-events"`
	ConsumerGroup      string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"coupon-issued-group"`
	UsageGroup         string   `envconfig:"KAFKA_USAGE_GROUP" default:"coupon-used-group"`
	IssuancePartitions int32    `envconfig:"KAFKA_ISSUANCE_PARTITIONS" default:"3"`
	ReplicationFactor  int16    `envconfig:"KAFKA_REPLICATION_FACTOR" default:"1"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Seoul"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// AdmissionConfig selects which strategy serializes the dedup+quota decision.
// Valid values: exclusive_region, row_lock, redis_script, redis_lock.
type AdmissionConfig struct {
	Strategy string `envconfig:"ADMISSION_STRATEGY" default:"redis_script"`
}

// RetryConfig bounds the pipeline consumer's backoff between persistence
// attempts. Admission rejections are never retried.
type RetryConfig struct {
	InitialDelay time.Duration `envconfig:"RETRY_INITIAL_DELAY" default:"200ms"`
	Multiplier   float64       `envconfig:"RETRY_MULTIPLIER" default:"2.0"`
	MaxDelay     time.Duration `envconfig:"RETRY_MAX_DELAY" default:"5s"`
	MaxAttempts  int           `envconfig:"RETRY_MAX_ATTEMPTS" default:"3"`
}

// LockConfig bounds the distributed-lock strategy: how long acquisition may
// wait and how long a held lock survives before auto-release.
type LockConfig struct {
	WaitTimeout time.Duration `envconfig:"LOCK_WAIT_TIMEOUT" default:"5s"`
	HoldTTL     time.Duration `envconfig:"LOCK_HOLD_TTL" default:"10s"`
}

type MailConfig struct {
	SMTPHost string `envconfig:"SMTP_HOST" default:"localhost"`
	SMTPPort string `envconfig:"SMTP_PORT" default:"1025"`
	From     string `envconfig:"MAIL_FROM" default:"noreply@coupon.local"`
}

type ExpiryConfig struct {
	NoticeDays int `envconfig:"EXPIRY_NOTICE_DAYS" default:"7"`
	ChunkSize  int `envconfig:"EXPIRY_CHUNK_SIZE" default:"100"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Seoul",
		},
		Redis: RedisConfig{
			Addr: "localhost:16380",
		},
		Kafka: KafkaConfig{
			Brokers:            []string{"localhost:19092"},
			IssuanceTopic:      "issuance-requests",
			IssuanceDLQTopic:   "issuance-requests-dlq",
			UsageTopic:         "usage-events",
			ConsumerGroup:      "coupon-issued-group",
			UsageGroup:         "coupon-used-group",
			IssuancePartitions: 3,
			ReplicationFactor:  1,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Seoul",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		Admission: AdmissionConfig{Strategy: "redis_script"},
		Retry: RetryConfig{
			InitialDelay: 10 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     100 * time.Millisecond,
			MaxAttempts:  3,
		},
		Lock: LockConfig{
			WaitTimeout: time.Second,
			HoldTTL:     2 * time.Second,
		},
		Expiry: ExpiryConfig{NoticeDays: 7, ChunkSize: 100},
	}
}
