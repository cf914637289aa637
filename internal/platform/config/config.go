package config

import (
	"os"
	"strconv"
	"time"

	pstrings "prefsync/pkg/platform/strings"
)

// Config is the full service configuration.
type Config struct {
	Server        Server
	Postgres      PostgresConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Lanes         LanesConfig
	Notifications NotificationsConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string
	// ShutdownTimeout bounds draining the lanes on exit.
	ShutdownTimeout time.Duration
	// AdminToken guards maintenance endpoints; empty disables them.
	AdminToken string
}

// PostgresConfig selects the Postgres-backed store when DSN is set.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
}

// RedisConfig selects the Redis-backed channel adapter when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
}

// KafkaConfig selects the Kafka propagation queue when Brokers is set.
type KafkaConfig struct {
	Brokers           []string
	Topic             string
	Partitions        int32
	ReplicationFactor int16
	// BreakerThreshold consecutive produce failures open the circuit.
	BreakerThreshold int
	BreakerCooldown  time.Duration
}

// LanesConfig sizes the serial and pooled lanes.
type LanesConfig struct {
	SerialConcurrency int
	PoolSize          int
	RetryAttempts     uint
	RetryInitial      time.Duration
	RetryMax          time.Duration
	// PropagationBuffer is the memory queue capacity.
	PropagationBuffer int
}

// NotificationsConfig holds the process-wide notification defaults.
type NotificationsConfig struct {
	DefaultRingtone string
	DefaultVibrate  bool
	LocalAddress    string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Empty DSN, URL or broker list selects the in-memory implementation.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("PREFSYNC_ADDR", ":8080"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			LogFormat:       getEnv("LOG_FORMAT", "json"),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			AdminToken:      os.Getenv("ADMIN_API_TOKEN"),
		},
		Postgres: PostgresConfig{
			DSN:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(getInt("DATABASE_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "prefsync"),
		},
		Kafka: KafkaConfig{
			Brokers:           pstrings.SplitList(os.Getenv("KAFKA_BROKERS"), ","),
			Topic:             getEnv("KAFKA_PROPAGATION_TOPIC", "recipient-propagation"),
			Partitions:        int32(getInt("KAFKA_PARTITIONS", 3)),
			ReplicationFactor: int16(getInt("KAFKA_REPLICATION_FACTOR", 1)),
			BreakerThreshold:  getInt("KAFKA_BREAKER_THRESHOLD", 5),
			BreakerCooldown:   getDuration("KAFKA_BREAKER_COOLDOWN", 30*time.Second),
		},
		Lanes: LanesConfig{
			SerialConcurrency: getInt("LANE_SERIAL_CONCURRENCY", 8),
			PoolSize:          getInt("LANE_POOL_SIZE", 4),
			RetryAttempts:     uint(getInt("LANE_RETRY_ATTEMPTS", 5)),
			RetryInitial:      getDuration("LANE_RETRY_INITIAL", 50*time.Millisecond),
			RetryMax:          getDuration("LANE_RETRY_MAX", 2*time.Second),
			PropagationBuffer: getInt("PROPAGATION_BUFFER", 1024),
		},
		Notifications: NotificationsConfig{
			DefaultRingtone: getEnv("DEFAULT_RINGTONE_URI", "content://settings/system/notification_sound"),
			DefaultVibrate:  getEnv("DEFAULT_VIBRATE", "true") == "true",
			LocalAddress:    os.Getenv("LOCAL_ADDRESS"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
