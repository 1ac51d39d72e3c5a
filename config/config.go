package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config carries everything the client core and the dev backend need.
// Values come from the environment (a .env file is honored when present)
// and default to a loopback development setup.
type Config struct {
	BaseURL         string
	RequestTimeout  time.Duration
	ResourceTimeout time.Duration
	ProbeDeadline   time.Duration
	HistoryPath     string

	ListenAddr  string
	RedisAddr   string
	KafkaBroker string
	PostgresDSN string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:         getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		RequestTimeout:  getDuration("API_REQUEST_TIMEOUT", 3*time.Second),
		ResourceTimeout: getDuration("API_RESOURCE_TIMEOUT", 5*time.Second),
		ProbeDeadline:   getDuration("API_PROBE_DEADLINE", 250*time.Millisecond),
		HistoryPath:     getEnv("HISTORY_PATH", defaultHistoryPath()),
		ListenAddr:      getEnv("DEVSERVER_ADDR", ":8000"),
		RedisAddr:       redisAddr(),
		KafkaBroker:     os.Getenv("KAFKA_BROKER"),
		PostgresDSN:     postgresDSN(),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "orders_history.json"
	}
	return filepath.Join(dir, "haaangry", "orders_history.json")
}

func redisAddr() string {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return ""
	}
	return host + ":" + getEnv("REDIS_PORT", "6379")
}

func postgresDSN() string {
	host := os.Getenv("DB_HOST")
	if host == "" {
		return ""
	}
	return "host=" + host + " port=" + getEnv("DB_PORT", "5432") +
		" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
		" dbname=" + os.Getenv("DB_NAME") + " sslmode=disable"
}

// MustInitPostgres opens and pings the dev backend database.
func MustInitPostgres(dsn string) *sql.DB {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// MustInitRedis connects the dev backend recommendation cache.
func MustInitRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	return client
}

// NewKafkaWriter builds the order-event writer for the dev backend.
func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}
