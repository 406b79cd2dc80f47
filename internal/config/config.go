package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Kafka  KafkaConfig
	Reddit RedditConfig
	Imgur  ImgurConfig
	Flickr FlickrConfig
	Minio  MinioConfig
	Bot    BotConfig
	Retry  RetryConfig
}

type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DBConfig struct {
	Host            string        `env:"DB_HOST" env-default:"localhost"`
	Port            int           `env:"DB_PORT" env-default:"5432"`
	User            string        `env:"DB_USER" env-default:"wallpapermod"`
	Password        string        `env:"DB_PASSWORD" env-default:"wallpapermod"`
	Name            string        `env:"DB_NAME" env-default:"wallpapermod"`
	SSLMode         string        `env:"DB_SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

type KafkaConfig struct {
	Enabled         bool     `env:"KAFKA_ENABLED" env-default:"true"`
	Brokers         []string `env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	ClassifiedTopic string   `env:"KAFKA_CLASSIFIED_TOPIC" env-default:"submissions-classified"`
	RecheckTopic    string   `env:"KAFKA_RECHECK_TOPIC" env-default:"submissions-recheck"`
	GroupID         string   `env:"KAFKA_GROUP_ID" env-default:"wallpapermod-group"`
}

type RedditConfig struct {
	Username     string `env:"REDDIT_USERNAME" env-required:"true"`
	Password     string `env:"REDDIT_PASSWORD" env-required:"true"`
	ClientID     string `env:"REDDIT_CLIENT_ID" env-required:"true"`
	ClientSecret string `env:"REDDIT_CLIENT_SECRET" env-required:"true"`
	Subreddit    string `env:"REDDIT_SUBREDDIT" env-default:"wallpaper"`
	UserAgent    string `env:"REDDIT_USER_AGENT" env-default:"script:wallpapermod:v0.1.0"`
}

type ImgurConfig struct {
	ClientID string `env:"IMGUR_CLIENT_ID"`
}

type FlickrConfig struct {
	APIKey string `env:"FLICKR_API_KEY"`
}

type MinioConfig struct {
	Enabled   bool   `env:"MINIO_ENABLED" env-default:"false"`
	Endpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"evidence"`
}

type BotConfig struct {
	PollInterval time.Duration `env:"BOT_POLL_INTERVAL" env-default:"5m"`
	PageLimit    int           `env:"BOT_PAGE_LIMIT" env-default:"100"`
	MaxPosts     int           `env:"BOT_MAX_POSTS" env-default:"0"`
	StopAfterID  string        `env:"BOT_STOP_AFTER_ID"`
	StopAfterTS  string        `env:"BOT_STOP_AFTER_TS"`
	Posts        []string      `env:"BOT_POSTS" env-separator:","`
}

type RetryConfig struct {
	Attempts int           `env:"RETRY_ATTEMPTS" env-default:"3"`
	Delay    time.Duration `env:"RETRY_DELAY" env-default:"500ms"`
	Backoff  float64       `env:"RETRY_BACKOFF" env-default:"2"`
}

// MustLoad reads configuration from the environment, with an optional
// .env file in the working directory.
func MustLoad() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", cfg); err != nil {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) DBDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}

// StopAfterTime parses the optional stop-after timestamp.
func (c *Config) StopAfterTime() (time.Time, error) {
	if c.Bot.StopAfterTS == "" {
		return time.Time{}, nil
	}
	ts, err := time.Parse(time.RFC3339, c.Bot.StopAfterTS)
	if err != nil {
		return time.Time{}, fmt.Errorf("BOT_STOP_AFTER_TS: %w", err)
	}
	return ts, nil
}
