package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrEnvOverride   = errors.New("config: failed to apply environment overrides")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Драйверы доставки уведомлений
const (
	NotificationDriverLog     = "log"
	NotificationDriverRedis   = "redis"
	NotificationDriverSMTP    = "smtp"
	NotificationDriverWebhook = "webhook"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Auth          AuthConfig          `toml:"auth"`
	Booking       BookingConfig       `toml:"booking"`
	Notifications NotificationsConfig `toml:"notifications"`
	Redis         RedisConfig         `toml:"redis"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Webhook       WebhookConfig       `toml:"webhook"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения в формате key=value для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	Issuer    string `toml:"issuer" env:"AUTH_ISSUER"`
}

type BookingConfig struct {
	PerPage int `toml:"per_page" env:"BOOKING_PER_PAGE"`
}

type NotificationsConfig struct {
	Driver     string `toml:"driver" env:"NOTIFICATIONS_DRIVER"`
	BufferSize int    `toml:"buffer_size"`
	Timeout    int    `toml:"timeout"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" env:"REDIS_ADDR"`
	Password string `toml:"password" env:"REDIS_PASSWORD"`
	DB       int    `toml:"db" env:"REDIS_DB"`
	Queue    string `toml:"queue" env:"REDIS_QUEUE"`
}

type SMTPConfig struct {
	Host     string `toml:"host" env:"SMTP_HOST"`
	Port     int    `toml:"port" env:"SMTP_PORT"`
	Username string `toml:"username" env:"SMTP_USERNAME"`
	Password string `toml:"password" env:"SMTP_PASSWORD"`
	From     string `toml:"from" env:"SMTP_FROM"`
}

type WebhookConfig struct {
	URL     string `toml:"url" env:"WEBHOOK_URL"`
	Timeout int    `toml:"timeout"`
}

// Load читает .env (если есть), config.toml и применяет переменные окружения поверх файла
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default значения, которые используются для ключей, отсутствующих в файле
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "clinic_booking",
		},
		Booking: BookingConfig{PerPage: 10},
		Notifications: NotificationsConfig{
			Driver:     NotificationDriverLog,
			BufferSize: 100,
			Timeout:    5,
		},
		Redis: RedisConfig{
			Addr:  "localhost:6379",
			Queue: "clinic:notifications",
		},
		SMTP:    SMTPConfig{Port: 587},
		Webhook: WebhookConfig{Timeout: 5},
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Database.Port <= 0 {
		problems = append(problems, "database.port must be positive")
	}
	if c.Auth.JWTSecret == "" {
		problems = append(problems, "auth.jwt_secret is required")
	}
	if c.Booking.PerPage < 1 || c.Booking.PerPage > 100 {
		problems = append(problems, "booking.per_page must be in 1..100")
	}
	if c.Notifications.BufferSize <= 0 {
		problems = append(problems, "notifications.buffer_size must be positive")
	}

	switch c.Notifications.Driver {
	case NotificationDriverLog:
	case NotificationDriverRedis:
		if c.Redis.Addr == "" || c.Redis.Queue == "" {
			problems = append(problems, "redis.addr and redis.queue are required for redis driver")
		}
	case NotificationDriverSMTP:
		if c.SMTP.Host == "" || c.SMTP.From == "" {
			problems = append(problems, "smtp.host and smtp.from are required for smtp driver")
		}
	case NotificationDriverWebhook:
		if c.Webhook.URL == "" {
			problems = append(problems, "webhook.url is required for webhook driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown notifications.driver %q", c.Notifications.Driver))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
