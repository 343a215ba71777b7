package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Kafka      KafkaConfig      `toml:"kafka"`
}

// ServerConfig настройки HTTP-сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	LockTimeoutMs   int    `toml:"lock_timeout_ms"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig параметры генерации слотов
type SchedulingConfig struct {
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	MaxExtensionMinutes int `toml:"max_extension_minutes"`
}

// RedisConfig подключение к Redis (используется ограничителем запросов)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RateLimitConfig ограничение частоты запросов с одного клиента
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	Requests          int      `toml:"requests"`
	WindowSeconds     int      `toml:"window_seconds"`
	FailOpen          bool     `toml:"fail_open"`       // пропускать запросы, если Redis недоступен
	TrustedProxyAddrs []string `toml:"trusted_proxies"` // IP или CIDR прокси, чьему X-Forwarded-For верим
}

// KafkaConfig consumer событий об изменении рабочих окон
type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
	GroupID string   `toml:"group_id"`
}

// Load читает конфигурацию из TOML-файла и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.LockTimeoutMs == 0 {
		c.Database.LockTimeoutMs = 5000
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointmentservice"
	}

	if c.Scheduling.SlotDurationMinutes == 0 {
		c.Scheduling.SlotDurationMinutes = 15
	}
	if c.Scheduling.MaxExtensionMinutes == 0 {
		c.Scheduling.MaxExtensionMinutes = c.Scheduling.SlotDurationMinutes - 1
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = 100
	}
	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "time-slot-events"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "appointmentservice"
	}
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	if c.Scheduling.SlotDurationMinutes < 5 || c.Scheduling.SlotDurationMinutes > 480 {
		return fmt.Errorf("config: scheduling.slot_duration_minutes must be in [5, 480], got %d",
			c.Scheduling.SlotDurationMinutes)
	}
	if c.Scheduling.MaxExtensionMinutes < 0 || c.Scheduling.MaxExtensionMinutes >= c.Scheduling.SlotDurationMinutes {
		return fmt.Errorf("config: scheduling.max_extension_minutes must be in [0, %d), got %d",
			c.Scheduling.SlotDurationMinutes, c.Scheduling.MaxExtensionMinutes)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka.brokers is required when kafka is enabled")
	}
	if _, err := c.RateLimit.TrustedProxies(); err != nil {
		return err
	}
	return nil
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LockTimeout таймаут ожидания блокировки строки
func (d DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(d.LockTimeoutMs) * time.Millisecond
}

// SlotDuration длительность одного слота
func (s SchedulingConfig) SlotDuration() time.Duration {
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// MaxExtension максимальное продление окна в сторону следующего
func (s SchedulingConfig) MaxExtension() time.Duration {
	return time.Duration(s.MaxExtensionMinutes) * time.Minute
}

// Window окно подсчета запросов
func (r RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// TrustedProxies сети доверенных прокси; одиночный IP трактуется как /32 или /128
func (r RateLimitConfig) TrustedProxies() ([]*net.IPNet, error) {
	networks := make([]*net.IPNet, 0, len(r.TrustedProxyAddrs))
	for _, entry := range r.TrustedProxyAddrs {
		entry = strings.TrimSpace(entry)
		if !strings.Contains(entry, "/") {
			ip := net.ParseIP(entry)
			if ip == nil {
				return nil, fmt.Errorf("config: rate_limit.trusted_proxies: invalid address %q", entry)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			networks = append(networks, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}

		_, network, err := net.ParseCIDR(entry)
		if err != nil {
			return nil, fmt.Errorf("config: rate_limit.trusted_proxies: %w", err)
		}
		networks = append(networks, network)
	}
	return networks, nil
}
