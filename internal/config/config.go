package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Booking  BookingConfig  `toml:"booking"`
	Notifier NotifierConfig `toml:"notifier"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig настройки Redis для хранилищ черновиков и кодов подтверждения
// При enabled=false используются in-process хранилища (только single-instance деплой)
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// BookingConfig параметры движка бронирования
type BookingConfig struct {
	// Шаг сетки слотов в минутах
	SlotStepMinutes int `toml:"slot_step_minutes"`
	// Буфер после записи в минутах (уборка, дезинфекция инструмента)
	BufferMinutes int `toml:"buffer_minutes"`
	// Таймзона салона по умолчанию, если клиент не передал свою
	Timezone string `toml:"timezone"`

	// Время жизни черновиков по каналам, в минутах
	DraftTTLMinutes          int `toml:"draft_ttl_minutes"`
	SmsDraftTTLMinutes       int `toml:"sms_draft_ttl_minutes"`
	TelegramDraftTTLMinutes  int `toml:"telegram_draft_ttl_minutes"`
	QuickAuthDraftTTLMinutes int `toml:"quick_auth_draft_ttl_minutes"`

	// Параметры одноразовых кодов
	OTPTTLMinutes int `toml:"otp_ttl_minutes"`
	OTPCodeLength int `toml:"otp_code_length"`
}

// NotifierConfig настройки клиента сервиса уведомлений
type NotifierConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Load загружает конфигурацию из TOML файла и проставляет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
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

	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = 10
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = "Europe/Moscow"
	}
	if c.Booking.DraftTTLMinutes == 0 {
		c.Booking.DraftTTLMinutes = 30
	}
	if c.Booking.SmsDraftTTLMinutes == 0 {
		c.Booking.SmsDraftTTLMinutes = 15
	}
	if c.Booking.TelegramDraftTTLMinutes == 0 {
		c.Booking.TelegramDraftTTLMinutes = 15
	}
	if c.Booking.QuickAuthDraftTTLMinutes == 0 {
		c.Booking.QuickAuthDraftTTLMinutes = 30
	}
	if c.Booking.OTPTTLMinutes == 0 {
		c.Booking.OTPTTLMinutes = 5
	}
	if c.Booking.OTPCodeLength == 0 {
		c.Booking.OTPCodeLength = 4
	}

	if c.Notifier.Timeout == 0 {
		c.Notifier.Timeout = 5
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking-engine"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// DraftTTL возвращает время жизни черновика для канала source
func (c *BookingConfig) DraftTTL(source string) time.Duration {
	switch source {
	case "sms_otp":
		return time.Duration(c.SmsDraftTTLMinutes) * time.Minute
	case "telegram_otp":
		return time.Duration(c.TelegramDraftTTLMinutes) * time.Minute
	case "quick_auth":
		return time.Duration(c.QuickAuthDraftTTLMinutes) * time.Minute
	default:
		return time.Duration(c.DraftTTLMinutes) * time.Minute
	}
}

// OTPTTL возвращает время жизни одноразового кода
func (c *BookingConfig) OTPTTL() time.Duration {
	return time.Duration(c.OTPTTLMinutes) * time.Minute
}
