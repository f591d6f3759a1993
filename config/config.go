package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
	Ticket TicketConfig `yaml:"ticket"`
	Auth   AuthConfig   `yaml:"auth"`
	Map    MapConfig    `yaml:"map"`
	Worker WorkerConfig `yaml:"worker"`
	Log    LogConfig    `yaml:"log"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address"`
	SwaggerDir     string   `yaml:"swagger_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RedisConfig with an empty Addr disables Redis entirely.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	TicketEventsTopic  string   `yaml:"ticket_events_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type TicketConfig struct {
	ValidityHours          int    `yaml:"validity_hours"`
	QRPrefix               string `yaml:"qr_prefix"`
	PaymentProvider        string `yaml:"payment_provider"`
	MaxPassengers          int    `yaml:"max_passengers"`
	HistoryCacheTTLSeconds int    `yaml:"history_cache_ttl_seconds"`
	ConfirmLockSeconds     int    `yaml:"confirm_lock_seconds"`
	SeedDemoBookings       bool   `yaml:"seed_demo_bookings"`
}

type AuthConfig struct {
	Secret          string `yaml:"secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	DemoUserID      string `yaml:"demo_user_id"`
	DemoUserName    string `yaml:"demo_user_name"`
	DemoUserPhone   string `yaml:"demo_user_phone"`
	DemoPassword    string `yaml:"demo_password"`
	LoginRate       string `yaml:"login_rate"`
}

type MapConfig struct {
	StartPosition int `yaml:"start_position"`
	TickSeconds   int `yaml:"tick_seconds"`
}

type WorkerConfig struct {
	ExpirationSweepMinutes int `yaml:"expiration_sweep_minutes"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	return cfg, nil
}

// defaultStartPosition puts the simulated train at HUSSAINGANJ.
const defaultStartPosition = 10

func Parse(data []byte) (*Config, error) {
	// Seeded before decoding so an explicit start_position of 0 survives.
	cfg := Config{Map: MapConfig{StartPosition: defaultStartPosition}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Ticket.ValidityHours <= 0 {
		c.Ticket.ValidityHours = 24
	}
	if c.Ticket.PaymentProvider == "" {
		c.Ticket.PaymentProvider = "GPay"
	}
	if c.Ticket.MaxPassengers <= 0 {
		c.Ticket.MaxPassengers = 10
	}
	if c.Ticket.HistoryCacheTTLSeconds <= 0 {
		c.Ticket.HistoryCacheTTLSeconds = 60
	}
	if c.Ticket.ConfirmLockSeconds <= 0 {
		c.Ticket.ConfirmLockSeconds = 30
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		c.Auth.TokenTTLMinutes = 12 * 60
	}
	if c.Auth.DemoUserID == "" {
		c.Auth.DemoUserID = "demo123"
	}
	if c.Auth.DemoUserName == "" {
		c.Auth.DemoUserName = "Rahul Kumar"
	}
	if c.Auth.DemoUserPhone == "" {
		c.Auth.DemoUserPhone = "+91 9876543210"
	}
	if c.Auth.DemoPassword == "" {
		c.Auth.DemoPassword = "password123"
	}
	if c.Auth.LoginRate == "" {
		c.Auth.LoginRate = "5-1m"
	}
	if c.Map.StartPosition < 0 {
		c.Map.StartPosition = 0
	}
	if c.Map.TickSeconds <= 0 {
		c.Map.TickSeconds = 30
	}
	if c.Worker.ExpirationSweepMinutes <= 0 {
		c.Worker.ExpirationSweepMinutes = 5
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "metroticket-notifier"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 3
	}
}
