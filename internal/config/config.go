package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	ContentAPI ContentAPIConfig `yaml:"content_api"`
	Email      EmailConfig      `yaml:"email"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Search     SearchConfig     `yaml:"search"`
	LogLevel   string           `yaml:"log_level"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type ContentAPIConfig struct {
	Endpoint     string        `yaml:"endpoint"`
	Token        string        `yaml:"token"`
	Timeout      time.Duration `yaml:"timeout"`
	InstantLimit int           `yaml:"instant_limit"`
	SearchLimit  int           `yaml:"search_limit"`
	RelatedLimit int           `yaml:"related_limit"`
}

type EmailConfig struct {
	APIKey     string   `yaml:"api_key"`
	From       string   `yaml:"from"`
	SiteURL    string   `yaml:"site_url"`
	Recipients []string `yaml:"recipients"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Enabled reports whether subscriber storage is configured.
// Without it the intake endpoint falls back to the in-memory store.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

func (r RabbitMQConfig) Enabled() bool {
	return r.URL != ""
}

type SearchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	MinQueryLength int           `yaml:"min_query_length"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.ContentAPI.Timeout == 0 {
		c.ContentAPI.Timeout = 30 * time.Second
	}
	if c.ContentAPI.InstantLimit == 0 {
		c.ContentAPI.InstantLimit = 5
	}
	if c.ContentAPI.SearchLimit == 0 {
		c.ContentAPI.SearchLimit = 20
	}
	if c.ContentAPI.RelatedLimit == 0 {
		c.ContentAPI.RelatedLimit = 5
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "blog_server"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "posts"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "published_posts"
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 300 * time.Millisecond
	}
	if c.Search.MinQueryLength == 0 {
		c.Search.MinQueryLength = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
