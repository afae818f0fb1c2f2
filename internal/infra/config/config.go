package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	DefaultPath = "configs/values_examples.yaml"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string `yaml:"token"`
		Username    string `yaml:"username"`
		Mode        string `yaml:"mode"`
		WebhookURL  string `yaml:"webhook_url"`
		ListenAddr  string `yaml:"listen_addr"`
		PollTimeout int    `yaml:"poll_timeout_seconds"`
		Debug       bool   `yaml:"debug"`
	} `yaml:"telegram_bot"`
	Database struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"dbname"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret       string `yaml:"jwt_secret"`
		TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
		AdminKey        string `yaml:"admin_key"`
	} `yaml:"auth"`
	Events struct {
		AMQPURL  string `yaml:"amqp_url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"events"`
	Reports struct {
		Title string `yaml:"title"`
	} `yaml:"reports"`
	Simulacro struct {
		PersistTimeoutSeconds int `yaml:"persist_timeout_seconds"`
	} `yaml:"simulacro"`
}

// LoadConfig читает YAML-файл и применяет переменные окружения (в том числе из .env)
func LoadConfig(filename string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			fmt.Println("f.Close() failed ", err)
		}
	}(f)

	config := &Config{}
	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return nil, err
	}

	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv переопределяет секреты значениями из окружения
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramBot.Token = v
	}
	if v := os.Getenv("BOT_MODE"); v != "" {
		c.TelegramBot.Mode = v
	}
	if v := os.Getenv("WEBHOOK_URL"); v != "" {
		c.TelegramBot.WebhookURL = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_KEY"); v != "" {
		c.Auth.AdminKey = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		c.Events.AMQPURL = v
	}
	if v := os.Getenv("DEBUG"); v == "true" || v == "1" {
		c.TelegramBot.Debug = true
	}
	if v := os.Getenv("PERSIST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Simulacro.PersistTimeoutSeconds = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.TelegramBot.Mode == "" {
		c.TelegramBot.Mode = ModePolling
	}
	if c.TelegramBot.ListenAddr == "" {
		c.TelegramBot.ListenAddr = ":8443"
	}
	if c.TelegramBot.PollTimeout == 0 {
		c.TelegramBot.PollTimeout = 10
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 60
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = "simulacros"
	}
	if c.Reports.Title == "" {
		c.Reports.Title = "POR ESE 500"
	}
	if c.Simulacro.PersistTimeoutSeconds == 0 {
		c.Simulacro.PersistTimeoutSeconds = 10
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramBot.Token == "" {
		errs = append(errs, errors.New("telegram_bot.token is required (or TELEGRAM_BOT_TOKEN)"))
	}
	switch c.TelegramBot.Mode {
	case ModePolling:
	case ModeWebhook:
		if c.TelegramBot.WebhookURL == "" {
			errs = append(errs, errors.New("telegram_bot.webhook_url is required in webhook mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("telegram_bot.mode must be %q or %q, got %q", ModePolling, ModeWebhook, c.TelegramBot.Mode))
	}
	if c.TelegramBot.PollTimeout < 0 {
		errs = append(errs, errors.New("telegram_bot.poll_timeout_seconds must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required (or JWT_SECRET)"))
	}
	if c.Auth.TokenTTLMinutes < 0 {
		errs = append(errs, errors.New("auth.token_ttl_minutes must be positive"))
	}
	if c.Simulacro.PersistTimeoutSeconds < 0 {
		errs = append(errs, errors.New("simulacro.persist_timeout_seconds must be positive"))
	}

	return errors.Join(errs...)
}

// PollTimeout интервал лонгпуллинга
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.TelegramBot.PollTimeout) * time.Second
}

// TokenTTL время жизни JWT
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// PersistTimeout таймаут записи результата попытки
func (c *Config) PersistTimeout() time.Duration {
	return time.Duration(c.Simulacro.PersistTimeoutSeconds) * time.Second
}

// DatabaseURL строка подключения к PostgreSQL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}
