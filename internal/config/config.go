package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "AZWEBAPP"

type Config struct {
	App       AppConfig        `mapstructure:"app"`
	Azure     AzureConfig      `mapstructure:"azure"`
	Auth      AuthConfig       `mapstructure:"auth"`
	Defaults  DefaultsConfig   `mapstructure:"defaults"`
	Notify    NotifyConfig     `mapstructure:"notify"`
	Schedules []ScheduleConfig `mapstructure:"schedules"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Output   string `mapstructure:"output"`
}

type AzureConfig struct {
	SubscriptionID string        `mapstructure:"subscription_id"`
	Endpoint       string        `mapstructure:"endpoint"`
	APIVersion     string        `mapstructure:"api_version"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Authority    string `mapstructure:"authority"`
	TenantID     string `mapstructure:"tenant_id"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`

	// AccessToken, when set, is used as a bearer token and the client
	// credentials above are ignored.
	AccessToken string `mapstructure:"access_token"`
}

// DefaultsConfig holds the site used when a command does not name one.
type DefaultsConfig struct {
	ResourceGroup string `mapstructure:"resource_group"`
	Name          string `mapstructure:"name"`
	Slot          string `mapstructure:"slot"`
}

type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

type ScheduleConfig struct {
	Name              string           `mapstructure:"name"`
	Schedule          string           `mapstructure:"schedule"`
	Enabled           bool             `mapstructure:"enabled"`
	ResourceGroup     string           `mapstructure:"resource_group"`
	App               string           `mapstructure:"app"`
	Slot              string           `mapstructure:"slot"`
	StorageAccountURL string           `mapstructure:"storage_account_url"`
	BackupNamePrefix  string           `mapstructure:"backup_name_prefix"`
	Databases         []DatabaseConfig `mapstructure:"databases"`
}

// DatabaseConfig describes a database to include in a scheduled backup. A
// connection string is used as given; otherwise one is built from the
// host fields for the database type.
type DatabaseConfig struct {
	Name                 string `mapstructure:"name"`
	Type                 string `mapstructure:"type"`
	ConnectionStringName string `mapstructure:"connection_string_name"`
	ConnectionString     string `mapstructure:"connection_string"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`

	// PostgreSQL specific
	SSLMode string `mapstructure:"ssl_mode"`
}

// New returns a viper instance with defaults and environment overrides set up.
// Flags may be bound to it before Load reads the config file.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("app.name", "azwebapp")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.output", "json")
	v.SetDefault("azure.endpoint", "https://management.azure.com")
	v.SetDefault("azure.api_version", "2016-08-01")
	v.SetDefault("azure.timeout", 60*time.Second)
	v.SetDefault("auth.authority", "https://login.microsoftonline.com")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{
		"azure.subscription_id",
		"auth.tenant_id",
		"auth.client_id",
		"auth.client_secret",
		"auth.access_token",
		"defaults.resource_group",
		"defaults.name",
		"defaults.slot",
		"notify.telegram.enabled",
		"notify.telegram.bot_token",
		"notify.telegram.chat_id",
	} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load reads the optional config file at path into a Config. An empty path
// means configuration comes from the environment and defaults only.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.App.Output) {
	case "json", "yaml", "table":
	default:
		return fmt.Errorf("app.output: unsupported format %q", c.App.Output)
	}

	if c.Azure.Endpoint == "" {
		return errors.New("azure.endpoint is required")
	}
	if c.Azure.APIVersion == "" {
		return errors.New("azure.api_version is required")
	}

	if c.Notify.Telegram.Enabled {
		if c.Notify.Telegram.BotToken == "" {
			return errors.New("notify.telegram.bot_token is required when enabled")
		}
		if c.Notify.Telegram.ChatID == "" {
			return errors.New("notify.telegram.chat_id is required when enabled")
		}
	}

	for i, s := range c.Schedules {
		if !s.Enabled {
			continue
		}
		if s.Name == "" {
			return fmt.Errorf("schedules[%d]: name is required", i)
		}
		if s.Schedule == "" {
			return fmt.Errorf("schedules[%d]: schedule is required when enabled", i)
		}
		for j, db := range s.Databases {
			if db.Type == "" {
				return fmt.Errorf("schedules[%d].databases[%d]: type is required", i, j)
			}
		}
	}

	return nil
}

// ValidateAuth checks the settings needed to talk to Azure. It is separate
// from Validate so commands that never reach Azure do not require them.
func (c *Config) ValidateAuth() error {
	if c.Azure.SubscriptionID == "" {
		return errors.New("azure.subscription_id is required")
	}
	if c.Auth.AccessToken != "" {
		return nil
	}
	if c.Auth.TenantID == "" {
		return errors.New("auth.tenant_id is required")
	}
	if c.Auth.ClientID == "" {
		return errors.New("auth.client_id is required")
	}
	if c.Auth.ClientSecret == "" {
		return errors.New("auth.client_secret is required")
	}
	return nil
}

func (c *Config) GetEnabledSchedules() []ScheduleConfig {
	var enabled []ScheduleConfig
	for _, s := range c.Schedules {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}
