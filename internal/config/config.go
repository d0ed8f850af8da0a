package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/yigit/edutech/internal/pkg/currency"
)

// Subscription access policies
const (
	// AccessPolicyRetain keeps a course claimed under a subscription after the subscription ends
	AccessPolicyRetain = "retain"
	// AccessPolicyRevoke locks subscription-claimed courses again once the subscription ends
	AccessPolicyRevoke = "revoke"
)

// PlanConfig is a subscription plan priced in the wallet currency
type PlanConfig struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Redis struct {
		// URL is optional; the catalog cache is disabled when empty
		URL        string `yaml:"url" env:"REDIS_URL"`
		CatalogTTL string `yaml:"catalog_ttl" env:"REDIS_CATALOG_TTL"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Wallet struct {
		StartingBalance    string `yaml:"starting_balance" env:"WALLET_STARTING_BALANCE"`
		ProcessingDelay    string `yaml:"processing_delay" env:"WALLET_PROCESSING_DELAY"`
		CurrencyCode       string `yaml:"currency_code" env:"WALLET_CURRENCY_CODE"`
		SubscriptionAccess string `yaml:"subscription_access" env:"WALLET_SUBSCRIPTION_ACCESS"`
	} `yaml:"wallet"`

	Subscription struct {
		Plans []PlanConfig `yaml:"plans"`
	} `yaml:"subscription"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env never overrides variables that are already exported
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "edutech"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"
	config.Database.Seed = true

	config.Redis.CatalogTTL = "10m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Wallet.StartingBalance = "18750"
	config.Wallet.ProcessingDelay = "1500ms"
	config.Wallet.CurrencyCode = "INR"
	config.Wallet.SubscriptionAccess = AccessPolicyRetain

	config.Subscription.Plans = []PlanConfig{
		{Name: "Basic", Price: "1499"},
		{Name: "Standard", Price: "2999"},
		{Name: "Premium", Price: "5999"},
	}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid database connection lifetime: %w", err)
	}

	if _, err := time.ParseDuration(config.Redis.CatalogTTL); err != nil {
		return fmt.Errorf("invalid redis catalog ttl: %w", err)
	}

	if _, err := time.ParseDuration(config.Wallet.ProcessingDelay); err != nil {
		return fmt.Errorf("invalid wallet processing delay: %w", err)
	}

	balance, err := decimal.NewFromString(config.Wallet.StartingBalance)
	if err != nil {
		return fmt.Errorf("invalid wallet starting balance: %w", err)
	}
	if balance.IsNegative() || !currency.IsExact(balance) {
		return fmt.Errorf("wallet starting balance must be non-negative with at most %d decimal places", currency.Places)
	}

	switch config.Wallet.SubscriptionAccess {
	case AccessPolicyRetain, AccessPolicyRevoke:
	default:
		return fmt.Errorf("unknown subscription access policy %q", config.Wallet.SubscriptionAccess)
	}

	seen := make(map[string]bool, len(config.Subscription.Plans))
	for _, plan := range config.Subscription.Plans {
		if strings.TrimSpace(plan.Name) == "" {
			return fmt.Errorf("subscription plan name is required")
		}
		price, err := decimal.NewFromString(plan.Price)
		if err != nil || !price.IsPositive() || !currency.IsExact(price) {
			return fmt.Errorf("subscription plan %s must have a positive price with at most %d decimal places", plan.Name, currency.Places)
		}
		if seen[plan.Name] {
			return fmt.Errorf("duplicate subscription plan %s", plan.Name)
		}
		seen[plan.Name] = true
	}

	return nil
}

// PlanPrice returns the parsed price of a validated plan
func (p PlanConfig) PlanPrice() decimal.Decimal {
	return decimal.RequireFromString(p.Price)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// StartingBalance returns the balance credited to newly registered users
func (c *Config) StartingBalance() decimal.Decimal {
	return decimal.RequireFromString(c.Wallet.StartingBalance)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
