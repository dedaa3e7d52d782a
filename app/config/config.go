package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/m3rciful/storebot/core/config"
	coredatabase "github.com/m3rciful/storebot/core/database"
)

// ShopConfig holds storefront settings: the subscription channel, the payment
// provider credentials, and order constraints.
type ShopConfig struct {
	// Channel is the Telegram channel (with or without @) users must join.
	Channel string `yaml:"channel" envconfig:"SHOP_CHANNEL"`
	// ProviderToken authorizes invoice creation with the payment provider.
	ProviderToken string `yaml:"provider_token" envconfig:"SHOP_PROVIDER_TOKEN"`
	Currency      string `yaml:"currency" envconfig:"SHOP_CURRENCY"`
	// MinOrderMinor is the minimum order total in minor currency units.
	MinOrderMinor int64 `yaml:"min_order_minor" envconfig:"SHOP_MIN_ORDER_MINOR"`
	// SeedDemo loads a small demo catalog on startup when the catalog is empty.
	SeedDemo bool `yaml:"seed_demo" envconfig:"SHOP_SEED_DEMO"`
}

// RedisConfig selects the external session store. When Addr is empty the bot
// keeps conversation state in process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// SessionConfig controls conversation state expiry.
type SessionConfig struct {
	// TTLMinutes expires abandoned flows; 0 keeps them until cleared.
	TTLMinutes int `yaml:"ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
}

// Config aggregates core, database, and storefront configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:"core"`
	Database coredatabase.Config `yaml:"database"`
	Shop     ShopConfig          `yaml:"shop"`
	Redis    RedisConfig         `yaml:"redis"`
	Session  SessionConfig       `yaml:"session"`
}

// CoreConfig exposes the embedded core configuration for the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeShop(&cfg.Shop); err != nil {
		return nil, err
	}
	if cfg.Session.TTLMinutes < 0 {
		return nil, fmt.Errorf("session.ttl_minutes must be >= 0")
	}
	return &cfg, nil
}

func normalizeShop(shop *ShopConfig) error {
	if strings.TrimSpace(shop.Channel) == "" {
		return fmt.Errorf("shop.channel is required")
	}
	if !strings.HasPrefix(shop.Channel, "@") {
		shop.Channel = "@" + shop.Channel
	}
	if strings.TrimSpace(shop.ProviderToken) == "" {
		return fmt.Errorf("shop.provider_token is required")
	}
	if strings.TrimSpace(shop.Currency) == "" {
		shop.Currency = "RUB"
	}
	if shop.MinOrderMinor < 0 {
		return fmt.Errorf("shop.min_order_minor must be >= 0")
	}
	if shop.MinOrderMinor == 0 {
		shop.MinOrderMinor = 10000
	}
	return nil
}
