package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Token         string
	DatabaseURL   string
	GuildID       string
	OwnerID       string
	DefaultLocale string
	TemplatesDir  string
	MigrationsDir string
	MetricsAddr   string
}

// fileConfig holds operational defaults read from config.yml. Everything in
// it is optional; environment variables win.
type fileConfig struct {
	DefaultLocale string `yaml:"default_locale"`
	TemplatesDir  string `yaml:"templates_dir"`
	MigrationsDir string `yaml:"migrations_dir"`
	MetricsAddr   string `yaml:"metrics_addr"`
}

// Load reads configuration from config.yml (optional) and the environment,
// then validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI).
	_ = godotenv.Load()

	cfg := &Config{
		Token:         os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		GuildID:       os.Getenv("GUILD_ID"),
		OwnerID:       os.Getenv("BOT_OWNER_ID"),
		DefaultLocale: "en",
		TemplatesDir:  "templates",
		MigrationsDir: "migrations",
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yml"
	}
	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if fc.DefaultLocale != "" {
		c.DefaultLocale = fc.DefaultLocale
	}
	if fc.TemplatesDir != "" {
		c.TemplatesDir = fc.TemplatesDir
	}
	if fc.MigrationsDir != "" {
		c.MigrationsDir = fc.MigrationsDir
	}
	if fc.MetricsAddr != "" {
		c.MetricsAddr = fc.MetricsAddr
	}
	return nil
}

// validate applies all rules on the loaded configuration.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("config: DISCORD_TOKEN is required")
	}

	if strings.TrimSpace(c.DatabaseURL) == "" {
		// Useful local default when DATABASE_URL is not provided.
		c.DatabaseURL = "postgres://localhost:5432/eventbot?sslmode=disable"
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	for _, field := range []struct {
		name, value string
	}{
		{"GUILD_ID", c.GuildID},
		{"BOT_OWNER_ID", c.OwnerID},
	} {
		if field.value == "" {
			continue
		}
		for _, r := range field.value {
			if r < '0' || r > '9' {
				return fmt.Errorf("config: %s must be a Discord snowflake (digits only)", field.name)
			}
		}
	}
	return nil
}
