package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/company"
	"github.com/RobertVMill/tech-news-tracker/internal/feed"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig
	Clerk    ClerkConfig
	Database DatabaseConfig
	Feeds    FeedsConfig
}

type ServerConfig struct {
	Port           int
	HandlerTimeout time.Duration
}

type ClerkConfig struct {
	SecretKey string
}

type DatabaseConfig struct {
	URL string
}

type FeedsConfig struct {
	// Timeout bounds one outbound feed fetch.
	Timeout time.Duration
	// CompaniesFile optionally replaces the built-in company table.
	CompaniesFile string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           GetEnv("PORT", 8080).(int),
			HandlerTimeout: GetEnv("HANDLER_TIMEOUT", 30*time.Second).(time.Duration),
		},
		Clerk: ClerkConfig{
			SecretKey: GetEnv("CLERK_SECRET_KEY", "").(string),
		},
		Database: DatabaseConfig{
			URL: GetEnv("DATABASE_URL", "file:./data/technews.db").(string),
		},
		Feeds: FeedsConfig{
			Timeout:       GetEnv("FEED_TIMEOUT", 15*time.Second).(time.Duration),
			CompaniesFile: GetEnv("COMPANIES_CONFIG", "").(string),
		},
	}

	return cfg, nil
}

// Companies returns the feed source registry: the YAML file named by
// COMPANIES_CONFIG when set, the built-in table otherwise.
func (c *Config) Companies() (*company.Registry, error) {
	if c.Feeds.CompaniesFile == "" {
		return company.DefaultRegistry(), nil
	}
	companies, err := LoadCompanies(c.Feeds.CompaniesFile)
	if err != nil {
		return nil, err
	}
	return company.NewRegistry(companies), nil
}

// LoadCompanies reads a company table from a YAML file. Environment
// references in the file ($VAR) are expanded before parsing.
func LoadCompanies(path string) ([]company.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read companies file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var doc struct {
		Companies []company.Company `yaml:"companies"`
	}
	if err := yaml.Unmarshal([]byte(expanded), &doc); err != nil {
		return nil, fmt.Errorf("parse companies file %s: %w", path, err)
	}

	if err := validateCompanies(doc.Companies); err != nil {
		return nil, err
	}
	return doc.Companies, nil
}

func validateCompanies(companies []company.Company) error {
	if len(companies) == 0 {
		return fmt.Errorf("companies file defines no companies")
	}
	for i := range companies {
		c := &companies[i]
		if c.Slug == "" {
			return fmt.Errorf("company %d: slug is required", i)
		}
		if c.Name == "" {
			return fmt.Errorf("company %q: name is required", c.Slug)
		}
		if len(c.Sources) == 0 {
			return fmt.Errorf("company %q: at least one source is required", c.Slug)
		}
		for j := range c.Sources {
			src := &c.Sources[j]
			if err := validateSourceURL(c.Slug, src.URL); err != nil {
				return err
			}
			if src.ScrapeFallbackURL != "" {
				if err := validateSourceURL(c.Slug, src.ScrapeFallbackURL); err != nil {
					return err
				}
			}
			switch src.Kind {
			case "":
				src.Kind = feed.KindBlog
			case feed.KindBlog, feed.KindDeveloper:
			default:
				return fmt.Errorf("company %q: unknown source kind %q (valid: blog, developer)", c.Slug, src.Kind)
			}
		}
	}
	return nil
}

func validateSourceURL(slug, raw string) error {
	if raw == "" {
		return fmt.Errorf("company %q: source url is required", slug)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("company %q: invalid url: %w", slug, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("company %q: url scheme must be http or https, got %q", slug, u.Scheme)
	}
	return nil
}

func GetEnv(key string, defaultValue any) any {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch def := defaultValue.(type) {
	case string:
		return value
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		return def
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		return def
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
		return def
	default:
		panic(fmt.Sprintf("unsupported type %T", defaultValue))
	}
}
