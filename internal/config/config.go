package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/claustro-app/claustro-api/internal/workload"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	NatsURL                string
	JWTSecret              string
	JWTExpiry              time.Duration
	ContentCacheTTL        time.Duration
	UploadMaxSizeMB        int
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	// Workload policy knobs, applied once at startup.
	TeachingNormHours      string
	CategoryTariffs        string
	DefaultTariff          string
	DirectTeachingPatterns string
	PregradPatterns        string
	PreparationPatterns    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CLAUSTRO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Claustro API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("content.cache_ttl", "5m")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("cloudinary.folder", "claustro/documents")
	v.SetDefault("policy.teaching_norm_hours", "114")
	v.SetDefault("policy.default_tariff", "70")

	expiry, err := time.ParseDuration(v.GetString("jwt.expiry"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt expiry: %w", err)
	}

	ttl, err := time.ParseDuration(v.GetString("content.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid content cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NatsURL:                v.GetString("nats.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTExpiry:              expiry,
		ContentCacheTTL:        ttl,
		UploadMaxSizeMB:        v.GetInt("upload.max_size_mb"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		TeachingNormHours:      v.GetString("policy.teaching_norm_hours"),
		CategoryTariffs:        v.GetString("policy.category_tariffs"),
		DefaultTariff:          v.GetString("policy.default_tariff"),
		DirectTeachingPatterns: v.GetString("policy.direct_teaching_patterns"),
		PregradPatterns:        v.GetString("policy.pregrad_patterns"),
		PreparationPatterns:    v.GetString("policy.preparation_patterns"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.UploadMaxSizeMB <= 0 {
		cfg.UploadMaxSizeMB = 10
	}

	return cfg, nil
}

// WorkloadPolicy builds the engine policy from configuration, falling back
// to the Resolution 32/2024 defaults for anything unset.
func (c Config) WorkloadPolicy() (workload.Policy, error) {
	policy := workload.DefaultPolicy()

	if c.TeachingNormHours != "" {
		norm, err := decimal.NewFromString(c.TeachingNormHours)
		if err != nil || !norm.IsPositive() {
			return workload.Policy{}, fmt.Errorf("invalid teaching norm hours %q", c.TeachingNormHours)
		}
		policy.TeachingNormHours = norm
	}

	if c.DefaultTariff != "" {
		tariff, err := decimal.NewFromString(c.DefaultTariff)
		if err != nil || tariff.IsNegative() {
			return workload.Policy{}, fmt.Errorf("invalid default tariff %q", c.DefaultTariff)
		}
		policy.DefaultTariff = tariff
	}

	if c.CategoryTariffs != "" {
		tariffs, err := parseTariffPairs(c.CategoryTariffs)
		if err != nil {
			return workload.Policy{}, err
		}
		policy.TariffByCategory = tariffs
	}

	return policy, nil
}

// ClassifyPatterns builds the name-classification patterns used when seeding
// activity types from legacy free-text names.
func (c Config) ClassifyPatterns() workload.ClassifyPatterns {
	patterns := workload.DefaultClassifyPatterns()
	if c.DirectTeachingPatterns != "" {
		patterns.DirectTeaching = splitList(c.DirectTeachingPatterns)
	}
	if c.PregradPatterns != "" {
		patterns.Pregrad = splitList(c.PregradPatterns)
	}
	if c.PreparationPatterns != "" {
		patterns.Preparation = splitList(c.PreparationPatterns)
	}
	return patterns
}

// parseTariffPairs parses "Titular=150,Auxiliar=118" style pairs.
func parseTariffPairs(raw string) (map[string]decimal.Decimal, error) {
	tariffs := make(map[string]decimal.Decimal)
	for _, pair := range splitList(raw) {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid tariff pair %q", pair)
		}
		tariff, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil || tariff.IsNegative() {
			return nil, fmt.Errorf("invalid tariff for category %q", name)
		}
		tariffs[strings.TrimSpace(name)] = tariff
	}
	return tariffs, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
