package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	StorageLocal      = "local"
	StorageCloudinary = "cloudinary"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName             string
	AppEnv              string
	AppPort             string
	DatabaseURL         string
	RedisURL            string
	SessionSecret       string
	SessionTTL          time.Duration
	SessionRememberTTL  time.Duration
	UploadRoot          string
	MaxUploadMB         int
	StorageBackend      string
	RecaptchaSecret     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
	DashboardCacheTTL   time.Duration
	ContactDedupeTTL    time.Duration
	DefaultPageSize     int
	NotificationLimit   int
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
	v.SetEnvPrefix("SEKOLAH")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Sekolah CMS API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.remember_ttl", "168h")
	v.SetDefault("upload.root", "static/images")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("storage.backend", StorageLocal)
	v.SetDefault("cloudinary.folder", "sekolah/uploads")
	v.SetDefault("dashboard.cache_ttl", "1m")
	v.SetDefault("contact.dedupe_ttl", "5m")
	v.SetDefault("page.size", 5)
	v.SetDefault("notification.limit", 3)

	sessionTTL, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	rememberTTL, err := time.ParseDuration(v.GetString("session.remember_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session remember ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	dedupeTTL, err := time.ParseDuration(v.GetString("contact.dedupe_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid contact dedupe ttl: %w", err)
	}

	cfg := Config{
		AppName:             v.GetString("app.name"),
		AppEnv:              v.GetString("app.env"),
		AppPort:             v.GetString("app.port"),
		DatabaseURL:         v.GetString("database.url"),
		RedisURL:            v.GetString("redis.url"),
		SessionSecret:       v.GetString("session.secret"),
		SessionTTL:          sessionTTL,
		SessionRememberTTL:  rememberTTL,
		UploadRoot:          v.GetString("upload.root"),
		MaxUploadMB:         v.GetInt("upload.max_mb"),
		StorageBackend:      strings.ToLower(v.GetString("storage.backend")),
		RecaptchaSecret:     v.GetString("recaptcha.secret"),
		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
		DashboardCacheTTL:   cacheTTL,
		ContactDedupeTTL:    dedupeTTL,
		DefaultPageSize:     v.GetInt("page.size"),
		NotificationLimit:   v.GetInt("notification.limit"),
	}

	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("session secret must be provided")
	}

	if cfg.StorageBackend != StorageLocal && cfg.StorageBackend != StorageCloudinary {
		return Config{}, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 5
	}

	if cfg.NotificationLimit <= 0 {
		cfg.NotificationLimit = 3
	}

	return cfg, nil
}
