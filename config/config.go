package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	Env               string   `mapstructure:"ENV"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TimeZone          string   `mapstructure:"TIMEZONE"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisJobsDB   int    `mapstructure:"REDIS_JOBS_DB"`

	// Outbound email.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`
	SMTPImplicit bool   `mapstructure:"SMTP_IMPLICIT_TLS"`

	// Firebase.
	FirebaseCredentialsFile string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseBucket          string        `mapstructure:"FIREBASE_BUCKET"`
	SessionTTL              time.Duration `mapstructure:"SESSION_TTL"`

	// Attachment storage: "firebase" or "cloudinary".
	StorageBackend      string `mapstructure:"STORAGE_BACKEND"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Admin ops tokens.
	AdminJWTSecret string `mapstructure:"ADMIN_JWT_SECRET"`

	// Domain tunables.
	ChatEditWindow        time.Duration `mapstructure:"CHAT_EDIT_WINDOW"`
	NotificationRetention time.Duration `mapstructure:"NOTIFICATION_RETENTION"`
	ReminderSchedule      string        `mapstructure:"REMINDER_SCHEDULE"`
	PurgeSchedule         string        `mapstructure:"PURGE_SCHEDULE"`
	WatchEntityChanges    bool          `mapstructure:"WATCH_ENTITY_CHANGES"`
}

// Load reads config.yaml from "." or "./config", then environment variables,
// then defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	// Automatically use environment variables where available.
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "lexdesk")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_JOBS_DB", 1)
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "no-reply@lexdesk.local")
	v.SetDefault("SMTP_FROM_NAME", "LexDesk")
	v.SetDefault("SMTP_IMPLICIT_TLS", false)
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "config/serviceAccountKey.json")
	v.SetDefault("FIREBASE_BUCKET", "")
	v.SetDefault("SESSION_TTL", 5*24*time.Hour)
	v.SetDefault("STORAGE_BACKEND", "firebase")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("ADMIN_JWT_SECRET", "")
	v.SetDefault("CHAT_EDIT_WINDOW", 15*time.Minute)
	v.SetDefault("NOTIFICATION_RETENTION", 15*24*time.Hour)
	v.SetDefault("REMINDER_SCHEDULE", "@every 24h")
	v.SetDefault("PURGE_SCHEDULE", "@every 168h")
	v.SetDefault("WATCH_ENTITY_CHANGES", true)
}

// IsProduction reports whether the app runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves TIMEZONE, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("invalid TIMEZONE %q, using UTC: %v", c.TimeZone, err)
		return time.UTC
	}
	return loc
}
