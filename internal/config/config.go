package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime settings. Every field maps to one environment variable.
type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"APP_ENV"`
	AppName string `mapstructure:"APP_NAME"`

	DBHost        string `mapstructure:"DB_HOST"`
	DBPort        string `mapstructure:"DB_PORT"`
	DBUser        string `mapstructure:"DB_USER"`
	DBPassword    string `mapstructure:"DB_PASSWORD"`
	DBName        string `mapstructure:"DB_NAME"`
	DBSSLMode     string `mapstructure:"DB_SSLMODE"`
	DBMaxRetries  int    `mapstructure:"DB_MAX_RETRIES"`
	DBAutoMigrate bool   `mapstructure:"DB_AUTO_MIGRATE"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`

	KafkaBroker        string        `mapstructure:"KAFKA_BROKER"`
	KafkaGroupID       string        `mapstructure:"KAFKA_GROUP_ID"`
	OutboxPollInterval time.Duration `mapstructure:"OUTBOX_POLL_INTERVAL"`

	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	CookieSecure       bool   `mapstructure:"COOKIE_SECURE"`

	CategorySuggestionURL     string        `mapstructure:"CATEGORY_SUGGESTION_URL"`
	CategorySuggestionAPIKey  string        `mapstructure:"CATEGORY_SUGGESTION_API_KEY"`
	CategorySuggestionTimeout time.Duration `mapstructure:"CATEGORY_SUGGESTION_TIMEOUT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	NotifyEmails string `mapstructure:"NOTIFY_EMAILS"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWTExpirationHours) * time.Hour
}

// NotifyRecipients splits NOTIFY_EMAILS on commas, dropping blanks.
func (c *Config) NotifyRecipients() []string {
	var out []string
	for _, s := range strings.Split(c.NotifyEmails, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Load reads the environment, with an optional .env file for local runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	// AutomaticEnv only feeds Unmarshal for keys viper already knows about.
	for _, key := range keys() {
		_ = v.BindEnv(key)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "go-calypso")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "calypso")
	v.SetDefault("DB_PASSWORD", "calypso")
	v.SetDefault("DB_NAME", "calypso")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_ID", "calypso-notifier")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "2s")
	v.SetDefault("JWT_EXPIRATION_HOURS", 8)
	v.SetDefault("CATEGORY_SUGGESTION_TIMEOUT", "4s")
	v.SetDefault("SMTP_PORT", 587)
}

func keys() []string {
	return []string{
		"PORT", "APP_ENV", "APP_NAME",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_MAX_RETRIES", "DB_AUTO_MIGRATE",
		"REDIS_ADDR",
		"KAFKA_BROKER", "KAFKA_GROUP_ID", "OUTBOX_POLL_INTERVAL",
		"JWT_SECRET", "JWT_EXPIRATION_HOURS", "COOKIE_SECURE",
		"CATEGORY_SUGGESTION_URL", "CATEGORY_SUGGESTION_API_KEY", "CATEGORY_SUGGESTION_TIMEOUT",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "NOTIFY_EMAILS",
	}
}
