package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Busy-timeline cache.
	TimelineCacheTTLSeconds int `mapstructure:"TIMELINE_CACHE_TTL_SECONDS"`

	// Suggestion scoring policy.
	PreferredHoursStart     int     `mapstructure:"PREFERRED_HOURS_START"`
	PreferredHoursEnd       int     `mapstructure:"PREFERRED_HOURS_END"`
	PreferredHoursBonus     float64 `mapstructure:"PREFERRED_HOURS_BONUS"`
	OptionalAttendeePenalty float64 `mapstructure:"OPTIONAL_ATTENDEE_PENALTY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("TIMELINE_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("PREFERRED_HOURS_START", 9)
	viper.SetDefault("PREFERRED_HOURS_END", 17)
	viper.SetDefault("PREFERRED_HOURS_BONUS", 0.05)
	viper.SetDefault("OPTIONAL_ATTENDEE_PENALTY", 0.15)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// TimelineCacheTTL returns the configured busy-timeline cache lifetime.
func TimelineCacheTTL() time.Duration {
	return time.Duration(AppConfig.TimelineCacheTTLSeconds) * time.Second
}
