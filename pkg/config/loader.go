package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	viper.BindEnv("nats.url", "NATS_URL", "APP_NATS_URL")
	viper.BindEnv("rabbitmq.url", "RABBITMQ_URL", "APP_RABBITMQ_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET", "APP_JWT_SECRET")
	viper.BindEnv("classifier.provider", "AI_PROVIDER", "APP_CLASSIFIER_PROVIDER")
	viper.BindEnv("classifier.api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY", "APP_CLASSIFIER_API_KEY")
	viper.BindEnv("email.api_key", "SENDGRID_API_KEY")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// env vars only
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(cfg.Hotel.RoomTypes) == 0 {
		cfg.Hotel.RoomTypes = DefaultRoomTypes()
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "concierge-ai")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("hotel.name", "Grand Plaza Hotel")
	viper.SetDefault("hotel.check_in_time", "14:00")
	viper.SetDefault("hotel.check_out_time", "11:00")
	viper.SetDefault("hotel.tax_rate", 0.12)
	viper.SetDefault("hotel.default_region", "IN")

	viper.SetDefault("classifier.provider", "none")
	viper.SetDefault("classifier.model", "claude-sonnet-4-20250514")
	viper.SetDefault("classifier.timeout", 5*time.Second)
	viper.SetDefault("classifier.max_tokens", 100)

	viper.SetDefault("dialogue.default_language", "en")
	viper.SetDefault("dialogue.supported_languages",
		[]string{"en", "hi", "ta", "te", "kn", "ru", "fr", "de", "es"})
	viper.SetDefault("dialogue.min_language_confidence", 0.6)
	viper.SetDefault("dialogue.min_entity_confidence", 0.6)
	viper.SetDefault("dialogue.intent_override_threshold", 0.85)
	viper.SetDefault("dialogue.max_intent_stack_depth", 3)
	viper.SetDefault("dialogue.max_turns", 50)
	viper.SetDefault("dialogue.idle_timeout", 30*time.Minute)

	viper.SetDefault("redis.session_ttl", time.Hour)
	viper.SetDefault("nats.turn_subject", "concierge.turns")
	viper.SetDefault("rabbitmq.exchange", "concierge")

	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", time.Minute)
	viper.SetDefault("circuit_breaker.timeout", 30*time.Second)
	viper.SetDefault("circuit_breaker.failure_threshold", 0.6)

	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.max_requests", 60)
	viper.SetDefault("rate_limiting.window", time.Minute)
}
