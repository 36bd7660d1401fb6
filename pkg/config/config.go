package config

import "time"

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Hotel          HotelConfig          `mapstructure:"hotel"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	NATS           NATSConfig           `mapstructure:"nats"`
	RabbitMQ       RabbitMQConfig       `mapstructure:"rabbitmq"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	Classifier     ClassifierConfig     `mapstructure:"classifier"`
	Dialogue       DialogueConfig       `mapstructure:"dialogue"`
	Email          EmailConfig          `mapstructure:"email"`
	OpenTelemetry  OpenTelemetryConfig  `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig     `mapstructure:"prometheus"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	RateLimiting   RateLimitingConfig   `mapstructure:"rate_limiting"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	CORS           CORSConfig           `mapstructure:"cors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HotelConfig struct {
	Name               string                    `mapstructure:"name"`
	CheckInTime        string                    `mapstructure:"check_in_time"`
	CheckOutTime       string                    `mapstructure:"check_out_time"`
	TaxRate            float64                   `mapstructure:"tax_rate"`
	RoomTypes          map[string]RoomTypeConfig `mapstructure:"room_types"`
	DefaultRegion      string                    `mapstructure:"default_region"`
	ConfirmationEmails bool                      `mapstructure:"confirmation_emails"`
}

type RoomTypeConfig struct {
	Name      string   `mapstructure:"name"`
	Price     float64  `mapstructure:"price"`
	Capacity  int      `mapstructure:"capacity"`
	Amenities []string `mapstructure:"amenities"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	URL         string        `mapstructure:"url"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	// SessionTTL bounds how long an idle session survives in the store
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	TurnSubject   string        `mapstructure:"turn_subject"`
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type JWTConfig struct {
	Secret   string        `mapstructure:"secret"`
	Issuer   string        `mapstructure:"issuer"`
	Duration time.Duration `mapstructure:"duration"`
}

// ClassifierConfig configures the assisted fallback tier
type ClassifierConfig struct {
	// Provider selects the fallback implementation: anthropic, openai, none
	Provider  string        `mapstructure:"provider"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxTokens int           `mapstructure:"max_tokens"`
}

// DialogueConfig holds the engine's policy knobs
type DialogueConfig struct {
	DefaultLanguage    string        `mapstructure:"default_language"`
	SupportedLanguages []string      `mapstructure:"supported_languages"`
	// MinLanguageConfidence gates the statistical detection fallback
	MinLanguageConfidence float64 `mapstructure:"min_language_confidence"`
	// MinEntityConfidence drops extractions below this before merging
	MinEntityConfidence float64 `mapstructure:"min_entity_confidence"`
	// IntentOverrideThreshold is the confidence a new intent needs to
	// interrupt an active flow mid-conversation
	IntentOverrideThreshold float64       `mapstructure:"intent_override_threshold"`
	MaxIntentStackDepth     int           `mapstructure:"max_intent_stack_depth"`
	MaxTurns                int           `mapstructure:"max_turns"`
	IdleTimeout             time.Duration `mapstructure:"idle_timeout"`
}

type EmailConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	From         string `mapstructure:"from"`
	FromName     string `mapstructure:"from_name"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	ServiceName string       `mapstructure:"service_name"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
}

type JaegerConfig struct {
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerParam float64 `mapstructure:"sampler_param"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitingConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age"`
}

// DefaultRoomTypes mirrors the hotel's standing inventory; used when no
// config file overrides the catalog.
func DefaultRoomTypes() map[string]RoomTypeConfig {
	return map[string]RoomTypeConfig{
		"single": {
			Name:      "Single Room",
			Price:     1500,
			Capacity:  1,
			Amenities: []string{"WiFi", "TV", "AC"},
		},
		"double": {
			Name:      "Double Room",
			Price:     2500,
			Capacity:  2,
			Amenities: []string{"WiFi", "TV", "AC", "Mini Bar"},
		},
		"deluxe": {
			Name:      "Deluxe Room",
			Price:     3500,
			Capacity:  2,
			Amenities: []string{"WiFi", "Smart TV", "AC", "Mini Bar", "Balcony"},
		},
		"suite": {
			Name:      "Executive Suite",
			Price:     5500,
			Capacity:  4,
			Amenities: []string{"WiFi", "Smart TV", "AC", "Mini Bar", "Balcony", "Living Room"},
		},
	}
}
