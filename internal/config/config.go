package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every external knob the service needs. It is built once in
// main and passed by reference to the components that use it.
type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	JWTSecret     string `envconfig:"JWT_SECRET_KEY" required:"true"`
	JWTExpiration int64  `envconfig:"JWT_EXPIRATION_HOURS" default:"24"`

	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY" required:"true"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID" required:"true"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN" required:"true"`
	TwilioFromNumber string `envconfig:"TWILIO_PHONE_NUMBER" required:"true"`
	// Prefixed onto recipient numbers that lack a leading "+".
	SMSCountryCode string `envconfig:"SMS_COUNTRY_CODE" default:"+91"`
	// Recipient for the GET /test_sms diagnostic endpoint.
	TestSMSRecipient string `envconfig:"TEST_SMS_RECIPIENT" default:"+916309408139"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
