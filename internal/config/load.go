package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Load reads configuration from an optional config file and from environment
// variables. Environment variables use the FITSTRIDE_ prefix with underscores
// for nesting (e.g. FITSTRIDE_DATABASE_URL, FITSTRIDE_AUTH_JWT_SECRET) and
// take precedence over file values. Returns a validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.session_token_lifetime_minutes", 30*24*60)
	v.SetDefault("auth.verification_token_lifetime_minutes", 72*60)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("email.queue_size", 100)
	v.SetDefault("email.worker_count", 2)
	v.SetDefault("email.send_timeout_seconds", 10)

	// Optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing file is fine; environment variables may carry everything.
	}

	// Environment variables override file values
	v.SetEnvPrefix("FITSTRIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// viper.Unmarshal does not see env-only keys unless they are bound, so
	// bind the known keys explicitly.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.session_token_lifetime_minutes",
		"auth.verification_token_lifetime_minutes", "auth.bcrypt_cost",
		"email.region", "email.sender", "email.verify_base_url",
		"email.queue_size", "email.worker_count", "email.send_timeout_seconds",
		"storage.bucket", "storage.region", "storage.key_prefix",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
