package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Email    EmailConfig    `mapstructure:"email"    validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
// Token lifetimes are configured here once; call sites never carry their own
// expiry literals.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// SessionTokenLifetimeMinutes is the validity window of session tokens
	// issued at login. Defaults to 30 days.
	SessionTokenLifetimeMinutes int `mapstructure:"session_token_lifetime_minutes" validate:"required,gt=0"`

	// VerificationTokenLifetimeMinutes is the validity window of the one-time
	// email verification tokens. Defaults to 72 hours.
	VerificationTokenLifetimeMinutes int `mapstructure:"verification_token_lifetime_minutes" validate:"required,gt=0"`

	// BcryptCost is the work factor for password hashing.
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"required,gte=4,lte=31"`
}

// EmailConfig contains the outbound mail settings for the SES-backed
// notification gateway and its async dispatcher.
type EmailConfig struct {
	Region        string `mapstructure:"region"          validate:"required"`
	Sender        string `mapstructure:"sender"          validate:"required,email"`
	VerifyBaseURL string `mapstructure:"verify_base_url" validate:"required,url"`

	QueueSize          int `mapstructure:"queue_size"           validate:"required,gt=0"`
	WorkerCount        int `mapstructure:"worker_count"         validate:"required,gt=0"`
	SendTimeoutSeconds int `mapstructure:"send_timeout_seconds" validate:"required,gt=0"`
}

// StorageConfig contains the object-storage settings for profile images.
type StorageConfig struct {
	Bucket    string `mapstructure:"bucket"     validate:"required"`
	Region    string `mapstructure:"region"     validate:"required"`
	KeyPrefix string `mapstructure:"key_prefix"`
}
