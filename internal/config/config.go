package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	Triage    TriageConfig
	Lifecycle LifecycleConfig
	CORS      CORSConfig
	Queue     QueueConfig
	Email     EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider        string `mapstructure:"provider"`
	Region          string `mapstructure:"region"`
	FromAddress     string `mapstructure:"from_address"`
	FromName        string `mapstructure:"from_name"`
	ReviewerAddress string `mapstructure:"reviewer_address"`
	FrontendURL     string `mapstructure:"frontend_url"`
}

// QueueConfig holds re-triage queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
	TimeoutSecs      int `mapstructure:"timeout_secs"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TriageConfig holds content triage settings. An empty APIKey means the remote
// classifier is not configured.
type TriageConfig struct {
	Mode         string `mapstructure:"mode"`
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	Endpoint     string `mapstructure:"endpoint"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// Bypass reports whether triage runs in bypass mode. "test" is accepted as an
// alias so CI environments can keep their existing value.
func (t *TriageConfig) Bypass() bool {
	switch strings.ToLower(strings.TrimSpace(t.Mode)) {
	case "bypass", "test":
		return true
	default:
		return false
	}
}

// LifecycleConfig selects the stage rule set version.
type LifecycleConfig struct {
	RuleSet string `mapstructure:"rule_set"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	// MigrationsPath is a golang-migrate source URL.
	MigrationsPath string `mapstructure:"migrations_path"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds the settings used to verify access tokens issued by the
// hosted auth service.
type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional .env file and environment
// variables with the LOCALI_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config.Load: ignoring .env: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOCALI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "locali")
	v.SetDefault("db.password", "locali_secret")
	v.SetDefault("db.name", "locali_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.migrations_path", "file://db/migrations")

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "authenticated")

	// S3 defaults
	v.SetDefault("s3.region", "ap-southeast-2")
	v.SetDefault("s3.bucket", "locali-media")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 5)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Triage defaults
	v.SetDefault("triage.mode", "live")
	v.SetDefault("triage.provider", "openai")
	v.SetDefault("triage.api_key", "")
	v.SetDefault("triage.default_model", "")
	v.SetDefault("triage.endpoint", "")
	v.SetDefault("triage.timeout_secs", 20)

	// Lifecycle defaults
	v.SetDefault("lifecycle.rule_set", "v1")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 4)
	v.SetDefault("queue.timeout_secs", 60)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-southeast-2")
	v.SetDefault("email.from_address", "noreply@locali.app")
	v.SetDefault("email.from_name", "Locali")
	v.SetDefault("email.reviewer_address", "review@locali.app")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "LOCALI_SERVER_PORT",
		"server.read_timeout":      "LOCALI_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "LOCALI_SERVER_WRITE_TIMEOUT",
		"server.environment":       "LOCALI_SERVER_ENVIRONMENT",
		"db.host":                  "LOCALI_DB_HOST",
		"db.port":                  "LOCALI_DB_PORT",
		"db.user":                  "LOCALI_DB_USER",
		"db.password":              "LOCALI_DB_PASSWORD",
		"db.name":                  "LOCALI_DB_NAME",
		"db.sslmode":               "LOCALI_DB_SSLMODE",
		"db.max_open":              "LOCALI_DB_MAX_OPEN",
		"db.max_idle":              "LOCALI_DB_MAX_IDLE",
		"db.migrations_path":       "LOCALI_DB_MIGRATIONS_PATH",
		"jwt.secret":               "LOCALI_JWT_SECRET",
		"jwt.issuer":               "LOCALI_JWT_ISSUER",
		"jwt.audience":             "LOCALI_JWT_AUDIENCE",
		"s3.region":                "LOCALI_S3_REGION",
		"s3.bucket":                "LOCALI_S3_BUCKET",
		"s3.endpoint":              "LOCALI_S3_ENDPOINT",
		"s3.access_key":            "LOCALI_S3_ACCESS_KEY",
		"s3.secret_key":            "LOCALI_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "LOCALI_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "LOCALI_S3_PRESIGN_EXPIRY",
		"log.level":                "LOCALI_LOG_LEVEL",
		"log.format":               "LOCALI_LOG_FORMAT",
		"cors.allowed_origins":     "LOCALI_CORS_ALLOWED_ORIGINS",
		"triage.mode":              "LOCALI_TRIAGE_MODE",
		"triage.provider":          "LOCALI_TRIAGE_PROVIDER",
		"triage.api_key":           "LOCALI_TRIAGE_API_KEY",
		"triage.default_model":     "LOCALI_TRIAGE_DEFAULT_MODEL",
		"triage.endpoint":          "LOCALI_TRIAGE_ENDPOINT",
		"triage.timeout_secs":      "LOCALI_TRIAGE_TIMEOUT_SECS",
		"lifecycle.rule_set":       "LOCALI_LIFECYCLE_RULE_SET",
		"queue.poll_interval_secs": "LOCALI_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "LOCALI_QUEUE_CONCURRENCY",
		"queue.timeout_secs":       "LOCALI_QUEUE_TIMEOUT_SECS",
		"email.provider":           "LOCALI_EMAIL_PROVIDER",
		"email.region":             "LOCALI_EMAIL_REGION",
		"email.from_address":       "LOCALI_EMAIL_FROM_ADDRESS",
		"email.from_name":          "LOCALI_EMAIL_FROM_NAME",
		"email.reviewer_address":   "LOCALI_EMAIL_REVIEWER_ADDRESS",
		"email.frontend_url":       "LOCALI_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if LOCALI_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("LOCALI_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),

		MigrationsPath: v.GetString("db.migrations_path"),
	}
	cfg.JWT = JWTConfig{
		Secret:   v.GetString("jwt.secret"),
		Issuer:   v.GetString("jwt.issuer"),
		Audience: v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Triage = TriageConfig{
		Mode:         v.GetString("triage.mode"),
		Provider:     v.GetString("triage.provider"),
		APIKey:       v.GetString("triage.api_key"),
		DefaultModel: v.GetString("triage.default_model"),
		Endpoint:     v.GetString("triage.endpoint"),
		TimeoutSecs:  v.GetInt("triage.timeout_secs"),
	}
	cfg.Lifecycle = LifecycleConfig{
		RuleSet: v.GetString("lifecycle.rule_set"),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		Concurrency:      v.GetInt("queue.concurrency"),
		TimeoutSecs:      v.GetInt("queue.timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:        v.GetString("email.provider"),
		Region:          v.GetString("email.region"),
		FromAddress:     v.GetString("email.from_address"),
		FromName:        v.GetString("email.from_name"),
		ReviewerAddress: v.GetString("email.reviewer_address"),
		FrontendURL:     v.GetString("email.frontend_url"),
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
