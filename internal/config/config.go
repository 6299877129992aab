package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values
const (
	DefaultPort              = "8080"
	DefaultMySQLPort         = "3306"
	DefaultRedisPort         = "6379"
	DefaultConnectRetries    = 5
	DefaultConnectRetryDelay = 2 * time.Second
	DefaultNotifyExchange    = "shop.exchange"
	DefaultSessionCookie     = "session_cookie_name"
	DefaultSessionTTL        = 24 * time.Hour
	DefaultUploadDir         = "./uploads"
	DefaultReconcileInterval = time.Minute
	DefaultReconcileGrace    = 30 * time.Second
)

type MySQLConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Database string

	ConnectRetries    int
	ConnectRetryDelay time.Duration
	MaxOpenConns      int
	MaxIdleConns      int
	ConnMaxLifetime   time.Duration
	ConnMaxIdleTime   time.Duration
}

// DSN builds the go-sql-driver DSN. Times are stored and read as UTC so the
// reservation window compares like with like.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

type Config struct {
	Env  string
	Port string

	MySQL MySQLConfig

	RedisAddr      string
	RabbitMQURL    string
	NotifyExchange string

	MailFrom string
	MailCc   string

	SessionCookie string
	SessionTTL    time.Duration
	SecureCookie  bool
	CORSOrigin    string

	UploadDir string

	ReconcileInterval time.Duration
	ReconcileGrace    time.Duration
}

func (c *Config) Development() bool { return c.Env == "development" }

// FromEnv reads the process environment, falling back to defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:  getenv("APP_ENV", "production"),
		Port: getenv("PORT", DefaultPort),
		MySQL: MySQLConfig{
			User:              os.Getenv("MYSQL_USER"),
			Password:          os.Getenv("MYSQL_PASSWORD"),
			Host:              getenv("MYSQL_HOST", "localhost"),
			Port:              getenv("MYSQL_PORT", DefaultMySQLPort),
			Database:          os.Getenv("MYSQL_DATABASE"),
			ConnectRetries:    DefaultConnectRetries,
			ConnectRetryDelay: DefaultConnectRetryDelay,
			MaxOpenConns:      100,
			MaxIdleConns:      20,
			ConnMaxLifetime:   5 * time.Minute,
			ConnMaxIdleTime:   time.Minute,
		},
		RedisAddr:         getenv("REDIS_HOST", "localhost") + ":" + getenv("REDIS_PORT", DefaultRedisPort),
		RabbitMQURL:       os.Getenv("RABBITMQ_URL"),
		NotifyExchange:    getenv("NOTIFY_EXCHANGE", DefaultNotifyExchange),
		MailFrom:          os.Getenv("MAIL_FROM"),
		MailCc:            os.Getenv("MAIL_CC"),
		SessionCookie:     getenv("SESSION_COOKIE", DefaultSessionCookie),
		SessionTTL:        DefaultSessionTTL,
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
		UploadDir:         getenv("UPLOAD_DIR", DefaultUploadDir),
		ReconcileInterval: DefaultReconcileInterval,
		ReconcileGrace:    DefaultReconcileGrace,
	}

	var err error
	if cfg.MySQL.ConnectRetries, err = getint("DB_CONNECT_RETRIES", cfg.MySQL.ConnectRetries); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getduration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.ReconcileInterval, err = getduration("RECONCILE_INTERVAL", cfg.ReconcileInterval); err != nil {
		return nil, err
	}
	cfg.SecureCookie = !cfg.Development()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if c.MySQL.User == "" {
		return fmt.Errorf("MYSQL_USER is required")
	}
	if c.MySQL.Database == "" {
		return fmt.Errorf("MYSQL_DATABASE is required")
	}
	if c.MySQL.ConnectRetries < 1 {
		return fmt.Errorf("DB_CONNECT_RETRIES must be at least 1")
	}
	if c.ReconcileInterval <= 0 {
		return fmt.Errorf("RECONCILE_INTERVAL must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
