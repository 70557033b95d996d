package config

import (
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/skserveur/storefront/pkg/logger"
)

var config *Config

// Config holds every env-driven setting of the storefront. Only this struct
// may be used to read configuration, no direct os.Getenv access elsewhere.
type Config struct {
	AppEnv  string `env:"APP_ENV" default:"dev"`
	AppName string `env:"APP_NAME" default:"storefront"`

	HttpListenAddr string `env:"HTTP_LISTEN_ADDR" default:":8080"`

	PostgresReadHost     string `env:"POSTGRES_READ_HOST"`
	PostgresReadPort     string `env:"POSTGRES_READ_PORT"`
	PostgresReadUser     string `env:"POSTGRES_READ_USER"`
	PostgresReadPassword string `env:"POSTGRES_READ_PASSWORD"`
	PostgresReadDatabase string `env:"POSTGRES_READ_DBNAME"`

	PostgresWriteHost     string `env:"POSTGRES_WRITE_HOST"`
	PostgresWritePort     string `env:"POSTGRES_WRITE_PORT"`
	PostgresWriteUser     string `env:"POSTGRES_WRITE_USER"`
	PostgresWritePassword string `env:"POSTGRES_WRITE_PASSWORD"`
	PostgresWriteDatabase string `env:"POSTGRES_WRITE_DBNAME"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	SessionTTL time.Duration `env:"SESSION_TTL" default:"24h"`

	PromNamespace string `env:"PROM_NAMESPACE"`

	// MailDriver selects "smtp", "relay" or "log".
	MailDriver   string `env:"MAIL_DRIVER" default:"log"`
	SmtpHost     string `env:"SMTP_HOST"`
	SmtpPort     string `env:"SMTP_PORT" default:"587"`
	SmtpUser     string `env:"SMTP_USER"`
	SmtpPassword string `env:"SMTP_PASSWORD"`
	SmtpFrom     string `env:"SMTP_FROM"`

	MailRelayPrimaryUrl string `env:"MAIL_RELAY_PRIMARY_URL"`
	MailRelayBackupUrl  string `env:"MAIL_RELAY_BACKUP_URL"`
	MailWorkers         int    `env:"MAIL_WORKERS" default:"2"`
	MailQueueSize       int    `env:"MAIL_QUEUE_SIZE" default:"256"`

	// AdminEmail receives the "new order" notification.
	AdminEmail string `env:"ADMIN_EMAIL"`

	// Bootstrap admin account, seeded idempotently at startup when both
	// username and password are present.
	BootstrapAdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME"`
	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	c := &Config{}
	var err error
	if path != "" {
		logger.Info("trying to publish env from file", "path", path)
		err = godotenv.Load(path)
		if err != nil {
			return errors.New("failed to load configuration file " + path + " error: " + err.Error())
		}
	}

	_, err = env.UnmarshalFromEnviron(c)
	if err != nil {
		return errors.New("failed to map env variables to Configuration object " + " error: " + err.Error())
	}

	config = c
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

// Set overrides the loaded configuration. Tests only.
func Set(c *Config) {
	config = c
}
