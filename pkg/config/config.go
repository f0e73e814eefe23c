package config

import (
	"time"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
)

// Configuration keys. Each key is also a flag name and, upper-cased with the
// MSSQL_INIT_ prefix and dashes replaced by underscores, an environment variable.
const (
	KeyHost                   = "host"
	KeyPort                   = "port"
	KeyAdminUser              = "admin-user"
	KeyAdminPassword          = "admin-password"
	KeyAdminDatabase          = "admin-database"
	KeyDatabase               = "database"
	KeyLogin                  = "login"
	KeyLoginPassword          = "login-password"
	KeyRole                   = "role"
	KeyWarmup                 = "warmup"
	KeyMaxAttempts            = "max-attempts"
	KeyRetryDelay             = "retry-delay"
	KeyConnectTimeout         = "connect-timeout"
	KeyEncrypt                = "encrypt"
	KeyTrustServerCertificate = "trust-server-certificate"
	KeyDriver                 = "driver"
	KeyContainer              = "container"
	KeyVerify                 = "verify"
)

// Config holds every setting of a run.
type Config struct {
	Host          string `mapstructure:"host"           json:"host"`
	Port          int    `mapstructure:"port"           json:"port"`
	AdminUser     string `mapstructure:"admin-user"     json:"adminUser"`
	AdminPassword string `mapstructure:"admin-password" json:"-"`
	AdminDatabase string `mapstructure:"admin-database" json:"adminDatabase"`

	Database      string `mapstructure:"database"       json:"database"`
	Login         string `mapstructure:"login"          json:"login"`
	LoginPassword string `mapstructure:"login-password" json:"-"`
	Role          string `mapstructure:"role"           json:"role"`

	Warmup         time.Duration `mapstructure:"warmup"          json:"warmup"`
	MaxAttempts    int           `mapstructure:"max-attempts"    json:"maxAttempts"`
	RetryDelay     time.Duration `mapstructure:"retry-delay"     json:"retryDelay"`
	ConnectTimeout time.Duration `mapstructure:"connect-timeout" json:"connectTimeout"`

	Encrypt                string `mapstructure:"encrypt"                  json:"encrypt"`
	TrustServerCertificate bool   `mapstructure:"trust-server-certificate" json:"trustServerCertificate"`

	// Driver is the database/sql driver name.
	Driver string `mapstructure:"driver" json:"driver"`
	// Container, when set, is the Docker container whose published port is used.
	Container string `mapstructure:"container" json:"container,omitempty"`
	Verify    bool   `mapstructure:"verify"    json:"verify"`
}

// Default returns the fixture defaults.
func Default() Config {
	opts := provisioner.DefaultOptions()

	return Config{
		Host:                   opts.Host,
		Port:                   opts.Port,
		AdminUser:              opts.AdminUser,
		AdminPassword:          opts.AdminPassword,
		AdminDatabase:          opts.AdminDatabase,
		Database:               opts.Database,
		Login:                  opts.Login,
		LoginPassword:          opts.LoginPassword,
		Role:                   opts.Role,
		Warmup:                 opts.Warmup,
		MaxAttempts:            opts.MaxAttempts,
		RetryDelay:             opts.RetryDelay,
		ConnectTimeout:         opts.ConnectTimeout,
		Encrypt:                opts.Encrypt,
		TrustServerCertificate: opts.TrustServerCertificate,
		Driver:                 mssql.DriverName,
	}
}

// defaults maps every key to its default value.
func defaults() map[string]any {
	cfg := Default()

	return map[string]any{
		KeyHost:                   cfg.Host,
		KeyPort:                   cfg.Port,
		KeyAdminUser:              cfg.AdminUser,
		KeyAdminPassword:          cfg.AdminPassword,
		KeyAdminDatabase:          cfg.AdminDatabase,
		KeyDatabase:               cfg.Database,
		KeyLogin:                  cfg.Login,
		KeyLoginPassword:          cfg.LoginPassword,
		KeyRole:                   cfg.Role,
		KeyWarmup:                 cfg.Warmup,
		KeyMaxAttempts:            cfg.MaxAttempts,
		KeyRetryDelay:             cfg.RetryDelay,
		KeyConnectTimeout:         cfg.ConnectTimeout,
		KeyEncrypt:                cfg.Encrypt,
		KeyTrustServerCertificate: cfg.TrustServerCertificate,
		KeyDriver:                 cfg.Driver,
		KeyContainer:              cfg.Container,
		KeyVerify:                 cfg.Verify,
	}
}
