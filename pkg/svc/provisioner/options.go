package provisioner

import (
	"fmt"
	"time"

	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/jinzhu/copier"
)

// Default fixture values.
const (
	DefaultHost           = "localhost"
	DefaultAdminUser      = "SA"
	DefaultAdminPassword  = "TestPass123!"
	DefaultAdminDatabase  = "master"
	DefaultDatabase       = "testdb"
	DefaultLogin          = "testuser"
	DefaultLoginPassword  = "testpass"
	DefaultRole           = "db_owner"
	DefaultWarmup         = 20 * time.Second
	DefaultMaxAttempts    = 30
	DefaultRetryDelay     = 3 * time.Second
	DefaultConnectTimeout = 5 * time.Second
	DefaultEncrypt        = "false"
)

// Options holds every value a run depends on.
type Options struct {
	Host          string
	Port          int
	AdminUser     string
	AdminPassword string
	AdminDatabase string

	Database      string
	Login         string
	LoginPassword string
	Role          string

	Warmup         time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration

	Encrypt                string
	TrustServerCertificate bool

	// Verify connects as the provisioned login after the grant.
	Verify bool
}

// DefaultOptions returns the fixture defaults.
func DefaultOptions() Options {
	return Options{
		Host:                   DefaultHost,
		Port:                   mssql.DefaultPort,
		AdminUser:              DefaultAdminUser,
		AdminPassword:          DefaultAdminPassword,
		AdminDatabase:          DefaultAdminDatabase,
		Database:               DefaultDatabase,
		Login:                  DefaultLogin,
		LoginPassword:          DefaultLoginPassword,
		Role:                   DefaultRole,
		Warmup:                 DefaultWarmup,
		MaxAttempts:            DefaultMaxAttempts,
		RetryDelay:             DefaultRetryDelay,
		ConnectTimeout:         DefaultConnectTimeout,
		Encrypt:                DefaultEncrypt,
		TrustServerCertificate: true,
	}
}

// NewOptions copies the identically named fields of src onto Options.
// src is typically the loaded configuration struct.
func NewOptions(src any) (Options, error) {
	var opts Options

	err := copier.Copy(&opts, src)
	if err != nil {
		return Options{}, fmt.Errorf("copy options: %w", err)
	}

	return opts, nil
}

// AdminTarget is the administrative connection to the administrative catalog.
func (o Options) AdminTarget() mssql.Target {
	return mssql.Target{
		Host:                   o.Host,
		Port:                   o.Port,
		User:                   o.AdminUser,
		Password:               o.AdminPassword,
		Database:               o.AdminDatabase,
		Timeout:                o.ConnectTimeout,
		Encrypt:                o.Encrypt,
		TrustServerCertificate: o.TrustServerCertificate,
	}
}

// AccountTarget is the provisioned login connecting to the provisioned database.
func (o Options) AccountTarget() mssql.Target {
	return o.AdminTarget().
		WithCredentials(o.Login, o.LoginPassword).
		WithDatabase(o.Database)
}
