package config

import (
	"github.com/spf13/pflag"
)

// AddFlags registers one flag per configuration key with its default value.
func AddFlags(flags *pflag.FlagSet) {
	cfg := Default()

	flags.String(KeyHost, cfg.Host, "SQL Server host")
	flags.Int(KeyPort, cfg.Port, "SQL Server port")
	flags.String(KeyAdminUser, cfg.AdminUser, "administrative login")
	flags.String(KeyAdminPassword, "", "administrative password (default $"+PasswordEnv+" or "+cfg.AdminPassword+")")
	flags.String(KeyAdminDatabase, cfg.AdminDatabase, "catalog used for server level statements")
	flags.String(KeyDatabase, cfg.Database, "database to create")
	flags.String(KeyLogin, cfg.Login, "login and database user to create")
	flags.String(KeyLoginPassword, cfg.LoginPassword, "password of the created login")
	flags.String(KeyRole, cfg.Role, "database role granted to the user")
	flags.Duration(KeyWarmup, cfg.Warmup, "delay before the first connection attempt")
	flags.Int(KeyMaxAttempts, cfg.MaxAttempts, "maximum connection attempts")
	flags.Duration(KeyRetryDelay, cfg.RetryDelay, "delay between connection attempts")
	flags.Duration(KeyConnectTimeout, cfg.ConnectTimeout, "timeout of a single connection attempt")
	flags.String(KeyEncrypt, cfg.Encrypt, "connection encryption: disable, false, true or strict")
	flags.Bool(KeyTrustServerCertificate, cfg.TrustServerCertificate, "skip server certificate validation")
	flags.String(KeyDriver, cfg.Driver, "database/sql driver name")
	flags.String(KeyContainer, cfg.Container, "resolve host and port from this Docker container")
	flags.Bool(KeyVerify, cfg.Verify, "connect as the created login after provisioning")
}
