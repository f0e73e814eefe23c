package mssql

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"strconv"
	"time"
)

// DefaultPort is the port SQL Server listens on unless configured otherwise.
const DefaultPort = 1433

// DefaultAppName is reported to the server as the client application name.
const DefaultAppName = "mssql-init"

// Target describes a single connection request.
type Target struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	// Timeout bounds dialing. Connect also bounds the login handshake with it; statements
	// on an open session are not bounded. Zero leaves the driver default.
	Timeout time.Duration
	// Encrypt is passed through to the driver ("disable", "false", "true", "strict").
	Encrypt                string
	TrustServerCertificate bool
	AppName                string
}

// WithDatabase returns a copy of t that connects to database instead.
func (t Target) WithDatabase(database string) Target {
	t.Database = database

	return t
}

// WithCredentials returns a copy of t that authenticates as user.
func (t Target) WithCredentials(user, password string) Target {
	t.User = user
	t.Password = password

	return t
}

// Address returns host:port.
func (t Target) Address() string {
	port := t.Port
	if port == 0 {
		port = DefaultPort
	}

	return net.JoinHostPort(t.Host, strconv.Itoa(port))
}

// DSN renders the target as a go-mssqldb URL connection string.
func (t Target) DSN() string {
	return t.url(url.UserPassword(t.User, t.Password)).String()
}

// Redacted renders the DSN with the password masked, for logs and error messages.
func (t Target) Redacted() string {
	return t.url(url.UserPassword(t.User, t.Password)).Redacted()
}

// URI renders the literal mssql:// connection string printed for operators.
// It is meant to be copied into other tools and is intentionally not escaped.
func (t Target) URI() string {
	return fmt.Sprintf("mssql://%s:%s@%s/%s", t.User, t.Password, t.Address(), t.Database)
}

func (t Target) url(user *url.Userinfo) *url.URL {
	query := url.Values{}
	if t.Database != "" {
		query.Set("database", t.Database)
	}

	// "connection timeout" is left unset: the driver applies it as a read deadline on
	// every packet, so a slow CREATE DATABASE would fail.
	if t.Timeout > 0 {
		query.Set("dial timeout", strconv.Itoa(int(math.Ceil(t.Timeout.Seconds()))))
	}

	if t.Encrypt != "" {
		query.Set("encrypt", t.Encrypt)
	}

	if t.TrustServerCertificate {
		query.Set("TrustServerCertificate", "true")
	}

	appName := t.AppName
	if appName == "" {
		appName = DefaultAppName
	}

	query.Set("app name", appName)

	return &url.URL{
		Scheme:   "sqlserver",
		User:     user,
		Host:     t.Address(),
		RawQuery: query.Encode(),
	}
}
