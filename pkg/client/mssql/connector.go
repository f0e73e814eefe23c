package mssql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	// Registers the "sqlserver" driver with database/sql.
	_ "github.com/microsoft/go-mssqldb"
	"github.com/sirupsen/logrus"
)

// DriverName is the database/sql driver name registered by go-mssqldb.
const DriverName = "sqlserver"

// ErrDriverUnavailable is returned when the requested driver is not registered.
var ErrDriverUnavailable = errors.New("database driver is not available")

// Conn is an open session on the server.
type Conn interface {
	// Exec runs a statement that returns no rows. The driver commits it on success.
	Exec(ctx context.Context, statement string) error
	// Close releases the session.
	Close() error
}

// DriverConnector opens connections through a registered database/sql driver.
type DriverConnector struct {
	driver string
	logger logrus.FieldLogger
}

// NewConnector returns a connector for the named driver. An empty name selects DriverName.
func NewConnector(driver string, logger logrus.FieldLogger) *DriverConnector {
	if driver == "" {
		driver = DriverName
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &DriverConnector{driver: driver, logger: logger}
}

// Available reports whether the driver is registered with database/sql.
func (c *DriverConnector) Available() bool {
	return slices.Contains(sql.Drivers(), c.driver)
}

// Connect opens a session against target and verifies it with a ping bounded by target.Timeout.
func (c *DriverConnector) Connect(ctx context.Context, target Target) (Conn, error) {
	if !c.Available() {
		return nil, fmt.Errorf("%w: %q", ErrDriverUnavailable, c.driver)
	}

	log := c.logger.WithFields(logrus.Fields{
		"dsn":     target.Redacted(),
		"timeout": target.Timeout,
	})
	log.Debug("opening connection")

	db, err := sql.Open(c.driver, target.DSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", target.Address(), err)
	}

	// One session, so the catalog chosen at login applies to every statement.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx := ctx
	if target.Timeout > 0 {
		var cancel context.CancelFunc

		pingCtx, cancel = context.WithTimeout(ctx, target.Timeout)
		defer cancel()
	}

	err = db.PingContext(pingCtx)
	if err != nil {
		_ = db.Close()

		log.WithError(err).Debug("ping failed")

		return nil, fmt.Errorf("connect to %s: %w", target.Address(), err)
	}

	log.Debug("connection established")

	return NewConn(db), nil
}

// DBConn adapts a *sql.DB limited to a single connection to Conn.
type DBConn struct {
	db *sql.DB
}

// NewConn wraps db.
func NewConn(db *sql.DB) *DBConn {
	return &DBConn{db: db}
}

// Exec runs statement in the session.
func (c *DBConn) Exec(ctx context.Context, statement string) error {
	_, err := c.db.ExecContext(ctx, statement)
	if err != nil {
		return fmt.Errorf("execute statement: %w", err)
	}

	return nil
}

// Close closes the underlying pool.
func (c *DBConn) Close() error {
	err := c.db.Close()
	if err != nil {
		return fmt.Errorf("close connection: %w", err)
	}

	return nil
}
