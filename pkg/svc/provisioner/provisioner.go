package provisioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/devantler-tech/mssql-init/pkg/client/mssql"
	"github.com/devantler-tech/mssql-init/pkg/utils/notify"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/sirupsen/logrus"
)

// Pseudo step names for failures outside the script.
const (
	StepReconnect = "reconnect"
	StepVerify    = "verify"
)

const verifyStatement = "SELECT 1;"

// Connector opens a session against a target.
type Connector interface {
	Connect(ctx context.Context, target mssql.Target) (mssql.Conn, error)
}

// Provisioner waits for SQL Server and applies the provisioning script.
type Provisioner struct {
	opts      Options
	connector Connector
	resolver  EndpointResolver
	sleep     Sleeper
	waits     backoff.Timer
	timer     timer.Timer
	out       io.Writer
	logger    logrus.FieldLogger

	// endpoint is the administrative target at the last resolved address.
	endpoint mssql.Target
}

// Option configures a Provisioner.
type Option func(*Provisioner)

// WithWriter sets the destination of progress messages. Defaults to os.Stdout.
func WithWriter(out io.Writer) Option {
	return func(p *Provisioner) { p.out = out }
}

// WithResolver sets how the server address is found before each attempt.
func WithResolver(resolver EndpointResolver) Option {
	return func(p *Provisioner) { p.resolver = resolver }
}

// WithSleeper replaces the warm-up sleep.
func WithSleeper(sleep Sleeper) Option {
	return func(p *Provisioner) { p.sleep = sleep }
}

// WithRetryTimer replaces the timer that paces connection attempts.
func WithRetryTimer(waits backoff.Timer) Option {
	return func(p *Provisioner) { p.waits = waits }
}

// WithTimer enables timing on the final success message.
func WithTimer(tmr timer.Timer) Option {
	return func(p *Provisioner) { p.timer = tmr }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(p *Provisioner) { p.logger = logger }
}

// New creates a Provisioner for opts.
func New(opts Options, connector Connector, options ...Option) *Provisioner {
	p := &Provisioner{
		opts:      opts,
		connector: connector,
		resolver:  StaticEndpoint{Host: opts.Host, Port: opts.Port},
		sleep:     SleepContext,
		out:       os.Stdout,
		logger:    logrus.StandardLogger(),
		endpoint:  opts.AdminTarget(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// Wait blocks until SQL Server accepts the administrative login, then releases the session.
func (p *Provisioner) Wait(ctx context.Context) error {
	p.startTimer()

	conn, err := p.waitAndConnect(ctx)
	if err != nil {
		return err
	}

	p.closeConn(conn)

	notify.SuccessWithTimerf(p.out, p.timer, "SQL Server is ready at %s", p.endpoint.Address())

	return nil
}

// Run waits for SQL Server and provisions the database, login, user and role grant.
func (p *Provisioner) Run(ctx context.Context) error {
	p.startTimer()

	conn, err := p.waitAndConnect(ctx)
	if err != nil {
		return err
	}

	notify.Titlef(p.out, "🗄️", "Provision test database...")
	p.newStage()

	script := Script(p.opts)

	err = p.apply(ctx, conn, StepsFor(script, PhaseServer))
	p.closeConn(conn)

	if err != nil {
		return err
	}

	// The catalog is fixed at login, so database scoped steps need a new session.
	notify.Activityf(p.out, "reconnecting to database %s", p.opts.Database)

	conn, err = p.connector.Connect(ctx, p.endpoint.WithDatabase(p.opts.Database))
	if err != nil {
		return newStepError(StepReconnect, err)
	}

	err = p.apply(ctx, conn, StepsFor(script, PhaseDatabase))
	p.closeConn(conn)

	if err != nil {
		return err
	}

	if p.opts.Verify {
		err = p.verify(ctx)
		if err != nil {
			return err
		}
	}

	notify.SuccessWithTimerf(p.out, p.timer, "database initialization completed successfully")
	notify.Infof(p.out, "you can now connect with:\n%s#tablename", p.AccountTarget().URI())

	return nil
}

// AdminTarget is the administrative target at the last resolved address.
func (p *Provisioner) AdminTarget() mssql.Target {
	return p.endpoint
}

// AccountTarget is the provisioned login's target at the last resolved address.
func (p *Provisioner) AccountTarget() mssql.Target {
	return p.endpoint.
		WithCredentials(p.opts.Login, p.opts.LoginPassword).
		WithDatabase(p.opts.Database)
}

// ReportFallback prints the administrative connection string to use instead
// of the provisioned account.
func (p *Provisioner) ReportFallback() {
	ReportFallback(p.out, p.endpoint)
}

// ReportFallback prints guidance to connect with target directly.
func ReportFallback(out io.Writer, target mssql.Target) {
	notify.Guidancef(out, "please use %s user:\n%s", target.User, target.URI())
}

func (p *Provisioner) waitAndConnect(ctx context.Context) (mssql.Conn, error) {
	notify.Titlef(p.out, "⏳", "Wait for SQL Server...")

	if p.opts.Warmup > 0 {
		notify.Infof(p.out, "waiting %s for SQL Server to start", p.opts.Warmup)

		err := p.sleep(ctx, p.opts.Warmup)
		if err != nil {
			return nil, fmt.Errorf("warm-up interrupted: %w", err)
		}
	}

	return p.connectWithRetry(ctx)
}

func (p *Provisioner) connectWithRetry(ctx context.Context) (mssql.Conn, error) {
	maxAttempts := max(p.opts.MaxAttempts, 1)

	var (
		conn    mssql.Conn
		attempt int
	)

	operation := func() error {
		attempt++
		started := time.Now()

		notify.Activityf(p.out, "attempting to connect to SQL Server (attempt %d/%d)", attempt, maxAttempts)

		target, err := p.resolve(ctx)
		if err == nil {
			conn, err = p.connector.Connect(ctx, target)
		}

		log := p.logger.WithFields(logrus.Fields{
			"attempt":  attempt,
			"duration": time.Since(started),
		})

		if err != nil {
			if errors.Is(err, mssql.ErrDriverUnavailable) {
				return backoff.Permanent(err)
			}

			log.WithError(err).WithField("kind", mssql.Classify(err).String()).Debug("connection attempt failed")
			notify.Warningf(p.out, "connection failed: %v", err)

			return err
		}

		log.Debug("connection attempt succeeded")

		p.endpoint = target

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.opts.RetryDelay), uint64(maxAttempts-1)),
		ctx,
	)

	// A nil timer makes backoff fall back to the wall clock.
	err := backoff.RetryNotifyWithTimer(operation, policy, func(_ error, wait time.Duration) {
		p.logger.WithField("wait", wait).Debug("retrying connection")
	}, p.waits)

	switch {
	case err == nil:
		notify.Successf(p.out, "connected to SQL Server")

		return conn, nil
	case errors.Is(err, mssql.ErrDriverUnavailable):
		return nil, err
	case ctx.Err() != nil:
		return nil, fmt.Errorf("connection interrupted: %w", ctx.Err())
	default:
		return nil, fmt.Errorf("%w after %d attempts: %w", ErrConnectionExhausted, attempt, err)
	}
}

func (p *Provisioner) resolve(ctx context.Context) (mssql.Target, error) {
	host, port, err := p.resolver.Resolve(ctx)
	if err != nil {
		return mssql.Target{}, fmt.Errorf("resolve endpoint: %w", err)
	}

	target := p.opts.AdminTarget()
	target.Host = host
	target.Port = port

	return target, nil
}

func (p *Provisioner) apply(ctx context.Context, conn mssql.Conn, steps []Step) error {
	for _, step := range steps {
		notify.Activityf(p.out, "%s", step.Activity)

		err := conn.Exec(ctx, step.SQL)
		if err != nil {
			if mssql.IsConflict(err) {
				notify.Warningf(p.out, "%s creation warning: %v", step.Name, err)

				continue
			}

			return newStepError(step.Name, err)
		}

		notify.Successf(p.out, "%s", step.Success)
	}

	return nil
}

func (p *Provisioner) verify(ctx context.Context) error {
	target := p.AccountTarget()

	notify.Activityf(p.out, "verifying login %s on %s", target.User, target.Database)

	conn, err := p.connector.Connect(ctx, target)
	if err != nil {
		return newStepError(StepVerify, err)
	}

	err = conn.Exec(ctx, verifyStatement)
	p.closeConn(conn)

	if err != nil {
		return newStepError(StepVerify, err)
	}

	notify.Successf(p.out, "login %s verified", target.User)

	return nil
}

func (p *Provisioner) closeConn(conn mssql.Conn) {
	err := conn.Close()
	if err != nil {
		p.logger.WithError(err).Warn("failed to close connection")
	}
}

func (p *Provisioner) startTimer() {
	if p.timer != nil {
		p.timer.Start()
	}
}

func (p *Provisioner) newStage() {
	if p.timer != nil {
		p.timer.NewStage()
	}
}
