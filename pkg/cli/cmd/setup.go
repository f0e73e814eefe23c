package cmd

import (
	"fmt"
	"io"

	"github.com/devantler-tech/mssql-init/pkg/client/docker"
	"github.com/devantler-tech/mssql-init/pkg/config"
	"github.com/devantler-tech/mssql-init/pkg/di"
	"github.com/devantler-tech/mssql-init/pkg/svc/provisioner"
	"github.com/devantler-tech/mssql-init/pkg/utils/notify"
	"github.com/devantler-tech/mssql-init/pkg/utils/timer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// availability is implemented by connectors that can tell whether their driver is registered.
type availability interface {
	Available() bool
}

// session is everything a command needs to talk to SQL Server.
type session struct {
	cfg         config.Config
	opts        provisioner.Options
	out         io.Writer
	logger      logrus.FieldLogger
	provisioner *provisioner.Provisioner
	connector   provisioner.Connector
	closers     []func() error
}

func (s *session) driverAvailable() bool {
	checker, ok := s.connector.(availability)

	return !ok || checker.Available()
}

// close releases clients opened for the session.
func (s *session) close() {
	for _, closeFn := range s.closers {
		err := closeFn()
		if err != nil {
			s.logger.WithError(err).Warn("failed to release client")
		}
	}
}

// loadConfig configures logging and resolves the configuration for cmd.
func loadConfig(cmd *cobra.Command, injector di.Injector) (config.Config, logrus.FieldLogger, error) {
	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return config.Config{}, nil, err
	}

	err = configureLogger(cmd, logger)
	if err != nil {
		return config.Config{}, nil, err
	}

	manager := config.NewManager(logger)

	err = manager.BindFlags(cmd.Flags())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("bind flags: %w", err)
	}

	path, _ := cmd.Flags().GetString(ConfigFlagName)

	cfg, err := manager.Load(path)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load configuration: %w", err)
	}

	return cfg, logger, nil
}

func configureLogger(cmd *cobra.Command, logger logrus.FieldLogger) error {
	levelName, _ := cmd.Flags().GetString(LogLevelFlagName)
	if levelName == "" {
		return nil
	}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid --%s: %w", LogLevelFlagName, err)
	}

	if concrete, ok := logger.(*logrus.Logger); ok {
		concrete.SetLevel(level)
	}

	return nil
}

// newSession builds a provisioner from the configuration and the injected dependencies.
func newSession(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) (*session, error) {
	cfg, logger, err := loadConfig(cmd, injector)
	if err != nil {
		return nil, err
	}

	opts, err := provisioner.NewOptions(cfg)
	if err != nil {
		return nil, err
	}

	connectorFactory, err := di.ResolveConnectorFactory(injector)
	if err != nil {
		return nil, err
	}

	sleep, err := di.ResolveSleeper(injector)
	if err != nil {
		return nil, err
	}

	sess := &session{
		cfg:       cfg,
		opts:      opts,
		out:       notify.NewStageSeparatingWriter(cmd.OutOrStdout()),
		logger:    logger,
		connector: connectorFactory(cfg.Driver, logger),
	}

	options := []provisioner.Option{
		provisioner.WithWriter(sess.out),
		provisioner.WithLogger(logger),
		provisioner.WithSleeper(sleep),
	}

	if timing, _ := cmd.Flags().GetBool(TimingFlagName); timing {
		options = append(options, provisioner.WithTimer(tmr))
	}

	if cfg.Container != "" {
		resolver, closeFn, err := containerResolver(injector, cfg.Container)
		if err != nil {
			return nil, err
		}

		sess.closers = append(sess.closers, closeFn)
		options = append(options, provisioner.WithResolver(resolver))
	}

	sess.provisioner = provisioner.New(opts, sess.connector, options...)

	return sess, nil
}

func containerResolver(injector di.Injector, name string) (provisioner.EndpointResolver, func() error, error) {
	factory, err := di.ResolveDockerClientFactory(injector)
	if err != nil {
		return nil, nil, err
	}

	client, err := factory()
	if err != nil {
		return nil, nil, fmt.Errorf("container %s: %w", name, err)
	}

	return docker.NewContainerEndpoint(client, name), client.Close, nil
}

// reportDriverUnavailable prints the administrative fallback when no driver can be used.
func reportDriverUnavailable(sess *session) {
	notify.Warningf(sess.out, "%s driver not available", sess.cfg.Driver)
	provisioner.ReportFallback(sess.out, sess.opts.AdminTarget())
}
