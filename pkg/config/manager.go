package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/mssql-init/pkg/utils/envvar"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the manager.
	EnvPrefix = "MSSQL_INIT"
	// PasswordEnv is the conventional SQL Server container variable for the administrative password.
	PasswordEnv = "SA_PASSWORD"
	// FileName is the config file base name searched for when no path is given.
	FileName = "mssql-init"
)

// Manager resolves a Config from its sources.
type Manager struct {
	Viper *viper.Viper
	// SearchPaths are the directories searched for FileName.yaml when no explicit file is set.
	SearchPaths []string

	expander        *envvar.Expander
	logger          logrus.FieldLogger
	configFileFound bool
}

// NewManager creates a Manager with defaults and environment bindings registered.
func NewManager(logger logrus.FieldLogger) *Manager {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	// The prefixed variable wins over the container convention when both are set.
	_ = v.BindEnv(KeyAdminPassword, EnvPrefix+"_ADMIN_PASSWORD", PasswordEnv)

	return &Manager{
		Viper:       v,
		SearchPaths: []string{"."},
		expander:    envvar.NewExpander(logger),
		logger:      logger,
	}
}

// BindFlags binds every flag in flags whose name is a configuration key.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	for key := range defaults() {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	return nil
}

// ConfigFileUsed returns the config file that was read, if any.
func (m *Manager) ConfigFileUsed() string {
	if !m.configFileFound {
		return ""
	}

	return m.Viper.ConfigFileUsed()
}

// Load reads path (or FileName.yaml from SearchPaths when path is empty),
// merges environment and bound flags, and validates the result.
func (m *Manager) Load(path string) (Config, error) {
	err := m.readConfig(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config

	err = m.Viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = decodeHook(m.expander)
	})
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (m *Manager) readConfig(path string) error {
	if path != "" {
		m.Viper.SetConfigFile(path)
	} else {
		m.Viper.SetConfigName(FileName)

		for _, dir := range m.SearchPaths {
			m.Viper.AddConfigPath(dir)
		}
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &configFileNotFoundError) {
			m.logger.Debug("no config file found, using defaults")

			return nil
		}

		return fmt.Errorf("failed to read config file: %w", err)
	}

	m.configFileFound = true
	m.logger.WithField("file", m.Viper.ConfigFileUsed()).Debug("config file loaded")

	return nil
}
