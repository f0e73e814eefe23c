package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors.
var (
	ErrInvalidPort        = errors.New("port must be between 1 and 65535")
	ErrInvalidMaxAttempts = errors.New("max-attempts must be at least 1")
	ErrNegativeDuration   = errors.New("duration must not be negative")
	ErrEmptyValue         = errors.New("value must not be empty")
)

const maxPort = 65535

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > maxPort {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidPort, c.Port))
	}

	if c.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidMaxAttempts, c.MaxAttempts))
	}

	required := []struct {
		key   string
		value string
	}{
		{KeyHost, c.Host},
		{KeyAdminUser, c.AdminUser},
		{KeyAdminDatabase, c.AdminDatabase},
		{KeyDatabase, c.Database},
		{KeyLogin, c.Login},
		{KeyRole, c.Role},
		{KeyDriver, c.Driver},
	}

	for _, field := range required {
		if field.value == "" {
			errs = append(errs, fmt.Errorf("%s: %w", field.key, ErrEmptyValue))
		}
	}

	durations := []struct {
		key   string
		value time.Duration
	}{
		{KeyWarmup, c.Warmup},
		{KeyRetryDelay, c.RetryDelay},
		{KeyConnectTimeout, c.ConnectTimeout},
	}

	for _, field := range durations {
		if field.value < 0 {
			errs = append(errs, fmt.Errorf("%s: %w: %s", field.key, ErrNegativeDuration, field.value))
		}
	}

	return errors.Join(errs...)
}
