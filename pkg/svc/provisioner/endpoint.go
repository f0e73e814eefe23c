package provisioner

import (
	"context"
	"time"
)

// EndpointResolver returns the address the server currently listens on.
// It is consulted before every connection attempt.
type EndpointResolver interface {
	Resolve(ctx context.Context) (host string, port int, err error)
}

// StaticEndpoint always resolves to the same address.
type StaticEndpoint struct {
	Host string
	Port int
}

// Resolve returns the configured address.
func (e StaticEndpoint) Resolve(context.Context) (string, int, error) {
	return e.Host, e.Port, nil
}

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the wall-clock Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
