package docker

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
)

// DefaultSQLServerPort is the port SQL Server listens on inside its container.
const DefaultSQLServerPort nat.Port = "1433/tcp"

// Errors for container endpoint resolution.
var (
	// ErrContainerNotFound is returned when no container has the given name.
	ErrContainerNotFound = errors.New("container not found")
	// ErrContainerNotRunning is returned when the container exists but is stopped.
	ErrContainerNotRunning = errors.New("container is not running")
	// ErrContainerUnhealthy is returned while the container health check is not passing.
	ErrContainerUnhealthy = errors.New("container is not healthy")
	// ErrNoPortMapping is returned when the container port is not published on the host.
	ErrNoPortMapping = errors.New("container port is not published")
)

// ContainerInspector is the subset of the Docker API used for endpoint resolution.
type ContainerInspector interface {
	ContainerInspect(ctx context.Context, container string) (container.InspectResponse, error)
}

// ContainerEndpoint resolves the host address published by a SQL Server container.
type ContainerEndpoint struct {
	client ContainerInspector
	name   string
	port   nat.Port
}

// NewContainerEndpoint returns a resolver for the container called name.
func NewContainerEndpoint(client ContainerInspector, name string) *ContainerEndpoint {
	return &ContainerEndpoint{client: client, name: name, port: DefaultSQLServerPort}
}

// Resolve inspects the container and returns the host and port bound to 1433/tcp.
func (e *ContainerEndpoint) Resolve(ctx context.Context) (string, int, error) {
	inspect, err := e.client.ContainerInspect(ctx, e.name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return "", 0, fmt.Errorf("%w: %s", ErrContainerNotFound, e.name)
		}

		return "", 0, fmt.Errorf("inspect container %s: %w", e.name, err)
	}

	if inspect.ContainerJSONBase == nil || inspect.State == nil || !inspect.State.Running {
		return "", 0, fmt.Errorf("%w: %s", ErrContainerNotRunning, e.name)
	}

	if health := inspect.State.Health; health != nil && health.Status != container.Healthy {
		return "", 0, fmt.Errorf("%w: %s is %s", ErrContainerUnhealthy, e.name, health.Status)
	}

	if inspect.NetworkSettings == nil {
		return "", 0, fmt.Errorf("%w: %s %s", ErrNoPortMapping, e.name, e.port)
	}

	for _, binding := range inspect.NetworkSettings.Ports[e.port] {
		if binding.HostPort == "" {
			continue
		}

		port, err := strconv.Atoi(binding.HostPort)
		if err != nil {
			return "", 0, fmt.Errorf("parse host port %q of %s: %w", binding.HostPort, e.name, err)
		}

		return hostFor(binding.HostIP), port, nil
	}

	return "", 0, fmt.Errorf("%w: %s %s", ErrNoPortMapping, e.name, e.port)
}

// hostFor maps wildcard bind addresses to the loopback name.
func hostFor(hostIP string) string {
	switch hostIP {
	case "", "0.0.0.0", "::":
		return "localhost"
	default:
		return hostIP
	}
}
